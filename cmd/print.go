package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/dafterhq/dafter/internal/ledger"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	okStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	badStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

func printTitle(title, subtitle string) {
	fmt.Println()
	fmt.Println(titleStyle.Render(title))
	if subtitle != "" {
		fmt.Println(subtitle)
	}
	fmt.Println()
}

func printSection(name string) {
	fmt.Println(sectionStyle.Render(name))
}

// money renders amounts with two decimals, negatives in parentheses.
func money(d decimal.Decimal) string {
	if d.IsNegative() {
		return "(" + d.Neg().StringFixed(2) + ")"
	}
	return d.StringFixed(2)
}

func printLine(label string, amount decimal.Decimal) {
	fmt.Printf("  %-32s %15s\n", label, money(amount))
}

func printRule() {
	fmt.Printf("  %-32s %15s\n", "", "─────────────")
}

func printWarnings(warnings []ledger.Warning) {
	if len(warnings) == 0 {
		return
	}
	fmt.Println()
	fmt.Println(warnStyle.Render(fmt.Sprintf("%d data-quality warning(s):", len(warnings))))
	for _, w := range warnings {
		fmt.Println(warnStyle.Render("  - " + w.String()))
	}
}
