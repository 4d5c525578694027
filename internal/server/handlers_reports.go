package server

import (
	"net/http"
	"time"

	"github.com/dafterhq/dafter/internal/engine"
	"github.com/dafterhq/dafter/internal/ledger"
)

// serveReport answers from the report cache or computes via compute and
// caches the result. The cache key is the full request URI, so every
// distinct parameter combination is its own entry.
func (s *Server) serveReport(w http.ResponseWriter, r *http.Request, compute func(snap *ledger.Snapshot) (any, error)) {
	key := r.URL.RequestURI()
	if cached, ok := s.reports.Get(key); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	snap, err := s.store.LoadSnapshot(r.Context())
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}

	report, err := compute(snap)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}

	s.reports.SetDefault(key, report)
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) balanceSheet(w http.ResponseWriter, r *http.Request) {
	asOf := defaultToday(r.URL.Query().Get("as_of"))
	s.serveReport(w, r, func(snap *ledger.Snapshot) (any, error) {
		return engine.ComposeBalanceSheet(snap, asOf, s.capital)
	})
}

func (s *Server) incomeStatement(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, to := q.Get("from"), defaultToday(q.Get("to"))
	s.serveReport(w, r, func(snap *ledger.Snapshot) (any, error) {
		return engine.ComposeIncomeStatement(snap.Items, snap.Transactions, from, to)
	})
}

func (s *Server) vatDeclaration(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, to, branch := q.Get("from"), defaultToday(q.Get("to")), q.Get("branch")
	s.serveReport(w, r, func(snap *ledger.Snapshot) (any, error) {
		return engine.ComputeVatDeclaration(snap.Transactions, from, to, branch)
	})
}

func (s *Server) inventoryValuation(w http.ResponseWriter, r *http.Request) {
	asOf := defaultToday(r.URL.Query().Get("as_of"))
	s.serveReport(w, r, func(snap *ledger.Snapshot) (any, error) {
		return engine.ComputeInventoryValue(snap.Items, snap.Transactions, asOf)
	})
}

func (s *Server) reorderReport(w http.ResponseWriter, r *http.Request) {
	asOf := defaultToday(r.URL.Query().Get("as_of"))
	s.serveReport(w, r, func(snap *ledger.Snapshot) (any, error) {
		return engine.ComputeReorderReport(snap.Items, snap.Transactions, asOf)
	})
}

func defaultToday(date string) string {
	if date != "" {
		return date
	}
	return time.Now().UTC().Format(ledger.DateLayout)
}
