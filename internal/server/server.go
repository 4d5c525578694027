// Package server exposes the books and the report engine over HTTP. The
// write surface is append-only, mirroring the store.
package server

import (
	"log"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	cache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"

	"github.com/dafterhq/dafter/internal/store"
)

type Server struct {
	store   *store.Store
	router  chi.Router
	addr    string
	capital decimal.Decimal

	// reports caches composed report responses per request URL. Computing a
	// report re-scans the whole history, so repeated dashboard polls would
	// otherwise redo identical pure folds. Any write flushes the cache.
	reports *cache.Cache
}

func New(st *store.Store, addr string, capital decimal.Decimal) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	s := &Server{
		store:   st,
		router:  r,
		addr:    addr,
		capital: capital,
		reports: cache.New(30*time.Second, time.Minute),
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Accounts
		r.Post("/accounts", s.createAccount)
		r.Get("/accounts", s.listAccounts)
		r.Get("/accounts/{id}", s.getAccount)
		r.Get("/accounts/{id}/balance", s.accountBalance)
		r.Put("/accounts/{id}/opening", s.setOpeningBalance)

		// Items
		r.Post("/items", s.createItem)
		r.Get("/items", s.listItems)
		r.Get("/items/{id}", s.getItem)
		r.Put("/items/{id}/price", s.setPurchasePrice)

		// Transactions: append-only, no update or delete routes.
		r.Post("/transactions", s.createTransaction)
		r.Get("/transactions", s.listTransactions)
		r.Get("/transactions/{id}", s.getTransaction)

		// Reports
		r.Get("/reports/balance-sheet", s.balanceSheet)
		r.Get("/reports/income-statement", s.incomeStatement)
		r.Get("/reports/vat", s.vatDeclaration)
		r.Get("/reports/inventory", s.inventoryValuation)
		r.Get("/reports/reorder", s.reorderReport)
	})

	return s
}

func (s *Server) ListenAndServe() error {
	log.Printf("dafter server listening on %s", s.addr)
	return http.ListenAndServe(s.addr, s.router)
}

func (s *Server) Serve(ln net.Listener) error {
	log.Printf("dafter server listening on %s", ln.Addr())
	return http.Serve(ln, s.router)
}

func (s *Server) Handler() http.Handler {
	return s.router
}
