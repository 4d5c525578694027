package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dafterhq/dafter/internal/ledger"
	"github.com/dafterhq/dafter/internal/store"
)

// txnRequest is the wire shape of a new transaction. Dates travel as
// YYYY-MM-DD strings; the engine never needs a time of day.
type txnRequest struct {
	Kind         ledger.Kind        `json:"kind"`
	Date         string             `json:"date"`
	Totals       ledger.Totals      `json:"totals"`
	AccountID    string             `json:"account_id"`
	EntityType   ledger.EntityType  `json:"entity_type"`
	Refund       bool               `json:"refund"`
	SettlementID string             `json:"settlement_id"`
	Branch       string             `json:"branch"`
	FromStore    string             `json:"from_store"`
	ToStore      string             `json:"to_store"`
	Lines        []ledger.LineEntry `json:"lines"`
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req txnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	date, err := ledger.ParseDate("date", req.Date)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}

	txn := ledger.Transaction{
		Kind:         req.Kind,
		Date:         date,
		Totals:       req.Totals,
		AccountID:    req.AccountID,
		EntityType:   req.EntityType,
		Refund:       req.Refund,
		SettlementID: req.SettlementID,
		Branch:       req.Branch,
		FromStore:    req.FromStore,
		ToStore:      req.ToStore,
		Lines:        req.Lines,
	}

	if err := s.store.CreateTransaction(r.Context(), &txn); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}

	s.reports.Flush()
	writeJSON(w, http.StatusCreated, txn)
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.TxnFilter{
		Kind:      ledger.Kind(q.Get("kind")),
		AccountID: q.Get("account"),
		Branch:    q.Get("branch"),
		DateFrom:  q.Get("from"),
		DateTo:    q.Get("to"),
	}
	if filter.Kind != "" && !ledger.ValidKind(filter.Kind) {
		writeError(w, http.StatusBadRequest, "invalid transaction kind: "+string(filter.Kind))
		return
	}

	txns, err := s.store.ListTransactions(r.Context(), filter)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	if txns == nil {
		txns = []ledger.Transaction{}
	}
	writeJSON(w, http.StatusOK, txns)
}

func (s *Server) getTransaction(w http.ResponseWriter, r *http.Request) {
	txn, err := s.store.GetTransaction(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, txn)
}
