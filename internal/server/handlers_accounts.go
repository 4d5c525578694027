package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/dafterhq/dafter/internal/engine"
	"github.com/dafterhq/dafter/internal/ledger"
	"github.com/dafterhq/dafter/internal/store"
)

func (s *Server) createAccount(w http.ResponseWriter, r *http.Request) {
	var acc ledger.Account
	if err := json.NewDecoder(r.Body).Decode(&acc); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	if err := s.store.CreateAccount(r.Context(), &acc); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}

	s.reports.Flush()
	writeJSON(w, http.StatusCreated, acc)
}

func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	filter := store.AccountFilter{
		Class:  ledger.AccountClass(r.URL.Query().Get("class")),
		Branch: r.URL.Query().Get("branch"),
	}
	if filter.Class != "" && !ledger.ValidClass(filter.Class) {
		writeError(w, http.StatusBadRequest, "invalid account class: "+string(filter.Class))
		return
	}

	accounts, err := s.store.ListAccounts(r.Context(), filter)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	if accounts == nil {
		accounts = []ledger.Account{}
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
	acc, err := s.store.GetAccount(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, acc)
}

// accountBalance reconstructs one account as of a date (today if omitted).
func (s *Server) accountBalance(w http.ResponseWriter, r *http.Request) {
	asOf := r.URL.Query().Get("as_of")
	if asOf == "" {
		asOf = time.Now().UTC().Format(ledger.DateLayout)
	}

	acc, err := s.store.GetAccount(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}

	txns, err := s.store.ListTransactions(r.Context(), store.TxnFilter{})
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}

	bal, err := engine.ComputeBalance(acc, txns, asOf)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, bal)
}

func (s *Server) setOpeningBalance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Opening decimal.Decimal `json:"opening"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.store.SetOpeningBalance(r.Context(), id, req.Opening); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}

	s.reports.Flush()
	acc, err := s.store.GetAccount(r.Context(), id)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, acc)
}
