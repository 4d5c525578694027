package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/dafterhq/dafter/internal/ledger"
)

func (s *Server) createItem(w http.ResponseWriter, r *http.Request) {
	var item ledger.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	if err := s.store.CreateItem(r.Context(), &item); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}

	s.reports.Flush()
	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) listItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ListItems(r.Context())
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	if items == nil {
		items = []ledger.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) getItem(w http.ResponseWriter, r *http.Request) {
	item, err := s.store.GetItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) setPurchasePrice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PurchasePrice decimal.Decimal `json:"purchase_price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.store.SetPurchasePrice(r.Context(), id, req.PurchasePrice); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}

	s.reports.Flush()
	item, err := s.store.GetItem(r.Context(), id)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, item)
}
