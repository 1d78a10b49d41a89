package handlers

import (
	"log"
	"net/http"

	"offr-io/go_backend/internal/app/http/middleware"
	"offr-io/go_backend/internal/domain/quote"
)

func ownerID(r *http.Request) string {
	return middleware.OwnerFrom(r.Context())
}

func (h *Handlers) CreateQuote(w http.ResponseWriter, r *http.Request) {
	var q quote.Quote
	if err := decode(w, r, &q); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sum, err := h.Store.Save(r.Context(), ownerID(r), q)
	if err != nil {
		writeStoreError(w, r, "save", err)
		return
	}
	log.Printf("quotes req=%s saved id=%s owner=%s number=%s", reqID(r), sum.ID, sum.OwnerID, sum.QuoteNumber)
	writeJSON(w, http.StatusCreated, sum)
}

func (h *Handlers) ListQuotes(w http.ResponseWriter, r *http.Request) {
	list, err := h.Store.List(r.Context(), ownerID(r))
	if err != nil {
		writeStoreError(w, r, "list", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"quotes": list})
}

func (h *Handlers) GetQuote(w http.ResponseWriter, r *http.Request) {
	id, err := quoteID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid quote id")
		return
	}
	env, err := h.Store.Get(r.Context(), ownerID(r), id)
	if err != nil {
		writeStoreError(w, r, "get", err)
		return
	}
	writeJSON(w, http.StatusOK, env)
}

func (h *Handlers) ReplaceQuote(w http.ResponseWriter, r *http.Request) {
	id, err := quoteID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid quote id")
		return
	}
	var q quote.Quote
	if err := decode(w, r, &q); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sum, err := h.Store.Replace(r.Context(), ownerID(r), id, q)
	if err != nil {
		writeStoreError(w, r, "replace", err)
		return
	}
	log.Printf("quotes req=%s replaced id=%s owner=%s", reqID(r), sum.ID, sum.OwnerID)
	writeJSON(w, http.StatusOK, sum)
}

func (h *Handlers) DeleteQuote(w http.ResponseWriter, r *http.Request) {
	id, err := quoteID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid quote id")
		return
	}
	if err := h.Store.Delete(r.Context(), ownerID(r), id); err != nil {
		writeStoreError(w, r, "delete", err)
		return
	}
	log.Printf("quotes req=%s deleted id=%s", reqID(r), id)
	w.WriteHeader(http.StatusNoContent)
}
