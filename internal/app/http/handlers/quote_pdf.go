package handlers

import (
	"log"
	"net/http"

	"offr-io/go_backend/internal/domain/quote"
	"offr-io/go_backend/internal/domain/quote/pdf"
)

func (h *Handlers) QuotePDF(w http.ResponseWriter, r *http.Request) {
	var q quote.Quote
	if err := decode(w, r, &q); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(q.Items) == 0 {
		writeError(w, http.StatusBadRequest, "invalid quote data: at least one item required")
		return
	}
	h.renderPDF(w, r, q)
}

func (h *Handlers) StoredQuotePDF(w http.ResponseWriter, r *http.Request) {
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
	h.renderPDF(w, r, env.Payload)
}

func (h *Handlers) renderPDF(w http.ResponseWriter, r *http.Request, q quote.Quote) {
	doc, err := pdf.Render(h.PDF, q)
	if err != nil {
		log.Printf("quotes req=%s pdf failed number=%s: %v", reqID(r), q.QuoteNumber, err)
		writeError(w, http.StatusInternalServerError, "failed to generate PDF")
		return
	}
	log.Printf("quotes req=%s pdf number=%s bytes=%d", reqID(r), q.QuoteNumber, len(doc.Content))
	writePDF(w, doc)
}
