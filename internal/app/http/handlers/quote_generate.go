package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"offr-io/go_backend/internal/domain/quote"
)

// GenerateQuote assembles a quote from the body items, or from the configured
// item source when the body carries none.
func (h *Handlers) GenerateQuote(w http.ResponseWriter, r *http.Request) {
	var req quote.Request
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id := reqID(r)

	if len(req.Items) == 0 {
		if strings.TrimSpace(req.Description) == "" {
			writeError(w, http.StatusBadRequest, "description is required")
			return
		}
		items, err := h.Source.Items(r.Context(), req.Description, req.Language)
		if err != nil {
			var ve *quote.ValidationError
			if errors.As(err, &ve) {
				writeError(w, http.StatusBadRequest, ve.Error())
				return
			}
			log.Printf("quotes req=%s item source failed: %v", id, err)
			writeError(w, http.StatusBadGateway, "failed to generate quote items")
			return
		}
		req.Items = items
	}

	q, err := h.Assembler.Assemble(req)
	if err != nil {
		var ve *quote.ValidationError
		if errors.As(err, &ve) {
			writeError(w, http.StatusBadRequest, ve.Error())
			return
		}
		log.Printf("quotes req=%s assemble failed: %v", id, err)
		writeError(w, http.StatusInternalServerError, "failed to generate quote")
		return
	}

	log.Printf("quotes req=%s generated number=%s items=%d total=%s lang=%s",
		id, q.QuoteNumber, len(q.Items), q.Total.StringFixed(2), q.Language)
	writeJSON(w, http.StatusOK, q)
}
