package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/tallybook-dev/tallybook/internal/ledger"
	"github.com/tallybook-dev/tallybook/internal/model"
)

type lineRequest struct {
	AccountID string          `json:"accountId" validate:"required"`
	Debit     decimal.Decimal `json:"debitAmount"`
	Credit    decimal.Decimal `json:"creditAmount"`
}

type createEntryRequest struct {
	Date        model.Date    `json:"date"`
	Description string        `json:"description" validate:"required"`
	Lines       []lineRequest `json:"lines" validate:"required,min=2"`
}

type updateEntryRequest struct {
	Date        *model.Date   `json:"date"`
	Description *string       `json:"description"`
	Lines       []lineRequest `json:"lines"`
}

func toLineInputs(reqs []lineRequest) []ledger.LineInput {
	lines := make([]ledger.LineInput, len(reqs))
	for i, lr := range reqs {
		lines[i] = ledger.LineInput{
			AccountID: lr.AccountID,
			Debit:     lr.Debit,
			Credit:    lr.Credit,
		}
	}
	return lines
}

func (s *Server) listEntries(w http.ResponseWriter, r *http.Request) {
	start, err := dateParam(r, "startDate")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	end, err := dateParam(r, "endDate")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	entries := s.ledger.Entries(ledger.EntryFilter{
		Start:     start,
		End:       end,
		AccountID: r.URL.Query().Get("accountId"),
	})
	if entries == nil {
		entries = []model.JournalEntry{}
	}
	writeData(w, http.StatusOK, entries)
}

func (s *Server) createEntry(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	entry, err := s.ledger.CreateEntry(ledger.EntryInput{
		Date:        req.Date,
		Description: req.Description,
		Lines:       toLineInputs(req.Lines),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	writeData(w, http.StatusCreated, entry)
}

func (s *Server) getEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := s.ledger.Entry(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeData(w, http.StatusOK, entry)
}

func (s *Server) updateEntry(w http.ResponseWriter, r *http.Request) {
	var req updateEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	patch := ledger.EntryPatch{
		Date:        req.Date,
		Description: req.Description,
	}
	if req.Lines != nil {
		patch.Lines = toLineInputs(req.Lines)
	}
	entry, err := s.ledger.UpdateEntry(chi.URLParam(r, "id"), patch)
	if err != nil {
		respondError(w, err)
		return
	}
	writeData(w, http.StatusOK, entry)
}

func (s *Server) deleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeleteEntry(chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) closeEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := s.ledger.CloseEntry(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeData(w, http.StatusOK, entry)
}

func (s *Server) reopenEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := s.ledger.ReopenEntry(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeData(w, http.StatusOK, entry)
}
