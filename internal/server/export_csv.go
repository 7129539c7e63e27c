package server

import (
	"encoding/csv"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// trialBalanceCSV streams the trial balance totals as a CSV download.
func (s *Server) trialBalanceCSV(w http.ResponseWriter, r *http.Request) {
	asOf, err := dateParam(r, "asOf")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	tb := s.ledger.ComputeTrialBalance(asOf)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="trial-balance.csv"`)
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"as_of", "total_debit", "total_credit"})
	asOfStr := ""
	if !tb.AsOf.IsZero() {
		asOfStr = tb.AsOf.String()
	}
	_ = cw.Write([]string{asOfStr, tb.TotalDebit.StringFixed(2), tb.TotalCredit.StringFixed(2)})
	cw.Flush()
}

// tAccountCSV streams one posting row per journal line referencing the
// account, followed by a totals row.
func (s *Server) tAccountCSV(w http.ResponseWriter, r *http.Request) {
	asOf, err := dateParam(r, "asOf")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ta, err := s.ledger.ComputeTAccount(chi.URLParam(r, "id"), asOf)
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "t-account-"+ta.Account.Code+".csv"))
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"date", "entry_id", "description", "debit", "credit"})
	for _, line := range ta.Entries {
		_ = cw.Write([]string{
			line.Date.String(),
			line.EntryID,
			line.Description,
			line.Debit.StringFixed(2),
			line.Credit.StringFixed(2),
		})
	}
	_ = cw.Write([]string{"", "", "totals", ta.TotalDebit.StringFixed(2), ta.TotalCredit.StringFixed(2)})
	cw.Flush()
}
