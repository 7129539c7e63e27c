package server

import (
	"net/http"
)

func (s *Server) trialBalance(w http.ResponseWriter, r *http.Request) {
	asOf, err := dateParam(r, "asOf")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeData(w, http.StatusOK, s.ledger.ComputeTrialBalance(asOf))
}

func (s *Server) balanceSheet(w http.ResponseWriter, r *http.Request) {
	asOf, err := dateParam(r, "asOf")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeData(w, http.StatusOK, s.ledger.ComputeBalanceSheet(asOf))
}

func (s *Server) incomeStatement(w http.ResponseWriter, r *http.Request) {
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
	is, err := s.ledger.ComputeIncomeStatement(start, end)
	if err != nil {
		respondError(w, err)
		return
	}
	writeData(w, http.StatusOK, is)
}
