package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tallybook-dev/tallybook/internal/ledger"
	"github.com/tallybook-dev/tallybook/internal/model"
)

type createAccountRequest struct {
	Code     string `json:"code" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Type     string `json:"type" validate:"required,oneof=asset liability equity revenue expense"`
	Category string `json:"category" validate:"required"`
	ParentID string `json:"parentId"`
}

type updateAccountRequest struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
}

func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	filter := ledger.AccountFilter{}
	if t := r.URL.Query().Get("type"); t != "" {
		at := model.AccountType(t)
		if !at.Valid() {
			writeError(w, http.StatusBadRequest, "unknown account type: "+t)
			return
		}
		filter.Type = at
	}
	writeData(w, http.StatusOK, s.ledger.Accounts(filter))
}

func (s *Server) createAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	acct, err := s.ledger.CreateAccount(ledger.AccountInput{
		Code:     req.Code,
		Name:     req.Name,
		Type:     model.AccountType(req.Type),
		Category: req.Category,
		ParentID: req.ParentID,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	writeData(w, http.StatusCreated, acct)
}

func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
	acct, err := s.ledger.Account(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeData(w, http.StatusOK, acct)
}

func (s *Server) updateAccount(w http.ResponseWriter, r *http.Request) {
	var req updateAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	acct, err := s.ledger.UpdateAccount(chi.URLParam(r, "id"), ledger.AccountPatch{
		Name:     req.Name,
		Category: req.Category,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	writeData(w, http.StatusOK, acct)
}

func (s *Server) deleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeleteAccount(chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) accountBalance(w http.ResponseWriter, r *http.Request) {
	asOf, err := dateParam(r, "asOf")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id := chi.URLParam(r, "id")
	balance, err := s.ledger.AccountBalance(id, asOf)
	if err != nil {
		respondError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{
		"accountId": id,
		"balance":   balance,
	})
}

func (s *Server) tAccount(w http.ResponseWriter, r *http.Request) {
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
	writeData(w, http.StatusOK, ta)
}

// dateParam parses an optional ISO-8601 date query parameter. Absent
// means the zero date (unbounded).
func dateParam(r *http.Request, name string) (model.Date, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return model.Date{}, nil
	}
	return model.ParseDate(raw)
}
