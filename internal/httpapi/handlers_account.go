package httpapi

import (
	"net/http"
	"strings"

	"fintrack/internal/core"
)

type accountDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Balance string `json:"balance"`
}

func toAccountDTO(acc core.Account) accountDTO {
	return accountDTO{
		ID:      acc.ID.String(),
		Name:    acc.Name,
		Balance: acc.Balance.StringFixed(2),
	}
}

type createAccountRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts := s.accounts.GetAllAccounts()
	dtos := make([]accountDTO, 0, len(accounts))
	for _, acc := range accounts {
		dtos = append(dtos, toAccountDTO(acc))
	}
	NewResponse().JSON(dtos).Write(w)
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		UnprocessableEntityError("account name must not be empty").Write(w)
		return
	}

	acc := s.accounts.CreateAccount(req.Name)
	s.logger.InfoContext(r.Context(), "account created",
		"account_id", acc.ID.String(),
		"name", acc.Name)
	NewResponse().Status(http.StatusCreated).JSON(toAccountDTO(acc)).Write(w)
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	acc, ok := s.accounts.GetAccount(id)
	if !ok {
		NotFoundError("account not found").Write(w)
		return
	}
	NewResponse().JSON(toAccountDTO(acc)).Write(w)
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	if _, ok := s.accounts.GetAccount(id); !ok {
		NotFoundError("account not found").Write(w)
		return
	}
	if !s.accounts.DeleteAccount(id) {
		ConflictError("account still referenced by operations").Write(w)
		return
	}
	s.invalidateAnalytics()
	NewResponse().Status(http.StatusNoContent).Write(w)
}

func (s *Server) handleTotalBalance(w http.ResponseWriter, r *http.Request) {
	NewResponse().JSON(map[string]string{
		"total_balance": s.accounts.CalculateTotalBalance().StringFixed(2),
	}).Write(w)
}
