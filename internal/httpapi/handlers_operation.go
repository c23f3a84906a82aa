package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"fintrack/internal/core"

	"github.com/google/uuid"
)

type operationDTO struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	AccountID   string `json:"account_id"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
	CategoryID  string `json:"category_id"`
	Description string `json:"description,omitempty"`
}

func toOperationDTO(op core.Operation) operationDTO {
	return operationDTO{
		ID:          op.ID.String(),
		Type:        string(op.Type),
		AccountID:   op.AccountID.String(),
		Amount:      op.Amount.StringFixed(2),
		Date:        op.Date.Format(time.RFC3339),
		CategoryID:  op.CategoryID.String(),
		Description: op.Description,
	}
}

type createOperationRequest struct {
	Type        string `json:"type"`
	AccountID   string `json:"account_id"`
	Amount      string `json:"amount"`
	CategoryID  string `json:"category_id"`
	Description string `json:"description"`
	Date        string `json:"date"` // optional, YYYY-MM-DD
}

func (s *Server) handleListOperations(w http.ResponseWriter, r *http.Request) {
	ops, errResp := s.filterOperations(r)
	if errResp != nil {
		errResp.Write(w)
		return
	}
	dtos := make([]operationDTO, 0, len(ops))
	for _, op := range ops {
		dtos = append(dtos, toOperationDTO(op))
	}
	NewResponse().JSON(dtos).Write(w)
}

func (s *Server) filterOperations(r *http.Request) ([]core.Operation, *ResponseBuilder) {
	q := r.URL.Query()
	if v := strings.TrimSpace(q.Get("account_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, BadRequestError("invalid account_id")
		}
		return s.operations.GetOperationsByAccount(id), nil
	}
	if v := strings.TrimSpace(q.Get("category_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, BadRequestError("invalid category_id")
		}
		return s.operations.GetOperationsByCategory(id), nil
	}
	if v := strings.TrimSpace(q.Get("type")); v != "" {
		t := core.OperationType(v)
		if !t.Valid() {
			return nil, BadRequestError("type must be INCOME or EXPENSE")
		}
		return s.operations.GetOperationsByType(t), nil
	}
	if q.Get("start") != "" || q.Get("end") != "" {
		start, end, err := parsePeriod(r)
		if err != nil {
			return nil, BadRequestError(err.Error())
		}
		return s.operations.GetOperationsByDateRange(start, end), nil
	}
	return s.operations.GetAllOperations(), nil
}

func (s *Server) handleCreateOperation(w http.ResponseWriter, r *http.Request) {
	var req createOperationRequest
	if err := decodeJSON(r, &req); err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	t := core.OperationType(req.Type)
	if !t.Valid() {
		UnprocessableEntityError("type must be INCOME or EXPENSE").Write(w)
		return
	}
	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		UnprocessableEntityError("invalid account_id").Write(w)
		return
	}
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		UnprocessableEntityError("invalid category_id").Write(w)
		return
	}
	amount, err := core.ParseAmount(req.Amount)
	if err != nil {
		UnprocessableEntityError("invalid amount: " + err.Error()).Write(w)
		return
	}

	var op core.Operation
	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			UnprocessableEntityError("invalid date, want YYYY-MM-DD").Write(w)
			return
		}
		op, err = s.operations.CreateOperationAt(r.Context(), t, accountID, amount, categoryID, req.Description, date)
		if err != nil {
			s.writeOperationError(w, err)
			return
		}
	} else {
		op, err = s.operations.CreateOperation(r.Context(), t, accountID, amount, categoryID, req.Description)
		if err != nil {
			s.writeOperationError(w, err)
			return
		}
	}

	s.invalidateAnalytics()
	s.logger.InfoContext(r.Context(), "operation created",
		"operation_id", op.ID.String(),
		"type", string(op.Type),
		"amount", op.Amount.StringFixed(2))
	NewResponse().Status(http.StatusCreated).JSON(toOperationDTO(op)).Write(w)
}

func (s *Server) writeOperationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrAccountNotFound):
		UnprocessableEntityError("account not found").Write(w)
	case errors.Is(err, core.ErrCategoryNotFound):
		UnprocessableEntityError("category not found").Write(w)
	case errors.Is(err, core.ErrInsufficientFunds):
		UnprocessableEntityError("insufficient funds").Write(w)
	case errors.Is(err, core.ErrInvalidOperationType):
		UnprocessableEntityError("type must be INCOME or EXPENSE").Write(w)
	default:
		InternalServerError(err.Error()).Write(w)
	}
}

func (s *Server) handleGetOperation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	op, ok := s.operations.GetOperation(id)
	if !ok {
		NotFoundError("operation not found").Write(w)
		return
	}
	NewResponse().JSON(toOperationDTO(op)).Write(w)
}

func (s *Server) handleDeleteOperation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	if !s.operations.DeleteOperation(r.Context(), id) {
		NotFoundError("operation not found").Write(w)
		return
	}
	s.invalidateAnalytics()
	s.logger.InfoContext(r.Context(), "operation deleted",
		"operation_id", id.String())
	NewResponse().Status(http.StatusNoContent).Write(w)
}
