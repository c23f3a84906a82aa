package httpapi

import (
	"net/http"
	"strings"

	"fintrack/internal/core"
)

type categoryDTO struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Name string `json:"name"`
}

func toCategoryDTO(cat core.Category) categoryDTO {
	return categoryDTO{
		ID:   cat.ID.String(),
		Type: string(cat.Type),
		Name: cat.Name,
	}
}

type createCategoryRequest struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	var categories []core.Category
	if v := strings.TrimSpace(r.URL.Query().Get("type")); v != "" {
		t := core.OperationType(v)
		if !t.Valid() {
			BadRequestError("type must be INCOME or EXPENSE").Write(w)
			return
		}
		categories = s.categories.GetCategoriesByType(t)
	} else {
		categories = s.categories.GetAllCategories()
	}

	dtos := make([]categoryDTO, 0, len(categories))
	for _, cat := range categories {
		dtos = append(dtos, toCategoryDTO(cat))
	}
	NewResponse().JSON(dtos).Write(w)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	t := core.OperationType(req.Type)
	if !t.Valid() {
		UnprocessableEntityError("type must be INCOME or EXPENSE").Write(w)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		UnprocessableEntityError("category name must not be empty").Write(w)
		return
	}

	cat := s.categories.CreateCategory(t, req.Name)
	s.logger.InfoContext(r.Context(), "category created",
		"category_id", cat.ID.String(),
		"type", string(cat.Type),
		"name", cat.Name)
	NewResponse().Status(http.StatusCreated).JSON(toCategoryDTO(cat)).Write(w)
}

func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	cat, ok := s.categories.GetCategory(id)
	if !ok {
		NotFoundError("category not found").Write(w)
		return
	}
	NewResponse().JSON(toCategoryDTO(cat)).Write(w)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	if _, ok := s.categories.GetCategory(id); !ok {
		NotFoundError("category not found").Write(w)
		return
	}
	if !s.categories.DeleteCategory(id) {
		ConflictError("category still referenced by operations").Write(w)
		return
	}
	s.invalidateAnalytics()
	NewResponse().Status(http.StatusNoContent).Write(w)
}
