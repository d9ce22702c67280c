package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/el-receso/cafeteria-service/internal/api"
	"github.com/el-receso/cafeteria-service/internal/models"
)

// MenuCatalog is the slice of the menu service the handler needs.
type MenuCatalog interface {
	AddItem(ctx context.Context, req models.MenuItemRequest) (*models.MenuItem, error)
	UpdateItem(ctx context.Context, id uuid.UUID, req models.MenuItemRequest) (*models.MenuItem, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
	ListByCategory(ctx context.Context) ([]models.CategoryGroup, error)
}

// MenuHandler handles menu browsing and admin menu management
type MenuHandler struct {
	menu   MenuCatalog
	logger *logrus.Logger
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menu MenuCatalog, logger *logrus.Logger) *MenuHandler {
	return &MenuHandler{menu: menu, logger: logger}
}

// List handles GET /menu
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	groups, err := h.menu.ListByCategory(r.Context())
	if err != nil {
		api.RespondError(w, h.logger, err)
		return
	}

	api.RespondJSON(w, http.StatusOK, groups)
}

// AddProduct handles POST /admin/add_product
func (h *MenuHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	var req models.MenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.RespondJSON(w, http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		return
	}

	item, err := h.menu.AddItem(r.Context(), req)
	if err != nil {
		api.RespondError(w, h.logger, err)
		return
	}

	api.RespondJSON(w, http.StatusCreated, item)
}

// UpdateProduct handles PUT /admin/product/{itemId}
func (h *MenuHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["itemId"])
	if err != nil {
		api.RespondJSON(w, http.StatusBadRequest, api.ErrorResponse{Error: "invalid item id"})
		return
	}

	var req models.MenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.RespondJSON(w, http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		return
	}

	item, err := h.menu.UpdateItem(r.Context(), id, req)
	if err != nil {
		api.RespondError(w, h.logger, err)
		return
	}

	api.RespondJSON(w, http.StatusOK, item)
}

// DeleteProduct handles DELETE /admin/product/{itemId}
func (h *MenuHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["itemId"])
	if err != nil {
		api.RespondJSON(w, http.StatusBadRequest, api.ErrorResponse{Error: "invalid item id"})
		return
	}

	if err := h.menu.DeleteItem(r.Context(), id); err != nil {
		api.RespondError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
