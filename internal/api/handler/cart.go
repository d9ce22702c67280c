package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/el-receso/cafeteria-service/internal/api"
	"github.com/el-receso/cafeteria-service/internal/middleware"
	"github.com/el-receso/cafeteria-service/internal/models"
)

// CartKeeper is the slice of the cart service the handler needs.
type CartKeeper interface {
	AddItem(ctx context.Context, sessionID string, itemID uuid.UUID) (*models.Cart, error)
	View(ctx context.Context, sessionID string) ([]models.CartEntry, decimal.Decimal, error)
}

// CheckoutRunner converts a session cart into an order.
type CheckoutRunner interface {
	Checkout(ctx context.Context, userID uuid.UUID, sessionID string) (*models.Order, error)
}

// CartHandler handles the session cart and checkout
type CartHandler struct {
	carts    CartKeeper
	checkout CheckoutRunner
	logger   *logrus.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(carts CartKeeper, checkout CheckoutRunner, logger *logrus.Logger) *CartHandler {
	return &CartHandler{carts: carts, checkout: checkout, logger: logger}
}

// cartView is the JSON shape of GET /cart
type cartView struct {
	Entries []models.CartEntry `json:"entries"`
	Total   decimal.Decimal    `json:"total"`
}

// AddToCart handles POST /add_to_cart/{itemId}
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionID(r.Context())
	if !ok {
		api.RespondJSON(w, http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	itemID, err := uuid.Parse(mux.Vars(r)["itemId"])
	if err != nil {
		api.RespondJSON(w, http.StatusBadRequest, api.ErrorResponse{Error: "invalid item id"})
		return
	}

	c, err := h.carts.AddItem(r.Context(), sessionID, itemID)
	if err != nil {
		api.RespondError(w, h.logger, err)
		return
	}

	api.RespondJSON(w, http.StatusOK, cartView{Entries: c.Entries, Total: c.Total()})
}

// ViewCart handles GET /cart
func (h *CartHandler) ViewCart(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionID(r.Context())
	if !ok {
		api.RespondJSON(w, http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	entries, total, err := h.carts.View(r.Context(), sessionID)
	if err != nil {
		api.RespondError(w, h.logger, err)
		return
	}

	if entries == nil {
		entries = []models.CartEntry{}
	}

	api.RespondJSON(w, http.StatusOK, cartView{Entries: entries, Total: total})
}

// Checkout handles POST /checkout (and its GET alias)
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionID(r.Context())
	if !ok {
		api.RespondJSON(w, http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	userID, ok := currentUserID(r)
	if !ok {
		api.RespondJSON(w, http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	order, err := h.checkout.Checkout(r.Context(), userID, sessionID)
	if err != nil {
		api.RespondError(w, h.logger, err)
		return
	}

	api.RespondJSON(w, http.StatusCreated, order)
}
