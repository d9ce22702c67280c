package handler

import (
	"net/http"

	"github.com/el-receso/cafeteria-service/internal/middleware"
	"github.com/el-receso/cafeteria-service/internal/websockets"
)

// FeedHandler upgrades admin connections onto the order feed
type FeedHandler struct {
	hub *websockets.Hub
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(hub *websockets.Hub) *FeedHandler {
	return &FeedHandler{hub: hub}
}

// OrderFeed handles GET /ws/orders. Auth and the admin gate run in the
// middleware chain before the upgrade.
func (h *FeedHandler) OrderFeed(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := websockets.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		// If upgrading fails, the upgrader has already written the error to the response
		return
	}

	websockets.ServeWs(h.hub, conn, userID)
}
