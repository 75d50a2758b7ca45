package handlers

import (
	"log"
	"net/http"

	"github.com/bifidokk/shopping-list/internal/services"
	"github.com/bifidokk/shopping-list/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	hub           *ws.Hub
	authService   *services.AuthService
	accessService *services.AccessService
}

func NewWSHandler(hub *ws.Hub, authService *services.AuthService, accessService *services.AccessService) *WSHandler {
	return &WSHandler{hub: hub, authService: authService, accessService: accessService}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleListWebSocket godoc
// @Summary      WebSocket stream of list updates
// @Description  Browsers cannot set headers on websocket dials, so the bearer token rides in the token query param
// @Tags         websocket
// @Param        id path int true "List ID"
// @Param        token query string true "Bearer token"
// @Router       /ws/lists/{id} [get]
func (h *WSHandler) HandleListWebSocket(c *gin.Context) {
	listID, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid list id"})
		return
	}

	userID, err := h.authService.ValidateToken(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid or expired token"})
		return
	}

	if !h.accessService.HasAccess(listID, userID) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "shopping list not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	h.hub.AddConnection(listID, conn)
	defer h.hub.RemoveConnection(listID, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
