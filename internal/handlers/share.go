package handlers

import (
	"errors"
	"net/http"

	"github.com/bifidokk/shopping-list/internal/services"
	"github.com/bifidokk/shopping-list/internal/ws"

	"github.com/gin-gonic/gin"
)

type ShareHandler struct {
	shareService  *services.ShareService
	accessService *services.AccessService
	hub           *ws.Hub
}

func NewShareHandler(shareService *services.ShareService, accessService *services.AccessService, hub *ws.Hub) *ShareHandler {
	return &ShareHandler{shareService: shareService, accessService: accessService, hub: hub}
}

type ShareListRequest struct {
	TelegramUsername string `json:"telegram_username" binding:"required,min=5,max=33" example:"@bob_smith"`
}

// ListShares godoc
// @Summary      List a list's shares
// @Description  Visible to the owner and collaborators, oldest first
// @Tags         shares
// @Produce      json
// @Param        id path int true "List ID"
// @Success      200 {array} ShareResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/lists/{id}/shares [get]
func (h *ShareHandler) ListShares(c *gin.Context) {
	user := currentUser(c)
	listID, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid list id"})
		return
	}

	// A caller with no access at all sees the same 404 as a missing list,
	// so existence never leaks to strangers.
	list, err := h.accessService.FindByID(listID)
	if err != nil || !h.accessService.HasAccess(list.ID, user.ID) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "shopping list not found"})
		return
	}

	shares, err := h.shareService.ListShares(list)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	responses := make([]ShareResponse, len(shares))
	for i := range shares {
		responses[i] = newShareResponse(&shares[i])
	}
	c.JSON(http.StatusOK, responses)
}

// CreateShare godoc
// @Summary      Share a list with another Telegram user
// @Description  Owner only; the handle may carry a leading @
// @Tags         shares
// @Accept       json
// @Produce      json
// @Param        id path int true "List ID"
// @Param        request body ShareListRequest true "Target user handle"
// @Success      201 {object} ShareResponse
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/lists/{id}/shares [post]
func (h *ShareHandler) CreateShare(c *gin.Context) {
	user := currentUser(c)
	listID, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid list id"})
		return
	}

	list, err := h.accessService.FindByID(listID)
	if err != nil || !h.accessService.HasAccess(list.ID, user.ID) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "shopping list not found"})
		return
	}

	if !h.accessService.IsOwner(list.ID, user.ID) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "only the owner can share this list"})
		return
	}

	var req ShareListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	share, err := h.shareService.ShareList(list, req.TelegramUsername, user)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		case errors.Is(err, services.ErrSelfShare), errors.Is(err, services.ErrAlreadyShared):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		}
		return
	}

	h.hub.Broadcast(list.ID, ws.Message{Type: ws.EventShareAdded, Data: newShareResponse(share)})
	c.JSON(http.StatusCreated, newShareResponse(share))
}

// DeleteShare godoc
// @Summary      Remove a collaborator
// @Description  The owner may remove anyone; a collaborator only themself
// @Tags         shares
// @Produce      json
// @Param        id path int true "List ID"
// @Param        userId path int true "Shared user ID"
// @Success      204
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/lists/{id}/shares/{userId} [delete]
func (h *ShareHandler) DeleteShare(c *gin.Context) {
	user := currentUser(c)
	listID, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid list id"})
		return
	}

	sharedUserID, ok := parseID(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
		return
	}

	list, err := h.accessService.FindByID(listID)
	if err != nil || !h.accessService.HasAccess(list.ID, user.ID) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "shopping list not found"})
		return
	}

	share, err := h.shareService.FindShare(list, sharedUserID)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "share not found"})
		return
	}

	isOwner := h.accessService.IsOwner(list.ID, user.ID)
	isRemovingSelf := sharedUserID == user.ID
	if !isOwner && !isRemovingSelf {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "access denied"})
		return
	}

	if err := h.shareService.RemoveShare(share); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	h.hub.Broadcast(list.ID, ws.Message{Type: ws.EventShareRemoved, Data: gin.H{"shared_with_user_id": sharedUserID}})
	c.Status(http.StatusNoContent)
}
