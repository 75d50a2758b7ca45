package handlers

import (
	"net/http"

	"github.com/bifidokk/shopping-list/internal/services"
	"github.com/bifidokk/shopping-list/internal/ws"

	"github.com/gin-gonic/gin"
)

type ShoppingListHandler struct {
	listService *services.ShoppingListService
	itemService *services.ItemService
	hub         *ws.Hub
}

func NewShoppingListHandler(listService *services.ShoppingListService, itemService *services.ItemService, hub *ws.Hub) *ShoppingListHandler {
	return &ShoppingListHandler{listService: listService, itemService: itemService, hub: hub}
}

type CreateShoppingListRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=255" example:"Groceries"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
}

type UpdateShoppingListRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
}

// ListShoppingLists godoc
// @Summary      List shopping lists
// @Description  Get all lists the caller owns or collaborates on, default list first
// @Tags         lists
// @Produce      json
// @Success      200 {array} ShoppingListResponse
// @Failure      401 {object} ErrorResponse
// @Router       /api/v1/lists [get]
func (h *ShoppingListHandler) ListShoppingLists(c *gin.Context) {
	user := currentUser(c)

	lists, err := h.listService.FindUserLists(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	defaultListID, err := h.listService.GetDefaultListID(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	listIDs := make([]uint, len(lists))
	for i := range lists {
		listIDs[i] = lists[i].ID
	}
	counts, err := h.itemService.CountForLists(listIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	responses := make([]ShoppingListResponse, len(lists))
	for i := range lists {
		responses[i] = newShoppingListResponse(&lists[i], user, defaultListID, counts[lists[i].ID])
	}

	c.JSON(http.StatusOK, responses)
}

// CreateShoppingList godoc
// @Summary      Create a shopping list
// @Description  Create a list owned by the caller; their first list becomes their default
// @Tags         lists
// @Accept       json
// @Produce      json
// @Param        request body CreateShoppingListRequest true "List data"
// @Success      201 {object} ShoppingListResponse
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /api/v1/lists [post]
func (h *ShoppingListHandler) CreateShoppingList(c *gin.Context) {
	user := currentUser(c)

	var req CreateShoppingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	list, err := h.listService.Create(user, req.Name, req.Description)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	defaultListID, err := h.listService.GetDefaultListID(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, newShoppingListResponse(list, user, defaultListID, services.ItemCounts{}))
}

// GetShoppingList godoc
// @Summary      Get a shopping list
// @Tags         lists
// @Produce      json
// @Param        id path int true "List ID"
// @Success      200 {object} ShoppingListResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/lists/{id} [get]
func (h *ShoppingListHandler) GetShoppingList(c *gin.Context) {
	user := currentUser(c)
	listID, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid list id"})
		return
	}

	list, err := h.listService.FindForUser(listID, user)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "shopping list not found"})
		return
	}

	defaultListID, err := h.listService.GetDefaultListID(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	counts, err := h.itemService.CountForLists([]uint{list.ID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, newShoppingListResponse(list, user, defaultListID, counts[list.ID]))
}

// UpdateShoppingList godoc
// @Summary      Update a shopping list
// @Description  Partial update of name and description
// @Tags         lists
// @Accept       json
// @Produce      json
// @Param        id path int true "List ID"
// @Param        request body UpdateShoppingListRequest true "Fields to change"
// @Success      200 {object} ShoppingListResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/lists/{id} [put]
func (h *ShoppingListHandler) UpdateShoppingList(c *gin.Context) {
	user := currentUser(c)
	listID, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid list id"})
		return
	}

	list, err := h.listService.FindForUser(listID, user)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "shopping list not found"})
		return
	}

	var req UpdateShoppingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	list, err = h.listService.Update(list, req.Name, req.Description)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	h.hub.Broadcast(list.ID, ws.Message{Type: ws.EventListUpdated, Data: list})

	defaultListID, err := h.listService.GetDefaultListID(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	counts, err := h.itemService.CountForLists([]uint{list.ID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, newShoppingListResponse(list, user, defaultListID, counts[list.ID]))
}

// DeleteShoppingList godoc
// @Summary      Delete a shopping list
// @Description  Owner only; items, shares and default mappings cascade away
// @Tags         lists
// @Produce      json
// @Param        id path int true "List ID"
// @Success      204
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/lists/{id} [delete]
func (h *ShoppingListHandler) DeleteShoppingList(c *gin.Context) {
	user := currentUser(c)
	listID, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid list id"})
		return
	}

	list, err := h.listService.FindForUser(listID, user)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "shopping list not found"})
		return
	}

	if list.OwnerID != user.ID {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "only the owner can delete this list"})
		return
	}

	if err := h.listService.Delete(list); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// SetDefaultShoppingList godoc
// @Summary      Set a list as the caller's default
// @Description  Owner or collaborator; only the caller's own default mapping changes
// @Tags         lists
// @Produce      json
// @Param        id path int true "List ID"
// @Success      200 {object} ShoppingListResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/lists/{id}/set-default [post]
func (h *ShoppingListHandler) SetDefaultShoppingList(c *gin.Context) {
	user := currentUser(c)
	listID, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid list id"})
		return
	}

	list, err := h.listService.FindForUser(listID, user)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "shopping list not found"})
		return
	}

	if err := h.listService.SetAsDefault(list, user); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	counts, err := h.itemService.CountForLists([]uint{list.ID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, newShoppingListResponse(list, user, list.ID, counts[list.ID]))
}
