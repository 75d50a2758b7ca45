package handlers

import (
	"net/http"

	"github.com/bifidokk/shopping-list/internal/models"
	"github.com/bifidokk/shopping-list/internal/services"
	"github.com/bifidokk/shopping-list/internal/ws"

	"github.com/gin-gonic/gin"
)

type ItemHandler struct {
	listService *services.ShoppingListService
	itemService *services.ItemService
	hub         *ws.Hub
}

func NewItemHandler(listService *services.ShoppingListService, itemService *services.ItemService, hub *ws.Hub) *ItemHandler {
	return &ItemHandler{listService: listService, itemService: itemService, hub: hub}
}

type CreateItemRequest struct {
	Name     string  `json:"name" binding:"required,min=1,max=255" example:"Milk"`
	Quantity *int    `json:"quantity" binding:"omitempty,min=0"`
	Unit     *string `json:"unit" binding:"omitempty,max=50"`
	Notes    *string `json:"notes" binding:"omitempty,max=5000"`
	IsDone   bool    `json:"is_done"`
}

type UpdateItemRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=255"`
	Quantity *int    `json:"quantity" binding:"omitempty,min=0"`
	Unit     *string `json:"unit" binding:"omitempty,max=50"`
	Notes    *string `json:"notes" binding:"omitempty,max=5000"`
	IsDone   *bool   `json:"is_done"`
}

// resolveList maps "no access" and "does not exist" to the same 404.
func (h *ItemHandler) resolveList(c *gin.Context) (*models.ShoppingList, bool) {
	user := currentUser(c)
	listID, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid list id"})
		return nil, false
	}

	list, err := h.listService.FindForUser(listID, user)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "shopping list not found"})
		return nil, false
	}
	return list, true
}

// ListItems godoc
// @Summary      List items
// @Tags         items
// @Produce      json
// @Param        id path int true "List ID"
// @Success      200 {array} models.Item
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/lists/{id}/items [get]
func (h *ItemHandler) ListItems(c *gin.Context) {
	list, ok := h.resolveList(c)
	if !ok {
		return
	}

	items, err := h.itemService.ListItems(list)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, items)
}

// CreateItem godoc
// @Summary      Add an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id path int true "List ID"
// @Param        request body CreateItemRequest true "Item data"
// @Success      201 {object} models.Item
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/lists/{id}/items [post]
func (h *ItemHandler) CreateItem(c *gin.Context) {
	list, ok := h.resolveList(c)
	if !ok {
		return
	}

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	item, err := h.itemService.Create(services.CreateItemInput{
		Name:     req.Name,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		Notes:    req.Notes,
		IsDone:   req.IsDone,
	}, list)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	h.hub.Broadcast(list.ID, ws.Message{Type: ws.EventItemCreated, Data: item})
	c.JSON(http.StatusCreated, item)
}

// GetItem godoc
// @Summary      Get an item
// @Tags         items
// @Produce      json
// @Param        id path int true "List ID"
// @Param        itemId path int true "Item ID"
// @Success      200 {object} models.Item
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/lists/{id}/items/{itemId} [get]
func (h *ItemHandler) GetItem(c *gin.Context) {
	list, ok := h.resolveList(c)
	if !ok {
		return
	}

	itemID, ok := parseID(c, "itemId")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid item id"})
		return
	}

	item, err := h.itemService.FindItem(itemID, list)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "item not found"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// UpdateItem godoc
// @Summary      Update an item
// @Description  Partial update; bumps both item and list timestamps
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id path int true "List ID"
// @Param        itemId path int true "Item ID"
// @Param        request body UpdateItemRequest true "Fields to change"
// @Success      200 {object} models.Item
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/lists/{id}/items/{itemId} [put]
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	list, ok := h.resolveList(c)
	if !ok {
		return
	}

	itemID, ok := parseID(c, "itemId")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid item id"})
		return
	}

	item, err := h.itemService.FindItem(itemID, list)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "item not found"})
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	item, err = h.itemService.Update(item, services.UpdateItemInput{
		Name:     req.Name,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		Notes:    req.Notes,
		IsDone:   req.IsDone,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	h.hub.Broadcast(list.ID, ws.Message{Type: ws.EventItemUpdated, Data: item})
	c.JSON(http.StatusOK, item)
}

// DeleteItem godoc
// @Summary      Delete an item
// @Tags         items
// @Produce      json
// @Param        id path int true "List ID"
// @Param        itemId path int true "Item ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/lists/{id}/items/{itemId} [delete]
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	list, ok := h.resolveList(c)
	if !ok {
		return
	}

	itemID, ok := parseID(c, "itemId")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid item id"})
		return
	}

	item, err := h.itemService.FindItem(itemID, list)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "item not found"})
		return
	}

	if err := h.itemService.Delete(item); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	h.hub.Broadcast(list.ID, ws.Message{Type: ws.EventItemDeleted, Data: gin.H{"id": item.ID}})
	c.Status(http.StatusNoContent)
}

// ToggleItem godoc
// @Summary      Toggle an item's done flag
// @Tags         items
// @Produce      json
// @Param        id path int true "List ID"
// @Param        itemId path int true "Item ID"
// @Success      200 {object} models.Item
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/lists/{id}/items/{itemId}/toggle [post]
func (h *ItemHandler) ToggleItem(c *gin.Context) {
	list, ok := h.resolveList(c)
	if !ok {
		return
	}

	itemID, ok := parseID(c, "itemId")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid item id"})
		return
	}

	item, err := h.itemService.FindItem(itemID, list)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "item not found"})
		return
	}

	item, err = h.itemService.Toggle(item)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	h.hub.Broadcast(list.ID, ws.Message{Type: ws.EventItemUpdated, Data: item})
	c.JSON(http.StatusOK, item)
}
