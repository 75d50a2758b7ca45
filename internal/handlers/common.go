package handlers

import (
	"strconv"
	"time"

	"github.com/bifidokk/shopping-list/internal/models"
	"github.com/bifidokk/shopping-list/internal/services"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"operation successful"`
}

// ShoppingListResponse is a list as one specific user sees it: is_default
// and is_owner are computed per caller, never stored on the list.
type ShoppingListResponse struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	Description    *string   `json:"description,omitempty"`
	IsDefault      bool      `json:"is_default"`
	IsOwner        bool      `json:"is_owner"`
	SharedWith     int       `json:"shared_with"`
	TotalItems     int       `json:"total_items"`
	CompletedItems int       `json:"completed_items"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type ShareResponse struct {
	ID                  uint      `json:"id"`
	ListID              uint      `json:"list_id"`
	OwnerID             uint      `json:"owner_id"`
	SharedWithUserID    uint      `json:"shared_with_user_id"`
	SharedWithUsername  *string   `json:"shared_with_username,omitempty"`
	SharedWithFirstName *string   `json:"shared_with_first_name,omitempty"`
	SharedWithLastName  *string   `json:"shared_with_last_name,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

func newShoppingListResponse(list *models.ShoppingList, user *models.User, defaultListID uint, counts services.ItemCounts) ShoppingListResponse {
	return ShoppingListResponse{
		ID:             list.ID,
		Name:           list.Name,
		Description:    list.Description,
		IsDefault:      list.ID == defaultListID,
		IsOwner:        list.OwnerID == user.ID,
		SharedWith:     list.SharedWith,
		TotalItems:     counts.Total,
		CompletedItems: counts.Completed,
		CreatedAt:      list.CreatedAt,
		UpdatedAt:      list.UpdatedAt,
	}
}

func newShareResponse(share *models.ListShare) ShareResponse {
	return ShareResponse{
		ID:                  share.ID,
		ListID:              share.ShoppingListID,
		OwnerID:             share.OwnerID,
		SharedWithUserID:    share.SharedWithUserID,
		SharedWithUsername:  share.SharedWithUser.Username,
		SharedWithFirstName: share.SharedWithUser.FirstName,
		SharedWithLastName:  share.SharedWithUser.LastName,
		CreatedAt:           share.CreatedAt,
	}
}

// currentUser returns the authenticated user placed in the context by the
// auth middleware.
func currentUser(c *gin.Context) *models.User {
	return c.MustGet("user").(*models.User)
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
