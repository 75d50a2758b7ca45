package handlers

import (
	"net/http"

	"github.com/bifidokk/shopping-list/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type TelegramAuthRequest struct {
	InitData string `json:"init_data" binding:"required"`
}

type TelegramAuthResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}

// Authenticate godoc
// @Summary      Authenticate with Telegram init data
// @Description  Validate Mini App init data and exchange it for a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body TelegramAuthRequest true "Signed init data"
// @Success      200 {object} TelegramAuthResponse
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /api/v1/auth/telegram [post]
func (h *AuthHandler) Authenticate(c *gin.Context) {
	var req TelegramAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.authService.Authenticate(req.InitData)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication failed"})
		return
	}

	token, err := h.authService.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, TelegramAuthResponse{Token: token, User: user})
}
