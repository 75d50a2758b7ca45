package telegram

import (
	"crypto/subtle"
	"net/http"

	"github.com/bifidokk/shopping-list/internal/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// MessageSender sends the confirmation reply. Satisfied by *Client; nil-able
// for deployments without a bot token.
type MessageSender interface {
	SendMessage(chatID int64, text string) error
}

// WebhookHandler receives bot updates. Whatever happens while processing, it
// acknowledges with 200 so Telegram does not retry-storm the endpoint.
type WebhookHandler struct {
	service *services.WebhookService
	sender  MessageSender
	secret  string
	log     *logrus.Logger
}

func NewWebhookHandler(service *services.WebhookService, sender MessageSender, secret string, log *logrus.Logger) *WebhookHandler {
	return &WebhookHandler{service: service, sender: sender, secret: secret, log: log}
}

func (h *WebhookHandler) Handle(c *gin.Context) {
	if subtle.ConstantTimeCompare([]byte(c.Param("secret")), []byte(h.secret)) != 1 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.log.WithError(err).Warn("failed to decode webhook payload")
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	message := update.Message
	if message == nil {
		message = update.EditedMessage
	}
	if message == nil || message.Text == "" || message.From == nil {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	h.log.WithField("update_id", update.UpdateID).Info("received telegram webhook")

	result, err := h.service.ProcessMessage(message)
	if err != nil {
		h.log.WithError(err).Error("error processing webhook message")
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	if result.ShouldRespond && h.sender != nil {
		if err := h.sender.SendMessage(message.Chat.ID, h.service.BuildConfirmation(result)); err != nil {
			h.log.WithError(err).WithField("chat_id", message.Chat.ID).Error("failed to send confirmation")
		}
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
