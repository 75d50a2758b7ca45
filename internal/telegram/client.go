package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// Client wraps the bot API for the few calls the backend makes: confirmation
// replies, group member discovery and webhook registration.
type Client struct {
	bot *tgbotapi.BotAPI
	log *logrus.Logger
}

func NewClient(token string, log *logrus.Logger) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Client{bot: bot, log: log}, nil
}

func (c *Client) SendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := c.bot.Send(msg)
	return err
}

// ChatMemberIDs returns the Telegram IDs of the chat administrators. The bot
// API exposes no full member list for large groups, so administrators stand
// in for "the members we can see".
func (c *Client) ChatMemberIDs(chatID int64) ([]int64, error) {
	admins, err := c.bot.GetChatAdministrators(tgbotapi.ChatAdministratorsConfig{
		ChatConfig: tgbotapi.ChatConfig{ChatID: chatID},
	})
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(admins))
	for _, admin := range admins {
		if admin.User == nil || admin.User.IsBot {
			continue
		}
		ids = append(ids, admin.User.ID)
	}
	return ids, nil
}

// SetWebhook registers the webhook URL with Telegram.
func (c *Client) SetWebhook(url string) error {
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return err
	}
	_, err = c.bot.Request(wh)
	return err
}
