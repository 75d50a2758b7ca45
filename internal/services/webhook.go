package services

import (
	"errors"
	"fmt"

	"github.com/bifidokk/shopping-list/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const defaultListName = "Shopping List"

// GroupMemberLister fetches the known members of a group chat. Backed by the
// bot API (getChatAdministrators) in production.
type GroupMemberLister interface {
	ChatMemberIDs(chatID int64) ([]int64, error)
}

// ProcessResult summarizes one ingested message for the confirmation reply.
type ProcessResult struct {
	AddedCount    int
	TotalParsed   int
	TotalUsers    int
	ChatType      string
	ShouldRespond bool
}

// WebhookService ingests chat messages into default shopping lists. Items
// are inserted idempotently, so re-sending the same message adds nothing.
type WebhookService struct {
	db      *gorm.DB
	parser  *MessageParser
	lists   *ShoppingListService
	items   *ItemService
	members GroupMemberLister
	log     *logrus.Logger
}

func NewWebhookService(
	db *gorm.DB,
	parser *MessageParser,
	lists *ShoppingListService,
	items *ItemService,
	members GroupMemberLister,
	log *logrus.Logger,
) *WebhookService {
	return &WebhookService{db: db, parser: parser, lists: lists, items: items, members: members, log: log}
}

// ProcessMessage parses the message text and adds the resulting items to the
// sender's default list, or to every registered group member's default list
// for group chats.
func (s *WebhookService) ProcessMessage(message *tgbotapi.Message) (*ProcessResult, error) {
	if message.Chat == nil {
		return &ProcessResult{ChatType: "private"}, nil
	}

	chatType := message.Chat.Type
	result := &ProcessResult{ChatType: chatType}

	itemNames := s.parser.ParseItems(message.Text)
	if len(itemNames) == 0 {
		s.log.Debug("no items parsed from message")
		return result, nil
	}
	result.TotalParsed = len(itemNames)

	s.log.WithFields(logrus.Fields{
		"chat_type":   chatType,
		"chat_id":     message.Chat.ID,
		"items_count": len(itemNames),
	}).Info("parsed items from message")

	if chatType == "group" || chatType == "supergroup" {
		memberIDs, err := s.members.ChatMemberIDs(message.Chat.ID)
		if err != nil {
			s.log.WithError(err).WithField("chat_id", message.Chat.ID).Error("failed to get group members")
			return result, nil
		}
		result.TotalUsers = len(memberIDs)

		for _, telegramID := range memberIDs {
			var user models.User
			if err := s.db.Where("telegram_id = ?", telegramID).First(&user).Error; err != nil {
				continue
			}
			added, err := s.addToDefaultList(&user, itemNames)
			if err != nil {
				s.log.WithError(err).WithField("user_id", user.TelegramID).Error("failed to add items")
				continue
			}
			result.AddedCount += added
		}
		result.ShouldRespond = true
		return result, nil
	}

	if message.From == nil {
		return result, nil
	}
	result.TotalUsers = 1

	user, err := s.findOrCreateSender(message.From)
	if err != nil {
		return result, err
	}

	added, err := s.addToDefaultList(user, itemNames)
	if err != nil {
		return result, err
	}
	result.AddedCount = added
	result.ShouldRespond = true

	s.log.WithFields(logrus.Fields{
		"chat_id":      message.Chat.ID,
		"added_count":  result.AddedCount,
		"total_parsed": result.TotalParsed,
	}).Info("items added to shopping list")

	return result, nil
}

func (s *WebhookService) findOrCreateSender(from *tgbotapi.User) (*models.User, error) {
	var user models.User
	err := s.db.Where("telegram_id = ?", from.ID).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	s.log.WithField("telegram_id", from.ID).Info("creating new user")

	user = models.User{TelegramID: from.ID}
	if from.FirstName != "" {
		user.FirstName = &from.FirstName
	}
	if from.LastName != "" {
		user.LastName = &from.LastName
	}
	if from.UserName != "" {
		user.Username = &from.UserName
	}
	if from.LanguageCode != "" {
		user.LanguageCode = &from.LanguageCode
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// addToDefaultList inserts the parsed names into the user's default list,
// creating one named "Shopping List" when the user has none.
func (s *WebhookService) addToDefaultList(user *models.User, itemNames []string) (int, error) {
	defaultListID, err := s.lists.GetDefaultListID(user)
	if err != nil {
		return 0, err
	}

	if defaultListID == 0 {
		s.log.WithField("user_id", user.TelegramID).Info("creating default shopping list for user")
		list, err := s.lists.Create(user, defaultListName, nil)
		if err != nil {
			return 0, err
		}
		defaultListID = list.ID
	}

	list, err := s.lists.FindForUser(defaultListID, user)
	if err != nil {
		return 0, err
	}

	added := 0
	for _, name := range itemNames {
		item, err := s.items.AddItemIfNotExists(name, list)
		if err != nil {
			return added, err
		}
		if item != nil {
			added++
		}
	}
	return added, nil
}

// BuildConfirmation renders the reply sent back to the chat.
func (s *WebhookService) BuildConfirmation(result *ProcessResult) string {
	isGroup := result.ChatType == "group" || result.ChatType == "supergroup"

	if result.AddedCount == 0 {
		if result.TotalParsed == 0 {
			return "No items found in your message. Try sending items like:\n\nmilk\nbread\neggs"
		}
		if isGroup {
			return "All items are already in your shopping lists!"
		}
		return "All items are already in your shopping list!"
	}

	var msg string
	switch {
	case isGroup && result.AddedCount == 1:
		msg = "✅ Added <b>1 item</b> to shopping lists!"
	case isGroup:
		msg = fmt.Sprintf("✅ Added <b>%d items</b> to shopping lists!", result.AddedCount)
	case result.AddedCount == 1:
		msg = "✅ Added <b>1 item</b> to your shopping list!"
	default:
		msg = fmt.Sprintf("✅ Added <b>%d items</b> to your shopping list!", result.AddedCount)
	}

	if skipped := result.TotalParsed - result.AddedCount; skipped == 1 {
		msg += "\n(1 item was already in the list)"
	} else if skipped > 1 {
		msg += fmt.Sprintf("\n(%d items were already in the list)", skipped)
	}

	return msg
}
