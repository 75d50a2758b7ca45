package services

import (
	"strings"
	"testing"

	"github.com/bifidokk/shopping-list/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type stubMembers struct {
	ids []int64
}

func (s *stubMembers) ChatMemberIDs(chatID int64) ([]int64, error) {
	return s.ids, nil
}

func privateMessage(telegramID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		Chat: &tgbotapi.Chat{ID: telegramID, Type: "private"},
		From: &tgbotapi.User{ID: telegramID, FirstName: "Alice", UserName: "alice"},
		Text: text,
	}
}

func TestProcessMessagePrivateCreatesDefaultList(t *testing.T) {
	db := setupTestDB(t)
	_, _, lists, items, _ := newServices(db)
	webhook := NewWebhookService(db, NewMessageParser(), lists, items, &stubMembers{}, testLogger())

	result, err := webhook.ProcessMessage(privateMessage(42, "milk, eggs\nbread"))
	if err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}

	if result.AddedCount != 3 || result.TotalParsed != 3 {
		t.Errorf("result = %+v, want 3 added of 3 parsed", result)
	}
	if !result.ShouldRespond {
		t.Error("expected a confirmation for a private message")
	}

	var user models.User
	if err := db.Where("telegram_id = ?", 42).First(&user).Error; err != nil {
		t.Fatalf("sender not registered: %v", err)
	}

	var list models.ShoppingList
	if err := db.Where("user_id = ?", user.ID).First(&list).Error; err != nil {
		t.Fatalf("default list not created: %v", err)
	}
	if list.Name != "Shopping List" {
		t.Errorf("list name = %q", list.Name)
	}

	defaultID, err := lists.GetDefaultListID(&user)
	if err != nil {
		t.Fatalf("GetDefaultListID: %v", err)
	}
	if defaultID != list.ID {
		t.Errorf("default list = %d, want %d", defaultID, list.ID)
	}
}

func TestProcessMessageIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	_, _, lists, items, _ := newServices(db)
	webhook := NewWebhookService(db, NewMessageParser(), lists, items, &stubMembers{}, testLogger())

	if _, err := webhook.ProcessMessage(privateMessage(42, "milk\neggs")); err != nil {
		t.Fatalf("first ProcessMessage: %v", err)
	}

	result, err := webhook.ProcessMessage(privateMessage(42, "milk\neggs"))
	if err != nil {
		t.Fatalf("second ProcessMessage: %v", err)
	}
	if result.AddedCount != 0 {
		t.Errorf("added = %d, want 0 on re-send", result.AddedCount)
	}

	var count int64
	db.Model(&models.Item{}).Count(&count)
	if count != 2 {
		t.Errorf("item rows = %d, want 2", count)
	}
}

func TestProcessMessageEmptyText(t *testing.T) {
	db := setupTestDB(t)
	_, _, lists, items, _ := newServices(db)
	webhook := NewWebhookService(db, NewMessageParser(), lists, items, &stubMembers{}, testLogger())

	result, err := webhook.ProcessMessage(privateMessage(42, "  \n  "))
	if err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}
	if result.TotalParsed != 0 || result.ShouldRespond {
		t.Errorf("result = %+v, want nothing parsed and no reply", result)
	}
}

func TestProcessMessageGroupAddsForRegisteredMembers(t *testing.T) {
	db := setupTestDB(t)
	_, _, lists, items, _ := newServices(db)
	alice := createTestUser(t, db, 100, "alice")
	bob := createTestUser(t, db, 200, "bob")

	// 300 is a group member who never opened the app.
	members := &stubMembers{ids: []int64{100, 200, 300}}
	webhook := NewWebhookService(db, NewMessageParser(), lists, items, members, testLogger())

	message := &tgbotapi.Message{
		Chat: &tgbotapi.Chat{ID: -500, Type: "group"},
		From: &tgbotapi.User{ID: 100, FirstName: "Alice"},
		Text: "milk\neggs",
	}

	result, err := webhook.ProcessMessage(message)
	if err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}
	if result.AddedCount != 4 {
		t.Errorf("added = %d, want 2 items for each of 2 registered users", result.AddedCount)
	}
	if result.TotalUsers != 3 {
		t.Errorf("total users = %d, want 3", result.TotalUsers)
	}

	for _, user := range []*models.User{alice, bob} {
		defaultID, err := lists.GetDefaultListID(user)
		if err != nil {
			t.Fatalf("GetDefaultListID: %v", err)
		}
		if defaultID == 0 {
			t.Errorf("user %d has no default list", user.TelegramID)
			continue
		}
		var count int64
		db.Model(&models.Item{}).Where("shopping_list_id = ?", defaultID).Count(&count)
		if count != 2 {
			t.Errorf("user %d items = %d, want 2", user.TelegramID, count)
		}
	}

	var unregistered int64
	db.Model(&models.User{}).Where("telegram_id = ?", 300).Count(&unregistered)
	if unregistered != 0 {
		t.Error("group ingestion registered a new user")
	}
}

func TestBuildConfirmation(t *testing.T) {
	webhook := &WebhookService{}

	tests := []struct {
		name   string
		result ProcessResult
		want   string
	}{
		{
			name:   "single item private",
			result: ProcessResult{AddedCount: 1, TotalParsed: 1, ChatType: "private"},
			want:   "✅ Added <b>1 item</b> to your shopping list!",
		},
		{
			name:   "multiple items private",
			result: ProcessResult{AddedCount: 3, TotalParsed: 3, ChatType: "private"},
			want:   "✅ Added <b>3 items</b> to your shopping list!",
		},
		{
			name:   "group",
			result: ProcessResult{AddedCount: 4, TotalParsed: 2, ChatType: "group"},
			want:   "✅ Added <b>4 items</b> to shopping lists!",
		},
		{
			name:   "all duplicates private",
			result: ProcessResult{AddedCount: 0, TotalParsed: 2, ChatType: "private"},
			want:   "All items are already in your shopping list!",
		},
		{
			name:   "nothing parsed",
			result: ProcessResult{ChatType: "private"},
			want:   "No items found in your message. Try sending items like:\n\nmilk\nbread\neggs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := webhook.BuildConfirmation(&tt.result)
			if got != tt.want {
				t.Errorf("BuildConfirmation() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildConfirmationMentionsSkipped(t *testing.T) {
	webhook := &WebhookService{}

	got := webhook.BuildConfirmation(&ProcessResult{AddedCount: 2, TotalParsed: 3, ChatType: "private"})
	if !strings.Contains(got, "(1 item was already in the list)") {
		t.Errorf("confirmation missing skipped note: %q", got)
	}
}
