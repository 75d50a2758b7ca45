package handlers

import (
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bifidokk/shopping-list/internal/models"
	"github.com/bifidokk/shopping-list/internal/services"
	"github.com/bifidokk/shopping-list/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
	lists  *services.ShoppingListService
	shares *services.ShareService
	access *services.AccessService

	// user the next request acts as
	actor *models.User
}

// setupEnv builds a router with the list and share routes wired the way
// cmd/server wires them, with auth replaced by an actor the test controls.
func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:handlers_%s?mode=memory&cache=shared&_foreign_keys=on", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.ShoppingList{},
		&models.Item{},
		&models.ListShare{},
		&models.UserDefaultList{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	access := services.NewAccessService(db)
	defaults := services.NewDefaultListService(db)
	lists := services.NewShoppingListService(db, access, defaults)
	items := services.NewItemService(db)
	shares := services.NewShareService(db, log)
	hub := ws.NewHub()

	listHandler := NewShoppingListHandler(lists, items, hub)
	itemHandler := NewItemHandler(lists, items, hub)
	shareHandler := NewShareHandler(shares, access, hub)

	env := &testEnv{db: db, lists: lists, shares: shares, access: access}

	r := gin.New()
	group := r.Group("/api/v1/lists")
	group.Use(func(c *gin.Context) {
		c.Set("user", env.actor)
	})
	{
		group.GET("", listHandler.ListShoppingLists)
		group.POST("", listHandler.CreateShoppingList)
		group.GET("/:id", listHandler.GetShoppingList)
		group.PATCH("/:id", listHandler.UpdateShoppingList)
		group.DELETE("/:id", listHandler.DeleteShoppingList)
		group.POST("/:id/set-default", listHandler.SetDefaultShoppingList)
		group.GET("/:id/items", itemHandler.ListItems)
		group.POST("/:id/items", itemHandler.CreateItem)
		group.GET("/:id/shares", shareHandler.ListShares)
		group.POST("/:id/shares", shareHandler.CreateShare)
		group.DELETE("/:id/shares/:userId", shareHandler.DeleteShare)
	}
	env.router = r
	return env
}

func (e *testEnv) createUser(t *testing.T, telegramID int64, username string) *models.User {
	t.Helper()
	user := models.User{TelegramID: telegramID, Username: &username}
	if err := e.db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return &user
}

func (e *testEnv) do(t *testing.T, actor *models.User, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	e.actor = actor

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func statusWant(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d, body: %s", w.Code, want, w.Body.String())
	}
}
