package main

import (
	"log"
	"net/http"

	_ "github.com/bifidokk/shopping-list/docs"
	"github.com/bifidokk/shopping-list/internal/config"
	"github.com/bifidokk/shopping-list/internal/database"
	"github.com/bifidokk/shopping-list/internal/handlers"
	"github.com/bifidokk/shopping-list/internal/logger"
	"github.com/bifidokk/shopping-list/internal/metrics"
	"github.com/bifidokk/shopping-list/internal/middleware"
	"github.com/bifidokk/shopping-list/internal/services"
	"github.com/bifidokk/shopping-list/internal/telegram"
	"github.com/bifidokk/shopping-list/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Shopping List API
// @version         1.0
// @description     CRUD backend for a Telegram Mini App shopping list with sharing and chat ingestion
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey TelegramAuth
// @in header
// @name X-Telegram-Init-Data

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	cfg := config.Load()
	logg := logger.New(cfg.LogLevel)

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	hub := ws.NewHub()

	authService := services.NewAuthService(db, cfg.BotToken, cfg.JWTSecret)
	accessService := services.NewAccessService(db)
	defaultListService := services.NewDefaultListService(db)
	listService := services.NewShoppingListService(db, accessService, defaultListService)
	itemService := services.NewItemService(db)
	shareService := services.NewShareService(db, logg)
	parser := services.NewMessageParser()

	var botClient *telegram.Client
	if cfg.BotToken != "" {
		var err error
		botClient, err = telegram.NewClient(cfg.BotToken, logg)
		if err != nil {
			logg.WithError(err).Warn("telegram client unavailable, webhook replies disabled")
		}
	}

	var members services.GroupMemberLister = noMembers{}
	var sender telegram.MessageSender
	if botClient != nil {
		members = botClient
		sender = botClient

		if cfg.WebhookBaseURL != "" {
			webhookURL := cfg.WebhookBaseURL + "/webhook/telegram/" + cfg.WebhookSecret
			if err := botClient.SetWebhook(webhookURL); err != nil {
				logg.WithError(err).Error("failed to register telegram webhook")
			} else {
				logg.WithField("url", cfg.WebhookBaseURL).Info("telegram webhook registered")
			}
		}
	}

	webhookService := services.NewWebhookService(db, parser, listService, itemService, members, logg)
	webhookHandler := telegram.NewWebhookHandler(webhookService, sender, cfg.WebhookSecret, logg)

	authHandler := handlers.NewAuthHandler(authService)
	listHandler := handlers.NewShoppingListHandler(listService, itemService, hub)
	itemHandler := handlers.NewItemHandler(listService, itemService, hub)
	shareHandler := handlers.NewShareHandler(shareService, accessService, hub)
	wsHandler := handlers.NewWSHandler(hub, authService, accessService)

	r := gin.Default()
	r.Use(metrics.Middleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Telegram-Init-Data"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws/lists/:id", wsHandler.HandleListWebSocket)

	r.POST("/webhook/telegram/:secret", webhookHandler.Handle)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/telegram", authHandler.Authenticate)
		}

		lists := api.Group("/lists")
		lists.Use(middleware.FlexAuth(authService))
		{
			lists.GET("", listHandler.ListShoppingLists)
			lists.POST("", listHandler.CreateShoppingList)
			lists.GET("/:id", listHandler.GetShoppingList)
			lists.PUT("/:id", listHandler.UpdateShoppingList)
			lists.PATCH("/:id", listHandler.UpdateShoppingList)
			lists.DELETE("/:id", listHandler.DeleteShoppingList)
			lists.POST("/:id/set-default", listHandler.SetDefaultShoppingList)

			lists.GET("/:id/items", itemHandler.ListItems)
			lists.POST("/:id/items", itemHandler.CreateItem)
			lists.GET("/:id/items/:itemId", itemHandler.GetItem)
			lists.PUT("/:id/items/:itemId", itemHandler.UpdateItem)
			lists.PATCH("/:id/items/:itemId", itemHandler.UpdateItem)
			lists.DELETE("/:id/items/:itemId", itemHandler.DeleteItem)
			lists.POST("/:id/items/:itemId/toggle", itemHandler.ToggleItem)

			lists.GET("/:id/shares", shareHandler.ListShares)
			lists.POST("/:id/shares", shareHandler.CreateShare)
			lists.DELETE("/:id/shares/:userId", shareHandler.DeleteShare)
		}
	}

	logg.Infof("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

// noMembers stands in when no bot token is configured; group ingestion then
// finds nobody.
type noMembers struct{}

func (noMembers) ChatMemberIDs(int64) ([]int64, error) {
	return nil, nil
}
