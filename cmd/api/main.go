package main

import (
	"context"
	"fmt"
	"log"

	"realtime-chat/config"
	"realtime-chat/internal/domain/chat"
	"realtime-chat/internal/domain/contact"
	"realtime-chat/internal/domain/message"
	"realtime-chat/internal/domain/user"
	"realtime-chat/internal/handler"
	"realtime-chat/internal/repository"
	"realtime-chat/internal/server"
	"realtime-chat/internal/services"
	"realtime-chat/internal/websocket"
	"realtime-chat/pkg/database"
	"realtime-chat/pkg/events"
	"realtime-chat/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	logMode := logger.DevelopmentMode
	if cfg.AppMode == server.ReleaseMode {
		logMode = logger.ProductionMode
	}
	l := logger.New(logMode)
	logger.SetGlobalLogger(l)

	database.Connect(cfg)

	if err := database.DB.AutoMigrate(
		&user.User{},
		&contact.List{},
		&contact.Entry{},
		&chat.Chat{},
		&chat.Member{},
		&message.Message{},
		&message.Seen{},
	); err != nil {
		log.Fatalf("Failed to apply GORM migrations: %v", err)
	}

	broker := events.NewRedisBroker(
		fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		cfg.RedisPassword,
		cfg.RedisDB,
	)

	userRepo := repository.NewUserRepository(database.DB)
	contactRepo := repository.NewContactRepository(database.DB)
	chatRepo := repository.NewChatRepository(database.DB)
	messageRepo := repository.NewMessageRepository(database.DB)

	authService := services.NewAuthService(userRepo, cfg)
	userService := services.NewUserService(userRepo)
	contactService := services.NewContactService(contactRepo, userRepo)
	chatService := services.NewChatService(chatRepo, userRepo)
	messageService := services.NewMessageService(messageRepo, chatRepo, broker, l)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := websocket.NewHub()
	go hub.Run(ctx)

	relay := websocket.NewRelay(broker, hub)
	if err := relay.Run(ctx, services.EventChannel); err != nil {
		log.Fatalf("Failed to start event relay: %v", err)
	}

	handlers := &server.Handlers{
		Auth:    handler.NewAuthHandler(authService, userService),
		User:    handler.NewUserHandler(userService),
		Contact: handler.NewContactHandler(contactService),
		Chat:    handler.NewChatHandler(chatService, userService),
		Message: handler.NewMessageHandler(messageService, chatService),
		WS:      websocket.NewHandler(authService, chatService, hub),
	}

	srv := server.New(cfg, l)
	srv.SetupRoutes(handlers, authService)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}
}
