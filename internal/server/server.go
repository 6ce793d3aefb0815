package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"realtime-chat/config"
	"realtime-chat/internal/handler"
	"realtime-chat/internal/middleware"
	"realtime-chat/internal/services"
	"realtime-chat/internal/transport/httpdto"
	"realtime-chat/internal/websocket"
	"realtime-chat/pkg/database"
	"realtime-chat/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
}

var (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Contact *handler.ContactHandler
	Chat    *handler.ChatHandler
	Message *handler.MessageHandler
	WS      *websocket.Handler
}

func New(cfg *config.Config, l *logger.Logger) *Server {
	if cfg.AppMode == ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.AppMode == TestMode {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Server{
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.AppPort),
			Handler: engine,
		},
		engine: engine,
		config: cfg,
		logger: l,
	}
}

func (s *Server) SetupRoutes(handlers *Handlers, authService *services.AuthService) {
	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.CORSMiddleware())
	s.engine.Use(middleware.LoggingMiddleware(s.logger))
	s.engine.Use(middleware.ErrorHandler(s.logger))

	s.engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"message": "pong"}))
	})

	s.engine.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(); err != nil {
			c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse(err.Error(), "UNHEALTHY"))
			return
		}
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"status": "healthy"}))
	})

	authRequired := middleware.AuthMiddleware(authService)

	auth := s.engine.Group("/v1/auth")
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/logout", authRequired, handlers.Auth.Logout)
		auth.GET("/me", authRequired, handlers.Auth.Profile)
	}

	users := s.engine.Group("/v1/users", authRequired)
	{
		users.GET("/search", handlers.User.Search)
		users.PUT("/profile", handlers.User.UpdateProfile)
		users.PUT("/status", handlers.User.UpdateStatus)
	}

	contacts := s.engine.Group("/v1/contacts", authRequired)
	{
		contacts.GET("", handlers.Contact.List)
		contacts.POST("", handlers.Contact.Add)
		contacts.PUT("/:contactId", handlers.Contact.Rename)
		contacts.DELETE("/:contactId", handlers.Contact.Remove)
	}

	chats := s.engine.Group("/v1/chats", authRequired)
	{
		chats.GET("", handlers.Chat.List)
		chats.POST("/individual", handlers.Chat.CreateIndividual)
		chats.POST("/group", handlers.Chat.CreateGroup)
		chats.GET("/:chatId", handlers.Chat.Get)
		chats.PUT("/:chatId", handlers.Chat.UpdateGroupInfo)
		chats.POST("/:chatId/members", handlers.Chat.AddMember)
		chats.DELETE("/:chatId/members/:memberId", handlers.Chat.RemoveMember)
		chats.POST("/:chatId/leave", handlers.Chat.Leave)

		chats.GET("/:chatId/messages", handlers.Message.List)
		chats.GET("/:chatId/messages/search", handlers.Message.Search)
		chats.GET("/:chatId/unread-count", handlers.Message.UnreadCount)
		chats.POST("/:chatId/seen", handlers.Message.MarkChatSeen)
	}

	messages := s.engine.Group("/v1/messages", authRequired)
	{
		messages.POST("", handlers.Message.Send)
		messages.GET("/:messageId", handlers.Message.Get)
		messages.PUT("/:messageId", handlers.Message.Edit)
		messages.DELETE("/:messageId", handlers.Message.Delete)
		messages.POST("/:messageId/seen", handlers.Message.MarkSeen)
	}

	s.engine.GET("/ws", handlers.WS.Connect)
}

func (s *Server) Start() error {
	go func() {
		if s.logger != nil {
			s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		}
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.Errorf("Error in starting the server: %s", err)
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	if s.logger != nil {
		s.logger.Infof("Server is running on :%s", s.config.AppPort)
	}

	<-quit

	if s.logger != nil {
		s.logger.Infof("Quitting signal received.. Shutting down after 5 seconds")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		if s.logger != nil {
			s.logger.Infof("Error in the graceful shutdown of the server: %s", err)
		}
		return err
	}

	if s.logger != nil {
		s.logger.Infof("Server stopped gracefully")
	}

	return nil
}
