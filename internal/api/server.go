package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/secura-qr/secura-qr/docs"
	v1 "github.com/secura-qr/secura-qr/internal/api/handler/v1"
	"github.com/secura-qr/secura-qr/internal/api/middleware"
	"github.com/secura-qr/secura-qr/internal/config"
	"github.com/secura-qr/secura-qr/internal/notifier"
	"github.com/secura-qr/secura-qr/internal/repository"
	"github.com/secura-qr/secura-qr/internal/repository/dao"
	"github.com/secura-qr/secura-qr/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	eventHandler := s.initEventHandler(db)
	guestHandler := s.initGuestHandler(db)
	invitationHandler := s.initInvitationHandler(db)
	messageHandler := s.initMessageHandler(db)
	s.MountHandlers(authHandler, eventHandler, guestHandler, invitationHandler, messageHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initEventHandler(db *gorm.DB) *v1.EventHandler {
	eventDAO := dao.NewEventDAO(db)
	guestDAO := dao.NewGuestDAO(db)
	repo := repository.NewEventRepository(eventDAO, guestDAO)
	svc := service.NewEventService(repo)
	handler := v1.NewEventHandler(svc)

	return handler
}

func (s *Server) initGuestHandler(db *gorm.DB) *v1.GuestHandler {
	guestDAO := dao.NewGuestDAO(db)
	repo := repository.NewGuestRepository(guestDAO)
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db), guestDAO)
	svc := service.NewGuestService(repo, eventRepo, notifier.NewConsole(), s.Config.Import.MaxBatchRows)
	handler := v1.NewGuestHandler(s.Config.Import, svc)

	return handler
}

func (s *Server) initInvitationHandler(db *gorm.DB) *v1.InvitationHandler {
	invitationDAO := dao.NewInvitationDAO(db)
	repo := repository.NewInvitationRepository(invitationDAO)
	guestDAO := dao.NewGuestDAO(db)
	guestRepo := repository.NewGuestRepository(guestDAO)
	svc := service.NewInvitationService(repo, guestRepo, s.Config.API.BaseURL)
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db), guestDAO)
	guestSvc := service.NewGuestService(guestRepo, eventRepo, notifier.NewConsole(), s.Config.Import.MaxBatchRows)
	handler := v1.NewInvitationHandler(svc, guestSvc)

	return handler
}

func (s *Server) initMessageHandler(db *gorm.DB) *v1.MessageHandler {
	messageDAO := dao.NewMessageDAO(db)
	repo := repository.NewMessageRepository(messageDAO)
	guestDAO := dao.NewGuestDAO(db)
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db), guestDAO)
	guestRepo := repository.NewGuestRepository(guestDAO)
	svc := service.NewMessageService(repo, eventRepo, guestRepo)
	handler := v1.NewMessageHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	eventHandler *v1.EventHandler,
	guestHandler *v1.GuestHandler,
	invitationHandler *v1.InvitationHandler,
	messageHandler *v1.MessageHandler,
) {
	const basePath = "/api/v1"

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/signup", authHandler.HandleSignup)
		public.POST("/auth/login", authHandler.HandleLogin)
		// Check-in is hit straight from the QR code, no session involved.
		public.POST("/invitations/:token/checkin", invitationHandler.HandleCheckIn)
	}

	authed := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authed.POST("/events", eventHandler.HandleCreateEvent)
		authed.GET("/events", eventHandler.HandleGetEvents)
		authed.GET("/events/:eventID", eventHandler.HandleGetEvent)
		authed.PUT("/events/:eventID", eventHandler.HandleUpdateEvent)
		authed.DELETE("/events/:eventID", eventHandler.HandleDeleteEvent)
		authed.GET("/events/:eventID/stats", eventHandler.HandleGetEventStats)

		authed.POST("/events/:eventID/guests", guestHandler.HandleCreateGuest)
		authed.GET("/events/:eventID/guests", guestHandler.HandleGetGuests)
		authed.POST("/events/:eventID/guests/import", guestHandler.HandleImportGuests)
		authed.GET("/events/:eventID/guests/export", guestHandler.HandleExportGuests)
		authed.GET("/guests/:guestID", guestHandler.HandleGetGuest)
		authed.PUT("/guests/:guestID", guestHandler.HandleUpdateGuest)
		authed.DELETE("/guests/:guestID", guestHandler.HandleDeleteGuest)
		authed.POST("/guests/:guestID/confirm", guestHandler.HandleConfirmGuest)
		authed.POST("/guests/:guestID/cancel", guestHandler.HandleCancelGuest)
		authed.POST("/guests/:guestID/scan", guestHandler.HandleScanGuest)

		authed.POST("/guests/:guestID/invitations", invitationHandler.HandleCreateInvitation)
		authed.GET("/guests/:guestID/invitations", invitationHandler.HandleGetInvitations)
		authed.GET("/invitations/:token", invitationHandler.HandleGetInvitation)
		authed.GET("/invitations/:token/qr", invitationHandler.HandleInvitationQR)
		authed.POST("/invitations/:token/sent", invitationHandler.HandleMarkInvitationSent)

		authed.POST("/events/:eventID/messages", messageHandler.HandleCreateMessage)
		authed.GET("/events/:eventID/messages", messageHandler.HandleGetMessages)
		authed.GET("/messages/:messageID", messageHandler.HandleGetMessage)
		authed.PUT("/messages/:messageID", messageHandler.HandleUpdateMessage)
		authed.DELETE("/messages/:messageID", messageHandler.HandleDeleteMessage)
		authed.POST("/messages/:messageID/preview", messageHandler.HandlePreviewMessage)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Secura QR API"
	docs.SwaggerInfo.Description = "Event guest management with QR invitations and check-in."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
