package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/sumire/backlog/internal/service"
)

// RouterConfig holds the HTTP settings the router needs.
type RouterConfig struct {
	Environment    string
	AllowedOrigins []string
	BodyLimit      string
	ExposeErrors   bool
}

// NewRouter builds the echo instance with middleware and all API routes.
func NewRouter(cfg RouterConfig, tickets *service.TicketService, labels *service.LabelService) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewAppValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.ExposeErrors)

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.Secure())
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{echo.HeaderAccept, echo.HeaderContentType},
		ExposeHeaders:    []string{echo.HeaderXRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	system := NewSystemHandler(cfg.Environment, time.Now())
	ticketHandler := NewTicketHandler(tickets)
	labelHandler := NewLabelHandler(labels)

	e.GET("/health", system.Health)

	api := e.Group("/api")
	api.GET("", system.Info)

	t := api.Group("/tickets")
	t.GET("", ticketHandler.List)
	t.POST("", ticketHandler.Create)
	t.POST("/suggestions", ticketHandler.Suggest)
	t.GET("/epics", ticketHandler.ListEpics)
	t.GET("/status/:status", ticketHandler.ListByStatus)
	t.GET("/priority/:priority", ticketHandler.ListByPriority)
	t.GET("/:id", ticketHandler.Get)
	t.PUT("/:id", ticketHandler.Update)
	t.DELETE("/:id", ticketHandler.Delete)

	l := api.Group("/labels")
	l.GET("", labelHandler.List)
	l.POST("", labelHandler.Create)
	l.GET("/:id", labelHandler.Get)

	return e
}
