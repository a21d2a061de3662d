// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"bookswap/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	SessionHandler *handler.SessionHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	sessionHandler *handler.SessionHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		sessionHandler: params.SessionHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	apiV1 := e.Group("/api/v1")
	{
		apiV1.GET("/screen", r.sessionHandler.GetScreen)
		apiV1.GET("/intents", r.sessionHandler.ListIntents)
		apiV1.POST("/intents", r.sessionHandler.PostIntent)
		apiV1.POST("/geolocation", r.sessionHandler.PostGeolocation)
	}
}
