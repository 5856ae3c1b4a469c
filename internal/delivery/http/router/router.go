// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"gahana/internal/delivery/http/middleware"
	"gahana/internal/delivery/http/router/handler"
	"gahana/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	StoreHandler   *handler.StoreHandler
	ProductHandler *handler.ProductHandler
	PriceHandler   *handler.PriceHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	storeHandler   *handler.StoreHandler
	productHandler *handler.ProductHandler
	priceHandler   *handler.PriceHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		storeHandler:   params.StoreHandler,
		productHandler: params.ProductHandler,
		priceHandler:   params.PriceHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	authn := r.authMiddleware.Authenticate

	e.GET("/health", handler.HealthCheck)

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/signup", r.userHandler.SignUp)
		authGroup.POST("/signin", r.userHandler.SignIn)
		authGroup.POST("/refresh", r.userHandler.Refresh)
		authGroup.POST("/signout", r.userHandler.SignOut, authn)
		authGroup.GET("/session", r.userHandler.Session, authn)
	}

	e.GET("/profiles/:id", r.userHandler.GetProfile, authn)

	// Browsing is open to guests; managing a store needs the owner role.
	storeGroup := e.Group("/stores")
	{
		storeGroup.GET("", r.storeHandler.List)
		storeGroup.GET("/nearby", r.storeHandler.Nearby)
		storeGroup.GET("/:id", r.storeHandler.Get)
		storeGroup.GET("/:id/qrcode", r.storeHandler.QRCode)

		ownerOnly := r.authMiddleware.RequireRole(entity.RoleStoreOwner)
		storeGroup.GET("/mine", r.storeHandler.Mine, authn, ownerOnly)
		storeGroup.POST("", r.storeHandler.Create, authn, ownerOnly)
	}

	productGroup := e.Group("/products")
	{
		productGroup.GET("", r.productHandler.List)
		productGroup.GET("/:id", r.productHandler.Get)
		productGroup.POST("", r.productHandler.Create, authn, r.authMiddleware.RequireRole(entity.RoleStoreOwner))
	}

	priceGroup := e.Group("/metal-prices")
	{
		priceGroup.GET("", r.priceHandler.List)
		priceGroup.PUT("", r.priceHandler.Update, authn, r.authMiddleware.RequireRole(entity.RoleAdmin))
	}
}
