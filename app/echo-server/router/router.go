package router

import (
	"kledje/internal/rest"

	"github.com/labstack/echo/v4"
)

// Guards bundles the auth middlewares shared by every resource group.
type Guards struct {
	AuthRequired echo.MiddlewareFunc
	AuthOptional echo.MiddlewareFunc
	AdminOnly    echo.MiddlewareFunc
}

func SetupAuthRoutes(api *echo.Group, handler *rest.UserHandler, g Guards) {
	auth := api.Group("/auth")

	auth.POST("/register", handler.Register)
	auth.POST("/login", handler.Login)
	auth.GET("/me", handler.Me, g.AuthRequired)
	auth.PUT("/profile", handler.UpdateProfile, g.AuthRequired)
	auth.PUT("/password", handler.ChangePassword, g.AuthRequired)
}

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler, g Guards) {
	products := api.Group("/products")

	products.GET("", handler.ListProducts)
	products.GET("/meta/categories", handler.Categories)
	products.GET("/:id", handler.GetProduct)
	products.POST("", handler.CreateProduct, g.AuthRequired, g.AdminOnly)
	products.PUT("/:id", handler.UpdateProduct, g.AuthRequired, g.AdminOnly)
	products.DELETE("/:id", handler.DeleteProduct, g.AuthRequired, g.AdminOnly)
}

func SetupOfferRoutes(api *echo.Group, handler *rest.OfferHandler, g Guards) {
	offers := api.Group("/offers")

	offers.GET("", handler.ListOffers, g.AuthOptional)
	offers.GET("/meta/active", handler.ActiveOffers)
	offers.GET("/:id", handler.GetOffer, g.AuthOptional)
	offers.POST("", handler.CreateOffer, g.AuthRequired, g.AdminOnly)
	offers.PUT("/:id", handler.UpdateOffer, g.AuthRequired, g.AdminOnly)
	offers.DELETE("/:id", handler.DeleteOffer, g.AuthRequired, g.AdminOnly)
}

func SetOrdersRoutes(api *echo.Group, handler *rest.OrdersHandler, g Guards) {
	orders := api.Group("/orders")

	orders.POST("", handler.CreateOrder)
	orders.GET("", handler.GetAllOrders, g.AuthRequired, g.AdminOnly)
	orders.GET("/meta/stats", handler.Stats, g.AuthRequired, g.AdminOnly)
	orders.GET("/:id", handler.GetOrder)
	orders.PUT("/:id/status", handler.UpdateStatus, g.AuthRequired, g.AdminOnly)
}

func SetupSettingsRoutes(api *echo.Group, handler *rest.SettingsHandler, g Guards) {
	settings := api.Group("/settings")

	settings.GET("", handler.GetSettings)
	settings.PUT("", handler.UpdateSettings, g.AuthRequired, g.AdminOnly)
	settings.GET("/contact", handler.GetContact)
	settings.PUT("/contact", handler.UpdateContact, g.AuthRequired, g.AdminOnly)
}

func SetupUploadRoutes(api *echo.Group, handler *rest.UploadHandler, g Guards) {
	upload := api.Group("/upload", g.AuthRequired, g.AdminOnly)

	upload.POST("/image", handler.UploadImage)
	upload.POST("/images", handler.UploadImages)
	upload.DELETE("/:filename", handler.DeleteImage)
}
