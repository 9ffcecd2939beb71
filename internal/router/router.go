package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/marketplace-backend/config"
	"github.com/ikkim/marketplace-backend/internal/app/controller"
	"github.com/ikkim/marketplace-backend/internal/metrics"
	"github.com/ikkim/marketplace-backend/internal/middleware"
)

type Router struct {
	authController     *controller.AuthController
	categoryController *controller.CategoryController
	productController  *controller.ProductController
	cartController     *controller.CartController
	orderController    *controller.OrderController
	uploadController   *controller.UploadController
	authMiddleware     *middleware.AuthMiddleware
	config             *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	categoryController *controller.CategoryController,
	productController *controller.ProductController,
	cartController *controller.CartController,
	orderController *controller.OrderController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:     authController,
		categoryController: categoryController,
		productController:  productController,
		cartController:     cartController,
		orderController:    orderController,
		uploadController:   uploadController,
		authMiddleware:     authMiddleware,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(metrics.Middleware())
	router.Use(middleware.CORS(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Marketplace API is running",
		})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	auth := r.authMiddleware.Authenticate()

	api := router.Group("/api")
	{
		api.POST("/auth/register", r.authController.Register)
		api.POST("/auth/login", r.authController.Login)
		api.GET("/me", auth, r.authController.GetMe)
		api.PUT("/me", auth, r.authController.UpdateMe)

		api.GET("/categories", r.categoryController.ListCategories)

		products := api.Group("/products")
		{
			products.GET("", r.productController.SearchProducts)
			products.GET("/:id", r.productController.GetProductByID)
			products.POST("", auth, r.productController.CreateProduct)
			products.PUT("/:id", auth, r.productController.UpdateProduct)
			products.DELETE("/:id", auth, r.productController.DeleteProduct)
		}

		my := api.Group("/my", auth)
		{
			my.GET("/listings", r.productController.ListMyListings)
			my.GET("/listings/export", r.productController.ExportMyListings)
		}

		cart := api.Group("/cart", auth)
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("/add", r.cartController.AddToCart)
			cart.DELETE("/:id", r.cartController.RemoveFromCart)
		}

		api.POST("/checkout", auth, r.orderController.Checkout)
		api.GET("/orders", auth, r.orderController.GetOrders)

		api.POST("/upload/image", auth, r.uploadController.PresignImage)
	}

	return router
}
