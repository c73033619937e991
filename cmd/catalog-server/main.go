package main

import (
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/commercekit/catalog/api/swagger"
	"github.com/commercekit/catalog/pkg/catalog/categories"
	"github.com/commercekit/catalog/pkg/catalog/config"
	"github.com/commercekit/catalog/pkg/catalog/database"
	"github.com/commercekit/catalog/pkg/catalog/logger"
	"github.com/commercekit/catalog/pkg/catalog/models"
	"github.com/commercekit/catalog/pkg/catalog/products"
	"github.com/commercekit/catalog/pkg/catalog/tags"
)

// @title Catalog API
// @version 1.0
// @description An e-commerce catalog backend with products, categories and tags.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync()

	// Connect to database
	if err := database.Connect(cfg.Database.Path); err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run auto-migrations
	if err := models.AutoMigrate(database.GetDB()); err != nil {
		zlog.Fatal("Failed to run migrations", zap.Error(err))
	}
	zlog.Info("Database migrations completed")

	// Set up Gin router
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(logger.RequestLogger(zlog), logger.Recovery(zlog))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// Swagger documentation, served from the generated api/swagger package
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "ok",
				"service": "catalog",
			})
		})

		productsHandler := products.NewHandler(database.GetDB(), zlog)
		productsHandler.RegisterRoutes(api)

		categoriesHandler := categories.NewHandler(database.GetDB(), zlog)
		categoriesHandler.RegisterRoutes(api)

		tagsHandler := tags.NewHandler(database.GetDB(), zlog)
		tagsHandler.RegisterRoutes(api)
	}

	zlog.Info("Starting catalog server", zap.String("port", cfg.Server.Port))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		zlog.Fatal("Failed to start server", zap.Error(err))
	}
}
