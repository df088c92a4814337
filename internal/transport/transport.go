package transport

import (
	"github.com/gin-gonic/gin"
)

func InitRoutes(imgHandler *ImageHandler, catHandler *CategoryHandler) *gin.Engine {
	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	api := router.Group("/api")
	{
		api.GET("/images", imgHandler.ListImages)
		api.POST("/upload", imgHandler.UploadImages)
		api.PUT("/images/:id", imgHandler.UpdateImage)
		api.DELETE("/images/:id", imgHandler.DeleteImage)
		api.GET("/images/:id/file", imgHandler.GetImageFile)
		api.GET("/images/:id/download", imgHandler.DownloadImage)
		api.POST("/images/bulk-fetch", imgHandler.BulkFetchImages)

		api.GET("/categories", catHandler.ListCategories)
		api.POST("/categories", catHandler.CreateCategory)
		api.PUT("/categories/:id", catHandler.UpdateCategory)
		api.DELETE("/categories/:id", catHandler.DeleteCategory)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "image-chart-manager",
		})
	})

	return router
}
