package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/sasikumar272004/ConnecTree-sub000/config"
	"github.com/sasikumar272004/ConnecTree-sub000/controllers"
	"github.com/sasikumar272004/ConnecTree-sub000/middleware"
)

func main() {
	// Load environment variables
	_ = godotenv.Load()

	log.SetFormatter(&log.JSONFormatter{})

	if err := config.Load(); err != nil {
		log.Fatalf("config error: %v", err)
	}

	gin.SetMode(config.App.GinMode)

	// Connect to MongoDB and make sure the unique email index exists
	config.ConnectDB()
	config.EnsureIndexes()

	router := gin.Default()
	router.Use(middleware.CORS())
	router.Use(middleware.RateLimit())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the ConnecTree API",
			"routes":  []string{"/auth", "/data", "/posts"},
		})
	})

	// uploaded post images
	router.Static("/uploads", config.App.UploadDir)

	auth := router.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.POST("/reset-password", controllers.ResetPassword)
		auth.GET("/me", middleware.Auth(), controllers.Me)
		auth.PUT("/me", middleware.Auth(), controllers.UpdateMe)
	}

	data := router.Group("/data")
	{
		// plain GET stays public and unscoped: sections double as shared
		// reference data across the chapter
		data.GET("/:sectionType", controllers.ListSection)
		data.GET("/:sectionType/stats", middleware.Auth(), controllers.SectionStats)
		data.POST("/:sectionType", middleware.Auth(), controllers.CreateSection)
		data.PUT("/:sectionType/:id", middleware.Auth(), controllers.UpdateSection)
		data.DELETE("/:sectionType/:id", middleware.Auth(), controllers.DeleteSection)
	}

	posts := router.Group("/posts", middleware.Auth())
	{
		posts.GET("", controllers.ListPosts)
		posts.GET("/:id", controllers.GetPost)
		posts.GET("/user/my-posts", controllers.MyPosts)
		posts.POST("", controllers.CreatePost)
		posts.PUT("/:id", controllers.UpdatePost)
		posts.DELETE("/:id", controllers.DeletePost)
		posts.POST("/:id/like", controllers.ToggleLike)
	}

	srv := &http.Server{
		Addr:    ":" + config.App.Port,
		Handler: router,
	}

	// Start server in a goroutine for graceful shutdown
	go func() {
		log.WithField("port", config.App.Port).Info("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Wait for interrupt (Ctrl+C)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("server forced to shutdown")
	}

	if err := config.Client.Disconnect(ctx); err != nil {
		log.WithError(err).Error("error disconnecting MongoDB")
	} else {
		log.Info("MongoDB disconnected")
	}

	log.Info("server exited properly")
}
