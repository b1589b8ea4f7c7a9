package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rdityo/nearbox/internal/container"
	"github.com/rdityo/nearbox/internal/handlers"
	"github.com/rdityo/nearbox/internal/middleware"
	"github.com/rdityo/nearbox/internal/models"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	if container.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))

	// Add middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	requireAuth := middleware.AuthRequired(container.Config.JWTSecret)

	api := r.Group("/api")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "nearbox-api",
			})
		})

		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", handlers.Register(container.AuthService))
			authRoutes.POST("/login", handlers.Login(container.AuthService))
			authRoutes.POST("/forgot-password", handlers.ForgotPassword(container.AuthService))
			authRoutes.POST("/reset-password/:token", handlers.ResetPassword(container.AuthService))
		}

		userRoutes := api.Group("/user")
		userRoutes.Use(requireAuth)
		{
			userRoutes.GET("/all", handlers.AllUsers(container.UserService))
			userRoutes.GET("/nearby", handlers.NearbyUsers(container.UserService))
			userRoutes.GET("/profile/:userId", handlers.ViewProfile(container.UserService))
			userRoutes.GET("/search", handlers.SearchUsers(container.UserService))
			userRoutes.GET("/me", handlers.MyProfile(container.UserService))
			userRoutes.PUT("/update", handlers.UpdateProfile(container.UserService))
			userRoutes.PUT("/update/status", handlers.UpdateIsActive(container.UserService))
			userRoutes.PUT("/update/location", handlers.UpdateLocation(container.UserService))
			userRoutes.PUT("/add/phone", handlers.AddPhone(container.UserService))
			userRoutes.DELETE("/delete/phone", handlers.DeletePhone(container.UserService))
		}

		postRoutes := api.Group("/post")
		postRoutes.Use(requireAuth)
		{
			postRoutes.POST("/new", handlers.NewPost(container.PostService, container.UserService))
			postRoutes.GET("/nearby", handlers.NearbyPosts(container.PostService, container.UserService))
		}

		fileRoutes := api.Group("/file")
		{
			fileRoutes.POST("/upload/picture", requireAuth,
				handlers.UploadPicture(container.BlobStore, container.Config.BaseURL))
			fileRoutes.POST("/upload/changeuserpicture", requireAuth,
				handlers.ChangeUserPicture(container.BlobStore, container.UserService, container.Config.BaseURL))
			fileRoutes.GET("/:filename", handlers.GetFile(container.BlobStore))
		}

		// Probe routes
		api.GET("/protected", requireAuth, func(c *gin.Context) {
			c.JSON(200, gin.H{"content": "The protected test route is functional!"})
		})
		api.GET("/admins-only", requireAuth,
			middleware.RequireRole(container.UserRepo, models.RoleAdmin),
			func(c *gin.Context) {
				c.JSON(200, gin.H{"content": "Admin dashboard is working."})
			})
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.NewError(404, "Not Found"))
	})

	return r
}
