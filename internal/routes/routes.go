package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sahayak/sahayak-backend/internal/handler"
	"github.com/sahayak/sahayak-backend/internal/middleware"
	"github.com/sahayak/sahayak-backend/pkg/jwt"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	authHandler *handler.AuthHandler,
	subjectHandler *handler.SubjectHandler,
	adminHandler *handler.AdminHandler,
	mediaHandler *handler.MediaHandler,
	jwtManager *jwt.Manager,
	redisClient *redis.Client,
) {
	api := router.Group("/api/v1")

	// Authentication endpoints
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", middleware.JWTAuth(jwtManager), authHandler.Me)

	// Public browsing endpoints. The detail route keys on slug while
	// update/delete key on id; gin requires one wildcard name per segment,
	// so both register as :key and the handlers interpret it.
	subjects := api.Group("/subjects")
	subjects.GET("", subjectHandler.List)
	subjects.GET("/:key", subjectHandler.GetBySlug)

	// Submission endpoints (contributor or admin; per-user rate limited)
	submit := api.Group("/subjects",
		middleware.JWTAuth(jwtManager),
		middleware.RequireContributor(),
		middleware.RateLimitPerUser(redisClient, 30),
	)
	submit.POST("", subjectHandler.Create)
	submit.PUT("/:key", subjectHandler.Update)
	submit.DELETE("/:key", subjectHandler.Delete)

	// Caller's own submissions
	api.GET("/users/me/subjects", middleware.JWTAuth(jwtManager), subjectHandler.MySubjects)

	// Moderation and user management (admin only)
	admin := api.Group("/admin", middleware.JWTAuth(jwtManager), middleware.RequireAdmin())
	admin.GET("/queue", adminHandler.Queue)
	admin.PUT("/publish/:id", adminHandler.Publish)
	admin.PUT("/reject/:id", adminHandler.Reject)
	admin.GET("/users", adminHandler.ListUsers)
	admin.PUT("/users/:id/role", adminHandler.UpdateUserRole)

	// Media uploads (any authenticated user)
	if mediaHandler != nil {
		media := api.Group("/media", middleware.JWTAuth(jwtManager))
		media.POST("/upload", mediaHandler.UploadImage)
		media.POST("/documents", mediaHandler.UploadDocument)
	}
}
