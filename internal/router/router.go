package router

import (
	"time"

	"github.com/muhammadjayadi/larastore-management/internal/config"
	"github.com/muhammadjayadi/larastore-management/internal/handler"
	"github.com/muhammadjayadi/larastore-management/internal/middleware"
	"github.com/muhammadjayadi/larastore-management/internal/repository"
	"github.com/muhammadjayadi/larastore-management/internal/service"
	"github.com/muhammadjayadi/larastore-management/internal/storage"
	"github.com/muhammadjayadi/larastore-management/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, uploads *storage.DiskStore) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute))

	// ── Repositories ─────────────────────────────────────────────────────────
	categoryRepo := repository.NewCategoryRepository(db)
	userRepo := repository.NewUserRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	dispatcher := worker.NewDispatcher(rdb)
	authSvc := service.NewAuthService(userRepo, cfg)
	categorySvc := service.NewCategoryService(categoryRepo, uploads)
	userSvc := service.NewUserService(userRepo, uploads, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	categoriesH := handler.NewCategoriesHandler(categorySvc, rdb)
	usersH := handler.NewUsersHandler(userSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// The gate guards every category action, reads included — a denied
		// request never reaches handler logic.
		categories := v1.Group("/categories", middleware.Can("manage-categories"))
		{
			categories.GET("", categoriesH.List)
			categories.POST("", categoriesH.Create)
			categories.GET("/search", categoriesH.Search)
			categories.GET("/trash", categoriesH.Trash)
			categories.GET("/:id", categoriesH.Show)
			categories.GET("/:id/edit", categoriesH.Edit)
			categories.PUT("/:id", categoriesH.Update)
			categories.DELETE("/:id", categoriesH.Destroy)
			categories.POST("/:id/restore", categoriesH.Restore)
			categories.DELETE("/:id/permanent", categoriesH.DeletePermanent)
		}

		// Users carry no ability gate — authentication only.
		users := v1.Group("/users")
		{
			users.GET("", usersH.List)
			users.POST("", usersH.Create)
			users.GET("/:id", usersH.Show)
			users.GET("/:id/edit", usersH.Edit)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Destroy)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
