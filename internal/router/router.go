package router

import (
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/MauroGaravito/emilio-cogs/internal/config"
	"github.com/MauroGaravito/emilio-cogs/internal/handler"
	"github.com/MauroGaravito/emilio-cogs/internal/middleware"
	"github.com/MauroGaravito/emilio-cogs/internal/repository"
	"github.com/MauroGaravito/emilio-cogs/internal/service"
	"github.com/MauroGaravito/emilio-cogs/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
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
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	ingredientSvc := service.NewIngredientService(ingredientRepo, dispatcher)
	recipeSvc := service.NewRecipeService(recipeRepo, ingredientRepo, dispatcher)
	dashboardSvc := service.NewDashboardService(recipeRepo, ingredientRepo, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	ingredientsH := handler.NewIngredientsHandler(ingredientSvc)
	recipesH := handler.NewRecipesHandler(recipeSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/api/health", handler.Health(db, rdb))
	r.POST("/api/auth/login", middleware.LoginRateLimiter(), authH.Login)
	r.POST("/api/auth/refresh", authH.Refresh)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	api := r.Group("/api", jwtMW)
	{
		api.GET("/auth/me", authH.Me)
		api.POST("/auth/register", middleware.RequireRole("admin"), authH.Register)

		// Ingredient catalog — any authenticated user can read, admin writes
		api.GET("/ingredients", ingredientsH.List)
		ingredients := api.Group("/ingredients", middleware.RequireRole("admin"))
		{
			ingredients.POST("", ingredientsH.Create)
			ingredients.PUT("/:id", ingredientsH.Update)
			ingredients.DELETE("/:id", ingredientsH.Delete)
		}

		// Recipes — any authenticated user can read, admin writes
		api.GET("/recipes", recipesH.List)
		api.GET("/recipes/:id", recipesH.Get)
		recipes := api.Group("/recipes", middleware.RequireRole("admin"))
		{
			recipes.POST("", recipesH.Create)
			recipes.PUT("/:id", recipesH.Update)
			recipes.DELETE("/:id", recipesH.Delete)
		}

		api.GET("/dashboard", dashboardH.Summary)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
