package main

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"restaurant-catalog/internal/shared/middleware"
	"restaurant-catalog/pkg/container"
	"restaurant-catalog/pkg/jwt"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	var origins []string
	var maxUpload int64
	if c.Config != nil {
		origins = c.Config.App.CORSOrigins
		maxUpload = int64(c.Config.App.MaxUploadMB) << 20
	}

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(origins),
	)
	if maxUpload > 0 {
		router.MaxMultipartMemory = maxUpload
		router.Use(middleware.UploadLimit(maxUpload))
	}

	auth := middleware.AuthMiddleware(c.JWTManager)
	manage := []gin.HandlerFunc{auth, middleware.RequireRoles(jwt.RoleAdmin, jwt.RoleManager)}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupRestaurantRoutes(v1, c, auth, manage)
		setupDishRoutes(v1, c, auth, manage)
		setupMaintenanceRoutes(v1, c, manage)
	}

	return router
}

// ========================================
// RESTAURANT ROUTES
// ========================================
func setupRestaurantRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc, manage []gin.HandlerFunc) {
	h := c.RestaurantHandler
	dishes := c.DishHandler
	images := c.RestaurantImageHandler

	restaurants := v1.Group("/restaurants")
	{
		// Public
		restaurants.GET("", h.GetAll)
		restaurants.GET("/cuisine", h.GetAllByCuisine)
		restaurants.GET("/cuisines", h.Cuisines)
		restaurants.GET("/:id", h.GetByID)
		restaurants.GET("/:id/dishes", dishes.ListByRestaurant)
		restaurants.GET("/:id/images", images.List)
		restaurants.GET("/:id/images/*imageName", images.Serve)

		// Any authenticated caller
		restaurants.GET("/:id/exists", auth, h.Exists)
		restaurants.GET("/:id/name", auth, h.GetName)
		restaurants.GET("/:id/dishes/:dishId/exists", auth, dishes.Exists)

		// Admin / manager
		managed := restaurants.Group("", manage...)
		{
			managed.POST("", h.Create)
			managed.PUT("", h.Update)
			managed.DELETE("/:id", h.Delete)
			managed.POST("/:id/dishes", dishes.Create)
			managed.POST("/:id/images", h.UploadImage)
			managed.DELETE("/:id/images", images.RemoveOne)
			managed.DELETE("/:id/images/all", images.RemoveAll)
		}
	}
}

// ========================================
// DISH ROUTES
// ========================================
func setupDishRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc, manage []gin.HandlerFunc) {
	h := c.DishHandler
	images := c.DishImageHandler

	dishes := v1.Group("/dishes")
	{
		// Public
		dishes.GET("/:id", h.GetByID)
		dishes.GET("/:id/images", images.List)
		dishes.GET("/:id/images/*imageName", images.Serve)

		dishes.GET("/:id/name", auth, h.GetName)

		// Admin / manager
		managed := dishes.Group("", manage...)
		{
			managed.PUT("", h.Update)
			managed.DELETE("/:id", h.Delete)
			managed.POST("/:id/images", h.UploadImage)
			managed.POST("/:id/images/upload-url", h.UploadURL)
			managed.PUT("/:id/images", images.Register)
			managed.DELETE("/:id/images", images.RemoveOne)
			managed.DELETE("/:id/images/all", images.RemoveAll)
		}
	}
}

// ========================================
// MAINTENANCE ROUTES
// ========================================
func setupMaintenanceRoutes(v1 *gin.RouterGroup, c *container.Container, manage []gin.HandlerFunc) {
	if c.AuditHandler == nil {
		return
	}

	images := v1.Group("/images", manage...)
	{
		images.POST("/audit", c.AuditHandler.Trigger)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================

// healthCheckHandler answers 503 only when the database is down;
// Redis and storage failures degrade the status but reads still work.
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		version := "dev"
		if appCtx.Config != nil {
			version = appCtx.Config.App.Version
		}

		names := make([]string, 0, len(appCtx.Checks))
		for name := range appCtx.Checks {
			names = append(names, name)
		}
		sort.Strings(names)

		status := "ok"
		statusCode := http.StatusOK
		services := gin.H{}

		for _, name := range names {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			err := appCtx.Checks[name](ctx)
			cancel()

			if err != nil {
				services[name] = "error: " + err.Error()
				status = "degraded"
				if name == "database" {
					statusCode = http.StatusServiceUnavailable
				}
				continue
			}
			services[name] = "ok"
		}

		c.JSON(statusCode, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   version,
			"services":  services,
		})
	}
}
