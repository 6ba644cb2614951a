package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-backend/internal/domains/user"
	"library-backend/internal/shared/middleware"
	"library-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	authenticated := middleware.Auth(c.TokenService)
	adminOnly := middleware.RequireRole(user.RoleAdmin.String())
	readerOnly := middleware.RequireRole(user.RoleReader.String())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c, authenticated)
		setupUserRoutes(v1, c, authenticated, adminOnly, readerOnly)
		setupBookRoutes(v1, c, authenticated, adminOnly, readerOnly)
		setupAuthorRoutes(v1, c, authenticated, adminOnly)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container, authenticated gin.HandlerFunc) {
	auth := v1.Group("/auth")
	{
		auth.POST("/token", c.AuthHandler.Token)
		auth.POST("/logout", authenticated, c.AuthHandler.Logout)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container, authenticated, adminOnly, readerOnly gin.HandlerFunc) {
	users := v1.Group("/users")
	{
		users.POST("", c.UserHandler.Register)

		users.GET("/me", authenticated, c.UserHandler.GetMe)
		users.PATCH("/me", authenticated, c.UserHandler.UpdateMe)
		users.DELETE("/me", authenticated, c.UserHandler.DeleteMe)
		users.GET("/me/books", authenticated, readerOnly, c.LendingHandler.MyLoans)

		users.GET("/readers", authenticated, adminOnly, c.UserHandler.ListReaders)
	}
}

// ========================================
// BOOK + LENDING ROUTES
// ========================================
func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container, authenticated, adminOnly, readerOnly gin.HandlerFunc) {
	books := v1.Group("/books")
	{
		books.GET("", c.BookHandler.List)
		books.POST("", authenticated, adminOnly, c.BookHandler.Create)

		// Lending workflow; registered before /:id so gin does not treat
		// "borrow"/"return" as a book id
		books.PATCH("/borrow", authenticated, readerOnly, c.LendingHandler.Borrow)
		books.PATCH("/return", authenticated, readerOnly, c.LendingHandler.Return)

		books.PATCH("/:id", authenticated, adminOnly, c.BookHandler.Update)
		books.DELETE("/:id", authenticated, adminOnly, c.BookHandler.Delete)

		books.GET("/:id/authors", c.AuthorHandler.ListByBook)
		books.POST("/:id/authors", authenticated, adminOnly, c.AuthorHandler.Create)
	}
}

// ========================================
// AUTHOR ROUTES
// ========================================
func setupAuthorRoutes(v1 *gin.RouterGroup, c *container.Container, authenticated, adminOnly gin.HandlerFunc) {
	authors := v1.Group("/authors")
	{
		authors.GET("", c.AuthorHandler.List)
		authors.PATCH("/:id", authenticated, adminOnly, c.AuthorHandler.Update)
		authors.DELETE("/:id", authenticated, adminOnly, c.AuthorHandler.Delete)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := http.StatusOK
		health := gin.H{
			"status":  "ok",
			"version": c.Config.App.Version,
		}

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			health["status"] = "degraded"
			health["database"] = err.Error()
		}
		if err := c.Redis.HealthCheck(ctx.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			health["status"] = "degraded"
			health["redis"] = err.Error()
		}

		ctx.JSON(status, health)
	}
}
