package http

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/resumoteca/resumoteca/internal/auth"
	"github.com/resumoteca/resumoteca/internal/config"
	"github.com/resumoteca/resumoteca/internal/database"
)

// RouterConfig carries all router dependencies. Optional fields may be nil;
// the corresponding routes are simply not registered.
type RouterConfig struct {
	Database *database.Database
	Version  string

	BookReader     BookReader
	BookWriter     BookWriter
	TaxonomyReader TaxonomyReader
	Auditor        Auditor
	AuditReader    AuditReader
	CleanupRunner  CleanupRunner

	AuthConfig     config.Auth
	AuthService    *auth.Service
	SessionManager *auth.SessionManager
	AuthMiddleware *auth.Middleware
	AuthAuditor    auth.Auditor
	CSRFSecret     []byte
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if err := RegisterValidators(); err != nil {
		log.Printf("Failed to register custom validators: %v", err)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(auth.SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.AuthConfig.SecureCookies))
	}

	// Session runs after CSRF so session context isn't overwritten by CSRF's
	// request replacement
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	// Health endpoints
	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Auth endpoints
	if cfg.AuthService != nil {
		authController := auth.NewController(cfg.AuthService, cfg.SessionManager, cfg.AuthAuditor)
		router.GET("/api/auth/session", authController.Session)
		if cfg.AuthService.IsAuthEnabled() {
			router.POST("/api/auth/login", authController.Login)
			router.POST("/api/auth/logout", authController.Logout)
			router.POST("/api/auth/setup", authController.Setup)
		}
	}

	// Public catalog endpoints
	booksController := NewBooksController(cfg.BookReader)
	router.GET("/api/books", booksController.GetAllBooks)
	router.GET("/api/books/search", booksController.SearchBooks)
	router.GET("/api/books/stats", booksController.GetBookStats)
	router.GET("/api/books/:slug", booksController.GetBookBySlug)

	if cfg.TaxonomyReader != nil {
		taxonomyController := NewTaxonomyController(cfg.TaxonomyReader, cfg.BookReader)
		router.GET("/api/categories", taxonomyController.GetAllCategories)
		router.GET("/api/categories/:name/books", taxonomyController.GetBooksByCategory)
	}

	// Admin endpoints, guarded when auth is enabled
	admin := router.Group("/api/admin")
	if cfg.AuthMiddleware != nil {
		admin.Use(cfg.AuthMiddleware.RequireAdmin())
	}

	adminBooks := NewAdminBooksController(cfg.BookWriter, cfg.Auditor)
	admin.POST("/books", adminBooks.CreateBook)
	admin.PUT("/books/:id", adminBooks.UpdateBook)
	admin.DELETE("/books/:id", adminBooks.DeleteBook)

	if cfg.AuditReader != nil {
		auditController := NewAuditController(cfg.AuditReader)
		admin.GET("/audit", auditController.GetEvents)
	}

	if cfg.CleanupRunner != nil {
		tasksController := NewTasksController(cfg.CleanupRunner)
		admin.POST("/tasks/cleanup", tasksController.RunCleanup)
	}

	return router
}
