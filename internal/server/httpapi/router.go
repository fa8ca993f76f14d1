// Package httpapi exposes the auth and note services over a REST API.
// It owns request/response DTOs and the mapping from service errors to HTTP
// status codes; the services themselves know nothing about HTTP.
package httpapi

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AvinashKhichar/mynotes/internal/logging"
	"github.com/AvinashKhichar/mynotes/internal/server/models"
	"github.com/AvinashKhichar/mynotes/internal/server/services"
)

// AuthService is the slice of the session manager the API needs.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*services.TokenPair, error)
}

// NoteService is the slice of the note service the API needs.
type NoteService interface {
	Create(ctx context.Context, ownerID, title, content string, color int64) (*models.Note, error)
	List(ctx context.Context, ownerID string) ([]*models.Note, error)
	Delete(ctx context.Context, ownerID, noteID string) error
}

// Handler bundles the dependencies of the HTTP endpoints.
type Handler struct {
	auth   AuthService
	notes  NoteService
	parser AccessTokenParser
	logger logging.Logger
}

func NewHandler(auth AuthService, notes NoteService, parser AccessTokenParser, logger logging.Logger) *Handler {
	return &Handler{
		auth:   auth,
		notes:  notes,
		parser: parser,
		logger: logger.With("module", "httpapi"),
	}
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), h.requestLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
		auth.POST("/refresh", h.refresh)
	}

	notes := r.Group("/notes", AuthMiddleware(h.parser))
	{
		notes.POST("", h.createNote)
		notes.GET("", h.listNotes)
		notes.DELETE("/:id", h.deleteNote)
	}

	return r
}

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		h.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
