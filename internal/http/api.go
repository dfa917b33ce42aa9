package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"minhas-financas/internal/auth"
	"minhas-financas/internal/repository"
	"minhas-financas/internal/service"
)

const requestIDHeader = "X-Request-ID"

// Handler wires HTTP routes to domain services.
type Handler struct {
	users   service.UserService
	ledger  service.LedgerService
	tokens  *auth.TokenIssuer
	origins []string
	logger  *logrus.Logger
}

// Options carries the optional collaborators of a Handler.
type Options struct {
	// Tokens, when set, issues a bearer token on successful authentication.
	Tokens         *auth.TokenIssuer
	AllowedOrigins []string
	Logger         *logrus.Logger
}

func NewHandler(users service.UserService, ledger service.LedgerService, opts Options) *Handler {
	if opts.Logger == nil {
		opts.Logger = logrus.New()
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	registerValidation()
	return &Handler{
		users:   users,
		ledger:  ledger,
		tokens:  opts.Tokens,
		origins: opts.AllowedOrigins,
		logger:  opts.Logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(requestID(), h.requestLogger(), corsMiddleware(h.origins))

	users := router.Group("/users")
	{
		users.POST("", h.registerUser)
		users.POST("/authenticate", h.authenticate)
		users.GET("/:id/balance", h.balance)
	}

	entries := router.Group("/entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:id", h.getEntry)
		entries.PUT("/:id", h.updateEntry)
		entries.PUT("/:id/status", h.updateEntryStatus)
		entries.DELETE("/:id", h.deleteEntry)
	}

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeader},
		ExposeHeaders: []string{"Authorization", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 1 && origins[0] == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := h.logger.WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Warn("request failed")
			return
		}
		entry.Debug("request served")
	}
}

// fail maps a service error onto the response. Domain errors become 400 with
// the message as plain text, missing records 404 with no body.
func (h *Handler) fail(c *gin.Context, err error) {
	var (
		authErr *service.AuthenticationError
		ruleErr *service.BusinessRuleError
	)
	switch {
	case errors.As(err, &authErr), errors.As(err, &ruleErr):
		c.String(http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		c.AbortWithStatus(http.StatusNotFound)
	default:
		h.logger.WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
		}).WithError(err).Error("unexpected service error")
		c.String(http.StatusInternalServerError, "internal server error")
	}
}

func parseID(c *gin.Context, what string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.String(http.StatusBadRequest, "invalid "+what+" id")
		return 0, false
	}
	return id, true
}
