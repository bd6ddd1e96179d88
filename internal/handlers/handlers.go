package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pagebook-app/pagebook-backend/internal/store"
	apperrors "github.com/pagebook-app/pagebook-backend/pkg/errors"
	"github.com/pagebook-app/pagebook-backend/pkg/logger"
)

// graph is the shared Social Graph Store, wired in main (and overridden by
// tests).
var graph *store.Store

func Init(s *store.Store) {
	graph = s
}

// Graph exposes the store for the socket bridge.
func Graph() *store.Store {
	return graph
}

// respondError maps typed store errors to HTTP responses.
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message, "kind": appErr.Kind})
		return
	}

	logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled store error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
}
