package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/devranvijay/PropertyPro/internal/services"
)

// IAsynqClient is the slice of asynq.Client the handlers use, extracted
// so tests can substitute a mock.
type IAsynqClient interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// parseObjectID reads a hex ObjectID path parameter, replying 400 on
// malformed input. The bool reports whether the handler should continue.
func parseObjectID(c *gin.Context, param string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// abortSubmissionError maps submission-service errors onto HTTP status
// codes: missing target 404, unroutable 400, wrong actor 403, anything
// else 500.
func abortSubmissionError(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
	case errors.Is(err, services.ErrNoRecipient):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No recipient available for this property"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to act on this record"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
