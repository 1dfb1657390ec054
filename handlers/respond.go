package handlers

import (
	"errors"
	"net/http"

	"github.com/bittarwork/hospital-management-system-sub001/models"
	"github.com/gin-gonic/gin"
)

// respondError maps the domain error taxonomy onto HTTP status codes:
// ValidationError 400, InvalidStateError 409, NotFoundError 404, anything
// else 500.
func respondError(c *gin.Context, err error) {
	var validationErr *models.ValidationError
	var stateErr *models.InvalidStateError
	var notFoundErr *models.NotFoundError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &stateErr):
		c.JSON(http.StatusConflict, gin.H{"error": stateErr.Error()})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
