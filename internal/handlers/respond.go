package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"reseller-backend/internal/apperr"
	"reseller-backend/internal/auth"
	"reseller-backend/internal/requestctx"
)

// respondError maps service errors onto status codes. Unexpected errors are
// logged and hidden behind a generic message.
func respondError(c *gin.Context, err error) {
	var (
		verr  *apperr.ValidationError
		nferr *apperr.NotFoundError
		ierr  *apperr.IntegrityError
	)
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": verr.Fields})
	case errors.As(err, &nferr):
		c.JSON(http.StatusNotFound, gin.H{"error": nferr.Error()})
	case errors.As(err, &ierr):
		c.JSON(http.StatusConflict, gin.H{"error": ierr.Error()})
	case auth.IsAuthError(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		log.WithField("request_id", requestctx.RequestID(c.Request.Context())).
			WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func invalidPayload(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
}

// pathID reads the :id parameter. It writes the 400 itself and returns
// false when the value is not a positive integer.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// queryFilters collects the optional list filters shared by the list
// endpoints. Malformed numbers and booleans are reported as field errors.
type queryFilters struct {
	CustomerID uint
	Active     *bool
	Status     string
	Query      string
}

func parseFilters(c *gin.Context) (queryFilters, error) {
	var f queryFilters
	verr := apperr.NewValidation()

	if raw := c.Query("customer_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			verr.Add("customer_id", "enter a whole number")
		}
		f.CustomerID = uint(id)
	}
	if raw := c.Query("active"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			verr.Add("active", "enter true or false")
		}
		f.Active = &b
	}
	f.Status = c.Query("status")
	f.Query = c.Query("q")
	return f, verr.OrNil()
}
