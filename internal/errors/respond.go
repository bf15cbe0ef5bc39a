package errors

import (
	stderrors "errors"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/yukikurage/task-tracker-api/internal/constants"
	"github.com/yukikurage/task-tracker-api/internal/logger"
)

var domainErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "tasktracker_domain_errors_total",
		Help: "Failures returned to clients, by domain and code",
	},
	[]string{"domain", "code"},
)

// Classify turns any error into the failure sent over the wire. Domain
// failures pass through untouched; integrity violations translated by GORM
// become generic ALREADY_EXISTS / CONFLICT; everything else is INTERNAL.
func Classify(err error) *Error {
	var domainErr *Error
	switch {
	case stderrors.As(err, &domainErr):
		return domainErr
	case stderrors.Is(err, gorm.ErrDuplicatedKey):
		return ErrAlreadyExists.With(nil)
	case stderrors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrConflict.WithMessage("Referenced resource violates an integrity constraint", nil)
	default:
		return ErrInternal.With(nil)
	}
}

// RespondWithError sends the classified failure as {code, message, context}
// and logs it.
func RespondWithError(c *gin.Context, err error) {
	apiErr := Classify(err)

	entry := logger.Logger.WithFields(logrus.Fields{
		"domain": string(apiErr.Domain),
		"code":   string(apiErr.Code),
		"path":   c.FullPath(),
	})
	if id, ok := c.Get(constants.ContextKeyRequestID); ok {
		entry = entry.WithField("request_id", id)
	}
	if apiErr.Context != nil {
		entry = entry.WithField("context", apiErr.Context)
	}
	if apiErr.Code == CodeInternal {
		entry.WithError(err).Error("request failed")
	} else {
		entry.Warn(apiErr.Message)
	}

	domainErrorsTotal.WithLabelValues(string(apiErr.Domain), string(apiErr.Code)).Inc()
	c.AbortWithStatusJSON(apiErr.Status, apiErr)
}

// BadRequest sends a 400 for malformed input that never reached a service.
func BadRequest(c *gin.Context, message string, ctx Context) {
	RespondWithError(c, ErrBadRequest.WithMessage(message, ctx))
}
