package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/task-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
)

// RequireUUIDParam rejects requests whose :param is not a UUID and stores
// the parsed value for the handler
func RequireUUIDParam(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param(param))
		if err != nil {
			apierrors.BadRequest(c, "Invalid "+param, apierrors.Context{param: c.Param(param)})
			return
		}

		c.Set(pathKey(param), id)
		c.Next()
	}
}

// GetUUIDParam retrieves an id stored by RequireUUIDParam
func GetUUIDParam(c *gin.Context, param string) uuid.UUID {
	value, exists := c.Get(pathKey(param))
	if !exists {
		return uuid.Nil
	}
	id, _ := value.(uuid.UUID)
	return id
}

func pathKey(param string) string {
	return constants.ContextKeyPathID + ":" + param
}
