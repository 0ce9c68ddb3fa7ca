package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/bansalsd420/smart-ambulance-api/pkg/errors"
)

// Error hands err to the error middleware, which maps it to a status.
func Error(c *gin.Context, err error) {
	c.Error(err)
	c.Abort()
}

// IDParam parses the named int64 route parameter.
func IDParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.BadRequest("invalid " + name + " parameter")
	}
	return id, nil
}
