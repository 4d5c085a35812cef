package controllers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"travelcms/response"
	"travelcms/validator"
)

// paramID parses a positive integer path parameter, writing a 422 on failure.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.ValidationError(c, []validator.FieldError{{
			Loc: []string{"path", name},
			Msg: "value is not a valid integer",
		}})
		return 0, false
	}
	return uint(id), true
}

// with copies guards before appending the handler so chains never share a
// backing array.
func with(guards gin.HandlersChain, h gin.HandlerFunc) gin.HandlersChain {
	out := make(gin.HandlersChain, 0, len(guards)+1)
	return append(append(out, guards...), h)
}

func splitPath(p string) []string {
	return strings.Split(strings.Trim(p, "/"), "/")
}
