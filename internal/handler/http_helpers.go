package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

// bindStringMap decodes a JSON object and keeps its scalar members as
// strings. Nested objects, arrays and nulls are dropped.
func bindStringMap(c *gin.Context, message string) (map[string]string, bool) {
	var raw map[string]interface{}
	if !bindJSON(c, &raw, message) {
		return nil, false
	}

	values := make(map[string]string, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case nil, map[string]interface{}, []interface{}:
			continue
		case string:
			values[key] = v
		default:
			values[key] = fmt.Sprint(v)
		}
	}
	return values, true
}
