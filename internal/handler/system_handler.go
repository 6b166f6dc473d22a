package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Hello 是固定内容的健康检查端点。
func (a *API) Hello(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello from Render!"})
}
