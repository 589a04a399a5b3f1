package handlers

import (
	"net/http"
	"perfopoints/internal/middleware"
	"perfopoints/internal/models"

	"github.com/gin-gonic/gin"
)

// OK 成功响应统一出口
func OK(c *gin.Context, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["success"] = true
	c.JSON(http.StatusOK, data)
}

// Fail 失败响应统一出口，只带用户可见的错误信息
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}

// CurrentUser 从 context 取当前登录用户（LoadUser 中间件写入）
func CurrentUser(c *gin.Context) *models.User {
	if u, exists := c.Get(middleware.CheckUserKey); exists {
		return u.(*models.User)
	}
	return nil
}
