package middleware

import (
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yushu/bookadmin/internal/domain/user"
	"github.com/yushu/bookadmin/internal/infrastructure/persistence/redis"
	"github.com/yushu/bookadmin/pkg/circuitbreaker"
	apperrors "github.com/yushu/bookadmin/pkg/errors"
	"github.com/yushu/bookadmin/pkg/jwt"
	"github.com/yushu/bookadmin/pkg/metrics"
	"github.com/yushu/bookadmin/pkg/response"
)

// AuthMiddleware JWT认证中间件
// 设计说明：
// 1. 从Header提取Token
// 2. 检查Token黑名单（Redis,熔断器保护）
// 3. 验证Token有效性
// 4. 将用户信息（含角色）注入Context
type AuthMiddleware struct {
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
	blacklistCB  *circuitbreaker.CircuitBreaker
}

// NewAuthMiddleware 创建认证中间件
// 黑名单检查走Redis,每个请求都会经过。Redis故障时不能让所有请求
// 都等超时,熔断打开后降级为只校验JWT签名(黑名单检查跳过)。
// 降级窗口内已登出的Token可能还能用,但服务整体可用
func NewAuthMiddleware(jwtManager *jwt.Manager, sessionStore *redis.SessionStore) *AuthMiddleware {
	cb := circuitbreaker.NewCircuitBreaker("redis-blacklist", circuitbreaker.Config{
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	cb.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		log.Printf("熔断器[%s]状态变化: %s → %s", name, from, to)
		if metrics.CircuitBreakerState != nil {
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
		}
	})

	return &AuthMiddleware{
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
		blacklistCB:  cb,
	}
}

// RequireAuth 要求登录
// 使用方式：
//
//	authorized := r.Group("/api/v1")
//	authorized.Use(authMiddleware.RequireAuth())
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 从Header提取Token
		// 格式：Authorization: Bearer <token>
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.ErrorWithCode(c, apperrors.ErrCodeUnauthorized, "请先登录")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.ErrorWithCode(c, apperrors.ErrCodeUnauthorized, "Token格式错误")
			c.Abort()
			return
		}

		tokenString := parts[1]

		// 2. 检查Token黑名单（熔断器保护下的Redis调用）
		var isBlacklisted bool
		err := m.blacklistCB.Execute(func() error {
			var err error
			isBlacklisted, err = m.sessionStore.IsInBlacklist(c.Request.Context(), tokenString)
			return err
		})
		if metrics.CircuitBreakerRequests != nil {
			result := "success"
			switch err {
			case nil:
			case circuitbreaker.ErrOpenState:
				result = "rejected"
			default:
				result = "failure"
			}
			metrics.CircuitBreakerRequests.WithLabelValues("redis-blacklist", result).Inc()
		}
		if err != nil {
			if err == circuitbreaker.ErrOpenState {
				// 熔断打开:降级,跳过黑名单检查
				log.Printf("黑名单检查熔断中,降级为仅JWT校验")
			} else {
				response.ErrorWithCode(c, apperrors.ErrCodeInternal, "验证Token失败")
				c.Abort()
				return
			}
		} else if isBlacklisted {
			response.ErrorWithCode(c, apperrors.ErrCodeTokenExpired, "Token已失效，请重新登录")
			c.Abort()
			return
		}

		// 3. 验证Token并解析Claims
		claims, err := m.jwtManager.ParseToken(tokenString)
		if err != nil {
			response.Error(c, err) // 自动处理ErrTokenExpired、ErrInvalidToken
			c.Abort()
			return
		}

		// 4. 将用户信息注入到Context（后续Handler可以使用）
		c.Set("user_id", claims.UserID)
		c.Set("user_name", claims.Name)
		c.Set("role", claims.Role)
		c.Set("access_token", tokenString)

		c.Next()
	}
}

// RequireAdmin 要求管理员角色
// 必须挂在RequireAuth之后,角色来自JWT Claims
// 入库、用户管理等管理端操作都挂这个中间件
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		if !user.Role(role).IsAdmin() {
			response.Error(c, apperrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// =========================================
// Context辅助函数（供Handler使用）
// =========================================

// GetUserID 从Context获取当前登录用户ID
func GetUserID(c *gin.Context) uint {
	if userID, exists := c.Get("user_id"); exists {
		if uid, ok := userID.(uint); ok {
			return uid
		}
	}
	return 0
}

// GetRole 从Context获取当前登录用户角色
func GetRole(c *gin.Context) string {
	if role, exists := c.Get("role"); exists {
		if r, ok := role.(string); ok {
			return r
		}
	}
	return ""
}

// GetAccessToken 从Context获取当前请求的Access Token(登出时用)
func GetAccessToken(c *gin.Context) string {
	if token, exists := c.Get("access_token"); exists {
		if t, ok := token.(string); ok {
			return t
		}
	}
	return ""
}
