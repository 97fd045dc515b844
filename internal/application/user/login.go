package user

import (
	"context"
	"log"
	"time"

	"github.com/yushu/bookadmin/internal/domain/user"
	"github.com/yushu/bookadmin/internal/infrastructure/persistence/redis"
	"github.com/yushu/bookadmin/pkg/jwt"
)

// LoginUseCase 用户登录用例
// 设计说明：
// 1. 验证用户名密码（领域服务,含禁用账号检查）
// 2. 生成JWT Token对（Claims带角色,供权限中间件使用）
// 3. 保存会话到Redis
type LoginUseCase struct {
	userService  user.Service
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(
	userService user.Service,
	jwtManager *jwt.Manager,
	sessionStore *redis.SessionStore,
) *LoginUseCase {
	return &LoginUseCase{
		userService:  userService,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Name     string
	Password string
	ClientIP string
}

// LoginResponse 登录响应
type LoginResponse struct {
	User         UserInfo `json:"user"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int64    `json:"expires_in"` // Access Token过期时间（秒）
}

// UserInfo 用户信息
type UserInfo struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	NickName string `json:"nick_name"`
	Role     string `json:"role"`
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	// 1. 验证用户名密码（调用领域服务）
	u, err := uc.userService.Login(ctx, req.Name, req.Password)
	if err != nil {
		return nil, err
	}

	// 2. 生成JWT Token对
	tokenPair, err := uc.jwtManager.GenerateToken(u.ID, u.Name, u.NickName, string(u.Role))
	if err != nil {
		return nil, err
	}

	// 3. 保存会话到Redis（会话有效期 = Refresh Token有效期）
	sessionData := map[string]interface{}{
		"user_id":  u.ID,
		"name":     u.Name,
		"role":     string(u.Role),
		"login_at": time.Now().Unix(),
		"ip":       req.ClientIP,
	}
	if err := uc.sessionStore.SaveSession(ctx, u.ID, sessionData, 7*24*time.Hour); err != nil {
		// 会话保存失败不影响登录，只记录日志
		log.Printf("保存登录会话失败: %v", err)
	}

	return &LoginResponse{
		User: UserInfo{
			ID:       u.ID,
			Name:     u.Name,
			NickName: u.NickName,
			Role:     string(u.Role),
		},
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

// LogoutUseCase 用户登出用例
type LogoutUseCase struct {
	sessionStore *redis.SessionStore
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(sessionStore *redis.SessionStore) *LogoutUseCase {
	return &LogoutUseCase{sessionStore: sessionStore}
}

// Execute 执行登出
func (uc *LogoutUseCase) Execute(ctx context.Context, userID uint, accessToken string) error {
	// 1. 删除会话
	if err := uc.sessionStore.DeleteSession(ctx, userID); err != nil {
		return err
	}

	// 2. 将Access Token加入黑名单（防止Token在过期前继续使用）
	return uc.sessionStore.AddToBlacklist(ctx, accessToken, 2*time.Hour)
}
