package jwt

import (
	"testing"
	"time"

	apperrors "github.com/yushu/bookadmin/pkg/errors"
)

// TestGenerateAndParse 测试Token生成与解析
func TestGenerateAndParse(t *testing.T) {
	m := NewManager("test-secret", 2*time.Hour, 7*24*time.Hour)

	pair, err := m.GenerateToken(1, "admin", "管理员", "admin")
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}

	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("Token对不应该为空")
	}
	if pair.ExpiresIn != int64((2 * time.Hour).Seconds()) {
		t.Errorf("过期时间期望%d秒，实际%d秒", int64((2*time.Hour).Seconds()), pair.ExpiresIn)
	}

	claims, err := m.ParseToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("解析Token失败: %v", err)
	}

	if claims.UserID != 1 {
		t.Errorf("UserID期望1，实际%d", claims.UserID)
	}
	if claims.Name != "admin" {
		t.Errorf("Name期望admin，实际%s", claims.Name)
	}
	if claims.Role != "admin" {
		t.Errorf("Role期望admin，实际%s", claims.Role)
	}
}

// TestParseToken_WrongSecret 测试密钥不匹配
func TestParseToken_WrongSecret(t *testing.T) {
	m1 := NewManager("secret-one", time.Hour, time.Hour)
	m2 := NewManager("secret-two", time.Hour, time.Hour)

	pair, err := m1.GenerateToken(1, "user", "", "user")
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}

	_, err = m2.ParseToken(pair.AccessToken)
	if err != apperrors.ErrInvalidToken {
		t.Errorf("密钥不匹配期望ErrInvalidToken，实际%v", err)
	}
}

// TestParseToken_Expired 测试过期Token
func TestParseToken_Expired(t *testing.T) {
	// 有效期为负,生成即过期
	m := NewManager("test-secret", -time.Minute, time.Hour)

	pair, err := m.GenerateToken(1, "user", "", "user")
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}

	_, err = m.ParseToken(pair.AccessToken)
	if err != apperrors.ErrTokenExpired {
		t.Errorf("过期Token期望ErrTokenExpired，实际%v", err)
	}
}

// TestParseToken_Garbage 测试非法Token串
func TestParseToken_Garbage(t *testing.T) {
	m := NewManager("test-secret", time.Hour, time.Hour)

	_, err := m.ParseToken("not-a-jwt")
	if err != apperrors.ErrInvalidToken {
		t.Errorf("非法Token期望ErrInvalidToken，实际%v", err)
	}
}

// TestRefreshAccessToken 测试刷新Access Token
func TestRefreshAccessToken(t *testing.T) {
	m := NewManager("test-secret", 2*time.Hour, 7*24*time.Hour)

	pair, err := m.GenerateToken(42, "reader", "读者", "user")
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}

	newAccess, err := m.RefreshAccessToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("刷新Token失败: %v", err)
	}

	claims, err := m.ParseToken(newAccess)
	if err != nil {
		t.Fatalf("解析新Token失败: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID期望42，实际%d", claims.UserID)
	}
}
