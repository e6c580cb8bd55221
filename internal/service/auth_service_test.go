package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/haryan80/interventional-radiology-website/config"
	"github.com/haryan80/interventional-radiology-website/internal/dto"
	"github.com/haryan80/interventional-radiology-website/internal/model"
	"github.com/haryan80/interventional-radiology-website/internal/repository"
	"github.com/haryan80/interventional-radiology-website/pkg/jwt"
)

func setupAuthTest(t *testing.T) (AuthService, *jwt.Manager) {
	t.Helper()

	adminRepo := newMockAdminRepo()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse-battery"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成密码哈希失败: %v", err)
	}
	_ = adminRepo.Create(context.Background(), &model.AdminUser{
		Username:     "admin",
		PasswordHash: string(hash),
	})

	repo := &repository.Repository{Admin: adminRepo}
	jwtMgr := jwt.NewManager(&config.AuthConfig{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})
	// Redis 降级场景：nil 客户端时黑名单放行
	svc := NewAuthService(repo, jwtMgr, nil, zap.NewNop())
	return svc, jwtMgr
}

func TestLogin_Success(t *testing.T) {
	svc, jwtMgr := setupAuthTest(t)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "admin",
		Password: "correct-horse-battery",
	})
	if err != nil {
		t.Fatalf("登录应成功: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("登录应同时签发 access 与 refresh token")
	}
	if resp.ExpiresIn != int((15 * time.Minute).Seconds()) {
		t.Errorf("expires_in 应为 access token 有效期秒数，实际 %d", resp.ExpiresIn)
	}

	claims, err := jwtMgr.ParseToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("签发的 access token 应可解析: %v", err)
	}
	if claims.TokenType != "access" || claims.Username != "admin" {
		t.Errorf("access token 声明不符: %+v", claims)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := setupAuthTest(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "admin",
		Password: "wrong-password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("密码错误应返回 ErrInvalidCredentials，实际 %v", err)
	}
}

func TestLogin_UnknownUserSameError(t *testing.T) {
	svc, _ := setupAuthTest(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "nobody",
		Password: "whatever-pass",
	})
	// 账号不存在与密码错误必须同错，不暴露账号存在性
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("账号不存在应返回 ErrInvalidCredentials，实际 %v", err)
	}
}

func TestRefresh_Success(t *testing.T) {
	svc, _ := setupAuthTest(t)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "admin",
		Password: "correct-horse-battery",
	})
	if err != nil {
		t.Fatalf("登录应成功: %v", err)
	}

	resp, err := svc.Refresh(context.Background(), &dto.RefreshRequest{
		RefreshToken: login.RefreshToken,
	})
	if err != nil {
		t.Fatalf("刷新应成功: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("刷新应换发新的 token 对")
	}
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	svc, _ := setupAuthTest(t)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "admin",
		Password: "correct-horse-battery",
	})
	if err != nil {
		t.Fatalf("登录应成功: %v", err)
	}

	// 拿 access token 去刷新必须被拒
	_, err = svc.Refresh(context.Background(), &dto.RefreshRequest{
		RefreshToken: login.AccessToken,
	})
	if !errors.Is(err, ErrInvalidRefresh) {
		t.Errorf("access token 不应能刷新，实际 %v", err)
	}
}

func TestRefresh_RejectsGarbageToken(t *testing.T) {
	svc, _ := setupAuthTest(t)

	_, err := svc.Refresh(context.Background(), &dto.RefreshRequest{
		RefreshToken: "not-a-jwt",
	})
	if !errors.Is(err, ErrInvalidRefresh) {
		t.Errorf("非法 token 应返回 ErrInvalidRefresh，实际 %v", err)
	}
}

func TestGetCurrent_NotFound(t *testing.T) {
	svc, _ := setupAuthTest(t)

	_, err := svc.GetCurrent(context.Background(), "no-such-admin")
	if !errors.Is(err, ErrAdminNotFound) {
		t.Errorf("不存在的管理员应返回 ErrAdminNotFound，实际 %v", err)
	}
}
