package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"aulanet/backend/config"
	"aulanet/backend/internal/dto"
	"aulanet/backend/internal/model"
	"aulanet/backend/pkg/jwt"
)

func setupTestAuthService() (AuthService, *testRepos) {
	repos := newTestRepos()
	cfg := testConfig()
	cfg.Auth = config.AuthConfig{
		JWTSecret:               "test-secret-at-least-16-chars",
		AccessTokenTTL:          15 * time.Minute,
		RefreshTokenTTLDefault:  24 * time.Hour,
		RefreshTokenTTLRemember: 168 * time.Hour,
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewAuthService(cfg, repos.toRepository(), jwtMgr, nil, zap.NewNop())
	return svc, repos
}

func seedUser(repos *testRepos, id, email, password, role string, active bool) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	repos.user.users[id] = &model.User{
		UserID:       id,
		Name:         "Test User",
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     active,
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, repos := setupTestAuthService()
	seedUser(repos, "u-1", "prof@uni.edu", "secret-pass", model.RoleProfessor, true)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "prof@uni.edu",
		Password: "secret-pass",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("expected both tokens")
	}
	if resp.User == nil || resp.User.Role != model.RoleProfessor {
		t.Error("expected user payload with role")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, repos := setupTestAuthService()
	seedUser(repos, "u-1", "prof@uni.edu", "secret-pass", model.RoleProfessor, true)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "prof@uni.edu",
		Password: "wrong",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _ := setupTestAuthService()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@uni.edu",
		Password: "whatever",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	svc, repos := setupTestAuthService()
	seedUser(repos, "u-1", "prof@uni.edu", "secret-pass", model.RoleProfessor, false)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "prof@uni.edu",
		Password: "secret-pass",
	})
	if !errors.Is(err, ErrUserInactive) {
		t.Errorf("expected ErrUserInactive, got %v", err)
	}
}

func TestAuthService_Refresh_Success(t *testing.T) {
	svc, repos := setupTestAuthService()
	seedUser(repos, "u-1", "prof@uni.edu", "secret-pass", model.RoleProfessor, true)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "prof@uni.edu",
		Password: "secret-pass",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), &dto.RefreshRequest{
		RefreshToken: login.RefreshToken,
	})
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if refreshed.AccessToken == "" {
		t.Error("expected a new access token")
	}
}

func TestAuthService_Refresh_AccessTokenRejected(t *testing.T) {
	svc, repos := setupTestAuthService()
	seedUser(repos, "u-1", "prof@uni.edu", "secret-pass", model.RoleProfessor, true)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "prof@uni.edu",
		Password: "secret-pass",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	// an access token is not a refresh token
	_, err = svc.Refresh(context.Background(), &dto.RefreshRequest{
		RefreshToken: login.AccessToken,
	})
	if !errors.Is(err, ErrInvalidRefresh) {
		t.Errorf("expected ErrInvalidRefresh, got %v", err)
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc, repos := setupTestAuthService()
	seedUser(repos, "u-1", "prof@uni.edu", "secret-pass", model.RoleProfessor, true)

	err := svc.ChangePassword(context.Background(), "u-1", &dto.ChangePasswordRequest{
		OldPassword: "secret-pass",
		NewPassword: "brand-new-pass",
	})
	if err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}

	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "prof@uni.edu",
		Password: "brand-new-pass",
	}); err != nil {
		t.Errorf("login with the new password failed: %v", err)
	}
}

func TestAuthService_ChangePassword_WrongOld(t *testing.T) {
	svc, repos := setupTestAuthService()
	seedUser(repos, "u-1", "prof@uni.edu", "secret-pass", model.RoleProfessor, true)

	err := svc.ChangePassword(context.Background(), "u-1", &dto.ChangePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "brand-new-pass",
	})
	if !errors.Is(err, ErrWrongOldPassword) {
		t.Errorf("expected ErrWrongOldPassword, got %v", err)
	}
}
