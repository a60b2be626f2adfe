package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/repository"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/utils"

	"github.com/rs/zerolog"
)

// AuthService admin login
type AuthService struct {
	users repository.Repository[models.AdminUser]
	now   Clock
	log   zerolog.Logger
}

func NewAuthService(s *repository.Stores) *AuthService {
	return &AuthService{users: s.AdminUsers, now: time.Now, log: utils.Component("auth")}
}

// Login verifies the credentials of an Active account and issues a token.
// Unknown users and wrong passwords get the same error.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	user, err := findBy(ctx, s.users, func(u models.AdminUser) bool { return strings.EqualFold(u.Username, username) })
	if err != nil {
		return nil, fmt.Errorf("find admin user: %w", err)
	}
	if user == nil || !utils.VerifyPassword(req.Password, user.PasswordHash) {
		s.log.Warn().Str("username", username).Msg("login failed")
		return nil, utils.NewApiError("invalid username or password", http.StatusUnauthorized, utils.CodeUnauthorized)
	}
	if user.Status != models.AdminUserActive {
		return nil, utils.NewApiError(fmt.Sprintf("account is %s", strings.ToLower(string(user.Status))), http.StatusForbidden, utils.CodeForbidden)
	}

	token, err := utils.GenerateToken(user.ID, user.Username, user.RoleNames())
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	now := s.now()
	user.LastLogin = &now
	if err := s.users.Update(ctx, *user); err != nil {
		return nil, lookupError(err, "admin user")
	}
	withCapabilities(user)
	s.log.Info().Str("username", user.Username).Msg("login succeeded")
	return &models.LoginResponse{Token: token, User: user}, nil
}

// Me current account of a token holder
func (s *AuthService) Me(ctx context.Context, id string) (*models.AdminUser, error) {
	u, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, lookupError(err, "admin user")
	}
	withCapabilities(u)
	return u, nil
}
