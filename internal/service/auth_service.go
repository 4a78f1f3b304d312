// Package service holds the application's business logic, sitting between the
// HTTP handlers and the repositories.
package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"stride/internal/models"
	"stride/internal/repository"
	"stride/internal/wechat"

	"github.com/golang-jwt/jwt/v5"
)

// SessionExchanger exchanges a one-time login code for a session. Satisfied by
// *wechat.Client; tests substitute a stub.
type SessionExchanger interface {
	CodeToSession(ctx context.Context, code string) (*wechat.SessionResult, error)
}

// AuthService handles the login exchange and API token issuance.
type AuthService struct {
	userRepo  repository.UserRepository
	provider  SessionExchanger
	jwtSecret string
	tokenTTL  time.Duration
}

// LoginResult is what a successful login returns to the client. The session
// key is passed through for the follow-up step sync and never persisted.
type LoginResult struct {
	User       *models.User `json:"user"`
	SessionKey string       `json:"sessionKey"`
	Token      string       `json:"token"`
}

// NewAuthService returns a new AuthService.
func NewAuthService(userRepo repository.UserRepository, provider SessionExchanger, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		provider:  provider,
		jwtSecret: jwtSecret,
		tokenTTL:  7 * 24 * time.Hour,
	}
}

// Login exchanges the one-time code with the identity provider, creates the
// user on first sight (keyed by openid) or refreshes its update timestamp,
// and issues an API token.
func (s *AuthService) Login(ctx context.Context, code string) (*LoginResult, error) {
	if code == "" {
		return nil, models.NewValidationError("Code is required")
	}

	session, err := s.provider.CodeToSession(ctx, code)
	if err != nil {
		return nil, models.NewUpstreamAuthError("Identity provider unavailable")
	}
	if session.ErrCode != 0 {
		msg := session.ErrMsg
		if msg == "" {
			msg = fmt.Sprintf("identity provider rejected code (errcode %d)", session.ErrCode)
		}
		return nil, models.NewUpstreamAuthError(msg)
	}
	if session.OpenID == "" {
		return nil, models.NewUpstreamAuthError("Identity provider returned no openid")
	}

	user, err := s.userRepo.UpsertByOpenID(ctx, session.OpenID)
	if err != nil {
		return nil, err
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return &LoginResult{
		User:       user,
		SessionKey: session.SessionKey,
		Token:      token,
	}, nil
}

// generateToken signs a JWT whose subject is the user ID.
func (s *AuthService) generateToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
