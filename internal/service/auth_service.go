package service

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"portfolioAPI/internal/apierror"
	"portfolioAPI/internal/config"
	"portfolioAPI/internal/models"
	"portfolioAPI/internal/repository"
)

// AuthService resolves bearer tokens to admin users. Tokens are HMAC signed
// and carry the user's google id as subject.
type AuthService interface {
	ValidateToken(tokenString string) (string, error)
	Authenticate(ctx context.Context, tokenString string) (*models.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
	log      *zap.Logger
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config, log *zap.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
		log:      log,
	}
}

// ValidateToken checks the signature and expiry and returns the subject.
func (s *authService) ValidateToken(tokenString string) (string, error) {
	if s.cfg.AuthTokenSecret == "" {
		return "", fmt.Errorf("token secret is not configured")
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.AuthTokenSecret), nil
	})
	if err != nil {
		return "", fmt.Errorf("error parsing token: %w", err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", fmt.Errorf("token has no subject")
	}

	return subject, nil
}

func (s *authService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	googleID, err := s.ValidateToken(tokenString)
	if err != nil {
		s.log.Debug("rejected token", zap.Error(err))
		return nil, apierror.Unauthorized("invalid token")
	}

	user, err := s.userRepo.GetByGoogleID(ctx, googleID)
	if err != nil {
		s.log.Error("could not load user", zap.Error(err))
		return nil, apierror.Internal("could not load user", err)
	}
	if user == nil {
		return nil, apierror.Forbidden("user is not allowed to modify content")
	}

	return user, nil
}
