package service

import (
	"fmt"

	"github.com/Santo1997/summer-sage-server/internal/auth"
)

// AuthService issues access tokens.
type AuthService interface {
	IssueToken(email, name string) (string, error)
}

type authService struct {
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(jwtService *auth.JWTService) AuthService {
	return &authService{jwtService: jwtService}
}

// IssueToken signs a one-hour token for email. The caller identity is taken
// on trust from the client-side sign-in.
func (s *authService) IssueToken(email, name string) (string, error) {
	token, err := s.jwtService.GenerateToken(email, name)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}
