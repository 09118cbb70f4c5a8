package auth

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"storeroom/internal/core/apperror"
	"storeroom/internal/domain/catalogs/salesman"
	"storeroom/pkg/logger"
)

// SalesmanLookup is the slice of the salesman repository the login flow
// needs.
type SalesmanLookup interface {
	GetByUsername(ctx context.Context, username string) (*salesman.Salesman, error)
}

// Service verifies admin credentials and issues tokens.
type Service struct {
	salesmen SalesmanLookup
	tokens   *JWTService
}

// NewService creates an auth service.
func NewService(salesmen SalesmanLookup, tokens *JWTService) *Service {
	return &Service{salesmen: salesmen, tokens: tokens}
}

// LoginResult carries the issued token and the admin it belongs to.
type LoginResult struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expiresAt"`
	Admin     salesman.Snapshot `json:"admin"`
}

// Login verifies username and password and returns an access token. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	invalid := &apperror.AppError{
		Code:       apperror.CodeValidation,
		Message:    "invalid credentials",
		HTTPStatus: http.StatusUnauthorized,
	}

	admin, err := s.salesmen.GetByUsername(ctx, username)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, invalid
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, invalid
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(admin.ID.String(), admin.Name, admin.Phone)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	logger.Info(ctx, "admin logged in", "admin_id", admin.ID, "username", username)
	return &LoginResult{Token: token, ExpiresAt: expiresAt, Admin: admin.Snapshot()}, nil
}
