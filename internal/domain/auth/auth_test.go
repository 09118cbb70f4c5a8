package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"storeroom/internal/core/apperror"
	"storeroom/internal/core/id"
	"storeroom/internal/domain/catalogs/salesman"
)

type mockSalesmen struct {
	byUsername map[string]*salesman.Salesman
}

func (m *mockSalesmen) GetByUsername(ctx context.Context, username string) (*salesman.Salesman, error) {
	if s, ok := m.byUsername[username]; ok {
		return s, nil
	}
	return nil, apperror.NewNotFound("salesman", username)
}

func TestTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))

	token, expiresAt, err := svc.GenerateAccessToken("admin-1", "Alice", "0170000")
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	ident, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", ident.AdminID)
	assert.Equal(t, "Alice", ident.Name)
	assert.Equal(t, "0170000", ident.Phone)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService(DefaultJWTConfig("secret-a"))
	verifier := NewJWTService(DefaultJWTConfig("secret-b"))

	token, _, err := issuer.GenerateAccessToken("admin-1", "Alice", "")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	admin := &salesman.Salesman{
		ID:           id.New(),
		Name:         "Alice",
		Username:     "alice",
		PasswordHash: string(hash),
	}
	svc := NewService(
		&mockSalesmen{byUsername: map[string]*salesman.Salesman{"alice": admin}},
		NewJWTService(DefaultJWTConfig("test-secret")),
	)

	result, err := svc.Login(context.Background(), "alice", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, admin.ID, result.Admin.ID)
	assert.Equal(t, "Alice", result.Admin.Name)

	ident, err := svc.tokens.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID.String(), ident.AdminID)
}

func TestLoginWrongPasswordAndUnknownUserLookAlike(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	svc := NewService(
		&mockSalesmen{byUsername: map[string]*salesman.Salesman{
			"alice": {ID: id.New(), Username: "alice", PasswordHash: string(hash)},
		}},
		NewJWTService(DefaultJWTConfig("test-secret")),
	)

	_, errWrongPass := svc.Login(context.Background(), "alice", "wrong")
	_, errUnknown := svc.Login(context.Background(), "nobody", "wrong")

	require.Error(t, errWrongPass)
	require.Error(t, errUnknown)
	assert.Equal(t, errWrongPass.Error(), errUnknown.Error())
}
