package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kode4food/sluice/internal/assert"
	"github.com/kode4food/sluice/internal/auth"
	"github.com/kode4food/sluice/pkg/api"
)

func TestIssueAndVerify(t *testing.T) {
	as := assert.New(t)
	svc := newService(t)

	user, err := svc.GetUser("admin")
	as.NoError(err)

	token, expiresIn, err := svc.IssueToken(user)
	as.NoError(err)
	as.NotEmpty(token)
	as.Equal(int64(3600), expiresIn)

	verified, err := svc.VerifyToken(token)
	as.NoError(err)
	as.Equal("admin", verified.Username)
	as.Equal(api.RoleAdmin, verified.Role)
}

func TestVerifyGarbage(t *testing.T) {
	as := assert.New(t)
	svc := newService(t)

	_, err := svc.VerifyToken("not-a-token")
	as.ErrorIs(err, auth.ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	as := assert.New(t)
	svc := newService(t)

	other, err := auth.NewService(
		"another-secret-0123456789abcdef0123456789", time.Hour,
	)
	as.NoError(err)

	user, err := svc.GetUser("user")
	as.NoError(err)
	token, _, err := svc.IssueToken(user)
	as.NoError(err)

	_, err = other.VerifyToken(token)
	as.ErrorIs(err, auth.ErrInvalidToken)
}

func TestVerifyExpired(t *testing.T) {
	as := assert.New(t)

	svc, err := auth.NewService(testSecret, -time.Minute)
	as.NoError(err)

	user, err := svc.GetUser("user")
	as.NoError(err)
	token, _, err := svc.IssueToken(user)
	as.NoError(err)

	_, err = svc.VerifyToken(token)
	as.ErrorIs(err, auth.ErrInvalidToken)
}

func TestVerifyDisabledAccount(t *testing.T) {
	as := assert.New(t)
	svc := newService(t)

	user, err := svc.GetUser("viewer")
	as.NoError(err)
	token, _, err := svc.IssueToken(user)
	as.NoError(err)

	as.NoError(svc.SetDisabled("viewer", true))
	_, err = svc.VerifyToken(token)
	as.ErrorIs(err, auth.ErrUserDisabled)
}

func TestVerifyUnknownSubject(t *testing.T) {
	as := assert.New(t)
	svc := newService(t)

	created, err := svc.CreateUser(&api.RegisterRequest{
		Username: "temp",
		Email:    "temp@flowmanager.com",
		Password: "temp123",
	})
	as.NoError(err)
	token, _, err := svc.IssueToken(created)
	as.NoError(err)

	// same secret, but the subject only exists in the first service
	other, err := auth.NewService(testSecret, time.Hour)
	as.NoError(err)
	_, err = other.VerifyToken(token)
	as.ErrorIs(err, auth.ErrInvalidToken)
}

func TestVerifyRejectsUnsignedToken(t *testing.T) {
	as := assert.New(t)
	svc := newService(t)

	claims := &auth.Claims{
		Role: api.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "admin",
			ExpiresAt: jwt.NewNumericDate(
				time.Now().Add(time.Hour),
			),
		},
	}
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	as.NoError(err)

	_, err = svc.VerifyToken(token)
	as.ErrorIs(err, auth.ErrInvalidToken)
}
