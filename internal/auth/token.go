package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kode4food/sluice/pkg/api"
)

// Claims are the JWT claims carried by tokens issued by the Service.
// The username travels in the registered subject claim
type Claims struct {
	Role api.Role `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken creates a signed token for the user. The returned count is
// the token lifetime in seconds, for the expires_in response field
func (s *Service) IssueToken(user *api.User) (string, int64, error) {
	now := time.Now()
	claims := &Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", 0, err
	}
	return signed, int64(s.expiry.Seconds()), nil
}

// VerifyToken parses and validates a bearer token, resolving it to the
// account it was issued for
func (s *Service) VerifyToken(token string) (*api.User, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	user, err := s.GetUser(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if user.Disabled {
		return nil, ErrUserDisabled
	}
	return user, nil
}
