// Package auth manages the user accounts and JWT tokens that protect the
// HTTP API. Accounts live in memory and a fixed set is seeded at startup
package auth

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/kode4food/sluice/pkg/api"
	"github.com/kode4food/sluice/pkg/log"
	"github.com/kode4food/sluice/pkg/util/call"
)

type (
	// Service manages user accounts and issues the tokens that
	// authenticate API requests
	Service struct {
		mu     sync.RWMutex
		users  map[string]*credential
		secret []byte
		expiry time.Duration
	}

	// credential pairs an account with its bcrypt password hash
	credential struct {
		user *api.User
		hash []byte
	}
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserExists         = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserDisabled       = errors.New("user account is disabled")
)

// NewService creates a Service that signs tokens with the provided
// secret and seeds the default accounts
func NewService(secret string, expiry time.Duration) (*Service, error) {
	res := &Service{
		users:  map[string]*credential{},
		secret: []byte(secret),
		expiry: expiry,
	}
	if err := res.seed(); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) seed() error {
	return call.Perform(
		call.WithArg(s.seedUser, &api.RegisterRequest{
			Username: "admin",
			Email:    "admin@flowmanager.com",
			FullName: "System Administrator",
			Password: "admin123",
			Role:     api.RoleAdmin,
		}),
		call.WithArg(s.seedUser, &api.RegisterRequest{
			Username: "user",
			Email:    "user@flowmanager.com",
			FullName: "Regular User",
			Password: "user123",
			Role:     api.RoleUser,
		}),
		call.WithArg(s.seedUser, &api.RegisterRequest{
			Username: "viewer",
			Email:    "viewer@flowmanager.com",
			FullName: "Read Only User",
			Password: "viewer123",
			Role:     api.RoleViewer,
		}),
	)
}

func (s *Service) seedUser(req *api.RegisterRequest) error {
	_, err := s.CreateUser(req)
	return err
}

// Authenticate verifies a username and password pair, returning the
// matching account. Unknown users, bad passwords, and disabled accounts
// all produce the same error
func (s *Service) Authenticate(
	username, password string,
) (*api.User, error) {
	s.mu.RLock()
	cred, ok := s.users[username]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrInvalidCredentials
	}
	err := bcrypt.CompareHashAndPassword(cred.hash, []byte(password))
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if cred.user.Disabled {
		return nil, ErrInvalidCredentials
	}
	return cloneUser(cred.user), nil
}

// CreateUser registers a new account. The password is hashed before it
// is stored and an empty role defaults to user
func (s *Service) CreateUser(req *api.RegisterRequest) (*api.User, error) {
	role := req.Role
	if role == "" {
		role = api.RoleUser
	}
	hash, err := bcrypt.GenerateFromPassword(
		[]byte(req.Password), bcrypt.DefaultCost,
	)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[req.Username]; ok {
		return nil, fmt.Errorf("%w: %s", ErrUserExists, req.Username)
	}
	user := &api.User{
		Username:  req.Username,
		Email:     req.Email,
		FullName:  req.FullName,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	s.users[req.Username] = &credential{user: user, hash: hash}
	slog.Info("User created",
		log.Username(req.Username),
		log.Role(role))
	return cloneUser(user), nil
}

// GetUser returns the identified account
func (s *Service) GetUser(username string) (*api.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cred, ok := s.users[username]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, username)
	}
	return cloneUser(cred.user), nil
}

// ListUsers returns all known accounts sorted by username
func (s *Service) ListUsers() []*api.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]*api.User, 0, len(s.users))
	for _, cred := range s.users {
		res = append(res, cloneUser(cred.user))
	}
	slices.SortFunc(res, func(l, r *api.User) int {
		return cmp.Compare(l.Username, r.Username)
	})
	return res
}

// SetDisabled flips an account's disabled flag. Disabled accounts can
// neither authenticate nor use previously issued tokens
func (s *Service) SetDisabled(username string, disabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cred, ok := s.users[username]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUserNotFound, username)
	}
	cred.user.Disabled = disabled
	return nil
}

func cloneUser(user *api.User) *api.User {
	res := *user
	return &res
}
