package api

import "time"

type (
	// Role grants a level of access to the API. Roles form a strict
	// hierarchy: admin > user > viewer
	Role string

	// User describes an account known to the service. Passwords are never
	// carried on this type
	User struct {
		Username  string    `json:"username"`
		Email     string    `json:"email"`
		FullName  string    `json:"full_name,omitempty"`
		Role      Role      `json:"role"`
		Disabled  bool      `json:"disabled"`
		CreatedAt time.Time `json:"created_at"`
	}

	// LoginRequest carries credentials for token issuance
	LoginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	// TokenResponse is returned on successful login
	TokenResponse struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int64  `json:"expires_in"`
	}

	// RegisterRequest carries the fields for creating a new user
	RegisterRequest struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"full_name,omitempty"`
		Role     Role   `json:"role,omitempty"`
	}

	// UserListResponse contains the known user accounts
	UserListResponse struct {
		Users []*User `json:"users"`
		Count int     `json:"count"`
	}
)

const (
	RoleAdmin  Role = "admin"
	RoleUser   Role = "user"
	RoleViewer Role = "viewer"
)

var roleRanks = map[Role]int{
	RoleViewer: 1,
	RoleUser:   2,
	RoleAdmin:  3,
}

// Satisfies returns true if the role grants at least the access level of
// required. Unknown roles satisfy nothing
func (r Role) Satisfies(required Role) bool {
	return roleRanks[r] >= roleRanks[required] && roleRanks[r] > 0
}
