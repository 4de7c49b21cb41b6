package session

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"fitzone/internal/domain/member"
	"fitzone/internal/domain/trainer"
)

// Role constants
const (
	RoleAdmin   = "admin"
	RoleMember  = "member"
	RoleTrainer = "trainer"
)

// ValidRoles contains all role values the backend issues.
var ValidRoles = []string{RoleAdmin, RoleMember, RoleTrainer}

// TTL is how long a session stays usable after login.
const TTL = 24 * time.Hour

// User is the authenticated identity as the backend returned it at login.
// The shape is role-dependent: member-only and trainer-only fields are zero
// for the other roles.
type User struct {
	ID              string              `json:"_id"`
	Name            string              `json:"name"`
	Username        string              `json:"username"`
	Email           string              `json:"email,omitempty"`
	Phone           string              `json:"phone,omitempty"`
	Plan            string              `json:"plan,omitempty"`
	PaymentStatus   string              `json:"paymentStatus,omitempty"`
	Attendance      int                 `json:"attendance,omitempty"`
	AssignedTrainer *member.TrainerRef  `json:"assignedTrainer,omitempty"`
	Specialization  string              `json:"specialization,omitempty"`
	Experience      int                 `json:"experience,omitempty"`
	AssignedMembers []trainer.MemberRef `json:"assignedMembers,omitempty"`
}

// DisplayName returns the user's name, falling back to the username.
// INVARIANT: User fields are not mutated
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}

// Session is a logged-in browser session. ID is the cookie token; APIToken is
// the bearer token the backend issued at login. Token, user, and role are
// written together at login and removed together at logout — nothing else
// may mutate them.
type Session struct {
	ID        string
	APIToken  string
	Role      string
	User      User
	CreatedAt time.Time
}

// Authenticated reports whether the session carries a complete identity:
// token, user, and role all present. Partial state is invalid and must force
// a logout.
// INVARIANT: Session fields are not mutated
func (s *Session) Authenticated() bool {
	return s.APIToken != "" && s.User.ID != "" && ValidRole(s.Role)
}

// Expired returns true once the session has outlived its TTL.
// INVARIANT: Session fields are not mutated
func (s *Session) Expired(now time.Time) bool {
	return now.Sub(s.CreatedAt) > TTL
}

// IsAdmin returns true for the admin role.
// INVARIANT: Session fields are not mutated
func (s *Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// WelcomeMessage is the header greeting for this session. Admins get the
// fixed management greeting; everyone else is greeted by name.
func (s *Session) WelcomeMessage() string {
	if s.Role == RoleAdmin {
		return "Welcome, Admin/Manager"
	}
	return "Welcome, " + s.User.DisplayName()
}

// ValidRole reports whether role is one the backend can issue.
func ValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// NewID generates a session cookie token.
// POST: Returns 64 hex characters from a CSPRNG
func NewID() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
