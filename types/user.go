package types

// UserRole is the closed set of reviewer roles.
type UserRole string

const (
	RoleLegal    UserRole = "legal"
	RoleIT       UserRole = "it"
	RoleAdmin    UserRole = "admin"
	RoleApprover UserRole = "approver"
)

// User is immutable reference data describing an actor in the review workflow.
type User struct {
	ID         string   `json:"id" yaml:"id"`
	Name       string   `json:"name" yaml:"name"`
	Email      string   `json:"email" yaml:"email"`
	Role       UserRole `json:"role" yaml:"role"`
	Department string   `json:"department" yaml:"department"`
	Avatar     string   `json:"avatar,omitempty" yaml:"avatar,omitempty"`
}
