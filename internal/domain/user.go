package domain

import "time"

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleMember     Role = "member"
	RoleTrainer    Role = "trainer"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// User represents an account in the system (member, trainer, admin or superadmin).
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:255" json:"name"`
	Email        string    `gorm:"size:255;uniqueIndex" json:"email"` // Should be unique
	PasswordHash string    `gorm:"size:255" json:"-"`                 // Never expose this via JSON
	Role         Role      `gorm:"size:20" json:"role"`
	BranchName   string    `gorm:"size:255" json:"branchName"` // Empty means not assigned to a branch
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Helper methods (Optional but can be useful)
func (u *User) IsTrainer() bool {
	return u.Role == RoleTrainer
}

func (u *User) IsMember() bool {
	return u.Role == RoleMember
}

// Caller identifies the authenticated user for authorization decisions.
// Role and branch are resolved fresh from the users table on every
// request rather than trusted from token claims.
type Caller struct {
	ID         uint
	Role       Role
	BranchName string
}

func (c Caller) IsMember() bool {
	return c.Role == RoleMember
}

func (c Caller) IsTrainer() bool {
	return c.Role == RoleTrainer
}

func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

func (c Caller) IsSuperadmin() bool {
	return c.Role == RoleSuperadmin
}

func (c Caller) IsAdminOrSuperadmin() bool {
	return c.Role == RoleAdmin || c.Role == RoleSuperadmin
}

// HasBranch reports whether the caller is assigned to a branch.
func (c Caller) HasBranch() bool {
	return c.BranchName != ""
}
