// internal/domain/trainer.go
package domain

import (
	"strings"
	"time"
)

// Trainer is the staff profile for a coach working at a branch. Every
// trainer also has a User account under the same ID for login; the
// profile carries the public-facing details.
type Trainer struct {
	ID             uint      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name           string    `gorm:"size:255" json:"name"`
	Specialization string    `gorm:"size:512" json:"specialization"` // Comma separated, e.g. "yoga,strength"
	Rating         float64   `json:"rating"`
	Experience     int       `json:"experience"` // Years
	Phone          string    `gorm:"size:50" json:"phone"`
	Email          string    `gorm:"size:255;uniqueIndex" json:"email"` // Should be unique
	PasswordHash   string    `gorm:"size:255" json:"-"`
	Availability   string    `gorm:"size:255" json:"availability"`
	BranchName     string    `gorm:"size:255" json:"branchName"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// SpecializationList splits the stored comma separated specialization
// into a slice. Returns an empty slice, never nil, when unset.
func (t *Trainer) SpecializationList() []string {
	if t.Specialization == "" {
		return []string{}
	}
	return strings.Split(t.Specialization, ",")
}
