// internal/domain/session.go
package domain

import "time"

// SessionSchedule is a class slot a trainer publishes at a branch.
// BranchName is snapshotted from the trainer's branch at creation and
// never changes afterwards, even if the trainer later moves branches.
type SessionSchedule struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TrainerID   uint      `gorm:"index" json:"trainerId"`
	SessionName string    `gorm:"size:255" json:"sessionName"`
	SessionDate time.Time `gorm:"type:date" json:"sessionDate"`
	StartTime   string    `gorm:"size:20" json:"startTime"` // "HH:MM"
	EndTime     string    `gorm:"size:20" json:"endTime"`
	BranchName  string    `gorm:"size:255" json:"branchName"`
	MaxCapacity int       `json:"maxCapacity"`
	Description string    `gorm:"size:1024" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
