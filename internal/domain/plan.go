// internal/domain/plan.go
package domain

import "time"

// PlanDetails holds the fields shared by diet and exercise plans.
// BranchName is snapshotted from the assigning trainer's branch.
type PlanDetails struct {
	UserID              uint       `gorm:"index" json:"userId"`
	AssignedByTrainerID uint       `gorm:"index" json:"assignedByTrainerId"`
	Title               string     `gorm:"size:255" json:"title"`
	Description         string     `gorm:"size:2048" json:"description"`
	AssignedDate        time.Time  `gorm:"type:date" json:"assignedDate"`
	ExpiryDate          *time.Time `gorm:"type:date" json:"expiryDate,omitempty"` // Optional
	BranchName          string     `gorm:"size:255" json:"branchName"`
}

// DietPlan is a nutrition plan a trainer assigns to a member.
type DietPlan struct {
	ID uint `gorm:"primaryKey" json:"id"`
	PlanDetails
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ExercisePlan is a workout plan a trainer assigns to a member.
type ExercisePlan struct {
	ID uint `gorm:"primaryKey" json:"id"`
	PlanDetails
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
