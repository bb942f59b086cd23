package repository

import (
	"alcyxob/gym-api/internal/domain" // Import our defined domain models
	"context"                         // Standard for request-scoped deadlines, cancellation signals, etc.
	"time"
)

// Error constants for repository layer (optional but good practice)
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate key")
	// Add more specific errors as needed
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// AttendanceFilter narrows attendance listings. Nil fields are ignored.
type AttendanceFilter struct {
	UserID         *uint
	AttendanceDate *time.Time
}

// PlanFilter narrows plan listings. Nil fields are ignored.
type PlanFilter struct {
	UserID *uint
}

// UserRepository defines the interface for interacting with user account data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (uint, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uint) (*domain.User, error)
	GetByIDInBranch(ctx context.Context, id uint, branchName string) (*domain.User, error) // Branch scoped lookup
}

// TrainerRepository defines the interface for interacting with trainer profiles.
// A trainer profile shares its ID with a login account; Create persists both
// rows atomically, Update keeps them in sync and Delete removes both.
type TrainerRepository interface {
	Create(ctx context.Context, trainer *domain.Trainer, account *domain.User) (uint, error)
	GetByID(ctx context.Context, id uint) (*domain.Trainer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Trainer, error)
	ListAll(ctx context.Context) ([]domain.Trainer, error)
	ListByBranch(ctx context.Context, branchName string) ([]domain.Trainer, error)
	Update(ctx context.Context, trainer *domain.Trainer) error
	Delete(ctx context.Context, id uint) error
}

// SessionRepository defines the interface for interacting with session schedules.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.SessionSchedule) (uint, error)
	GetByID(ctx context.Context, id uint) (*domain.SessionSchedule, error)
	GetOwnedByID(ctx context.Context, id, trainerID uint) (*domain.SessionSchedule, error) // Owner scoped lookup
	ListByTrainer(ctx context.Context, trainerID uint) ([]domain.SessionSchedule, error)
	ListAll(ctx context.Context) ([]domain.SessionSchedule, error)
	Update(ctx context.Context, session *domain.SessionSchedule) error
	Delete(ctx context.Context, id uint) error
}

// AttendanceRepository defines the interface for interacting with attendance records.
type AttendanceRepository interface {
	// Upsert inserts the record, or updates the status of the existing row
	// when one already exists for the same (session, user, date) triple.
	Upsert(ctx context.Context, attendance *domain.SessionAttendance) (*domain.SessionAttendance, error)
	GetByID(ctx context.Context, id uint) (*domain.SessionAttendance, error)
	ListBySession(ctx context.Context, sessionID uint, filter AttendanceFilter) ([]domain.SessionAttendance, error)
	Update(ctx context.Context, attendance *domain.SessionAttendance) error
	Delete(ctx context.Context, id uint) error
}

// DietPlanRepository defines the interface for interacting with diet plan data.
type DietPlanRepository interface {
	Create(ctx context.Context, plan *domain.DietPlan) (uint, error)
	GetOwnedByID(ctx context.Context, id, trainerID uint, branchName string) (*domain.DietPlan, error) // Owner and branch scoped
	ListByTrainer(ctx context.Context, trainerID uint, branchName string, filter PlanFilter) ([]domain.DietPlan, error)
	Update(ctx context.Context, plan *domain.DietPlan) error
	Delete(ctx context.Context, id uint) error
}

// ExercisePlanRepository defines the interface for interacting with exercise plan data.
type ExercisePlanRepository interface {
	Create(ctx context.Context, plan *domain.ExercisePlan) (uint, error)
	GetOwnedByID(ctx context.Context, id, trainerID uint, branchName string) (*domain.ExercisePlan, error) // Owner and branch scoped
	ListByTrainer(ctx context.Context, trainerID uint, branchName string, filter PlanFilter) ([]domain.ExercisePlan, error)
	Update(ctx context.Context, plan *domain.ExercisePlan) error
	Delete(ctx context.Context, id uint) error
}
