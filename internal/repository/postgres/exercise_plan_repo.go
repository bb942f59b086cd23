package postgres

import (
	"context"
	"errors"

	"alcyxob/gym-api/internal/domain"
	"alcyxob/gym-api/internal/repository"

	"gorm.io/gorm"
)

// postgresExercisePlanRepository implements the repository.ExercisePlanRepository interface using GORM.
type postgresExercisePlanRepository struct {
	db *gorm.DB
}

// NewPostgresExercisePlanRepository creates a new instance of postgresExercisePlanRepository.
func NewPostgresExercisePlanRepository(db *gorm.DB) repository.ExercisePlanRepository {
	return &postgresExercisePlanRepository{db: db}
}

// Create inserts a new exercise plan.
func (r *postgresExercisePlanRepository) Create(ctx context.Context, plan *domain.ExercisePlan) (uint, error) {
	if err := r.db.WithContext(ctx).Create(plan).Error; err != nil {
		return 0, err
	}
	return plan.ID, nil
}

// GetOwnedByID retrieves an exercise plan only if the given trainer assigned
// it within the given branch.
func (r *postgresExercisePlanRepository) GetOwnedByID(ctx context.Context, id, trainerID uint, branchName string) (*domain.ExercisePlan, error) {
	var plan domain.ExercisePlan
	err := r.db.WithContext(ctx).
		Where("id = ? AND assigned_by_trainer_id = ? AND branch_name = ?", id, trainerID, branchName).
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// ListByTrainer returns the exercise plans the trainer assigned within the
// branch, narrowed by the optional filter fields.
func (r *postgresExercisePlanRepository) ListByTrainer(ctx context.Context, trainerID uint, branchName string, filter repository.PlanFilter) ([]domain.ExercisePlan, error) {
	query := r.db.WithContext(ctx).
		Where("assigned_by_trainer_id = ? AND branch_name = ?", trainerID, branchName)
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	var plans []domain.ExercisePlan
	if err := query.Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

// Update persists changes to an exercise plan.
func (r *postgresExercisePlanRepository) Update(ctx context.Context, plan *domain.ExercisePlan) error {
	return r.db.WithContext(ctx).Save(plan).Error
}

// Delete removes an exercise plan by primary key.
func (r *postgresExercisePlanRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.ExercisePlan{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
