package postgres

import (
	"context"
	"errors"

	"alcyxob/gym-api/internal/domain"
	"alcyxob/gym-api/internal/repository"

	"gorm.io/gorm"
)

// postgresDietPlanRepository implements the repository.DietPlanRepository interface using GORM.
type postgresDietPlanRepository struct {
	db *gorm.DB
}

// NewPostgresDietPlanRepository creates a new instance of postgresDietPlanRepository.
func NewPostgresDietPlanRepository(db *gorm.DB) repository.DietPlanRepository {
	return &postgresDietPlanRepository{db: db}
}

// Create inserts a new diet plan.
func (r *postgresDietPlanRepository) Create(ctx context.Context, plan *domain.DietPlan) (uint, error) {
	if err := r.db.WithContext(ctx).Create(plan).Error; err != nil {
		return 0, err
	}
	return plan.ID, nil
}

// GetOwnedByID retrieves a diet plan only if the given trainer assigned it
// within the given branch. Plans outside that scope are indistinguishable
// from missing ones.
func (r *postgresDietPlanRepository) GetOwnedByID(ctx context.Context, id, trainerID uint, branchName string) (*domain.DietPlan, error) {
	var plan domain.DietPlan
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

// ListByTrainer returns the diet plans the trainer assigned within the
// branch, narrowed by the optional filter fields.
func (r *postgresDietPlanRepository) ListByTrainer(ctx context.Context, trainerID uint, branchName string, filter repository.PlanFilter) ([]domain.DietPlan, error) {
	query := r.db.WithContext(ctx).
		Where("assigned_by_trainer_id = ? AND branch_name = ?", trainerID, branchName)
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	var plans []domain.DietPlan
	if err := query.Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

// Update persists changes to a diet plan.
func (r *postgresDietPlanRepository) Update(ctx context.Context, plan *domain.DietPlan) error {
	return r.db.WithContext(ctx).Save(plan).Error
}

// Delete removes a diet plan by primary key.
func (r *postgresDietPlanRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.DietPlan{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
