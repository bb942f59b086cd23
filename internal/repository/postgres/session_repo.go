package postgres

import (
	"context"
	"errors"

	"alcyxob/gym-api/internal/domain"
	"alcyxob/gym-api/internal/repository"

	"gorm.io/gorm"
)

// postgresSessionRepository implements the repository.SessionRepository interface using GORM.
type postgresSessionRepository struct {
	db *gorm.DB
}

// NewPostgresSessionRepository creates a new instance of postgresSessionRepository.
func NewPostgresSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &postgresSessionRepository{db: db}
}

// Create inserts a new session schedule.
func (r *postgresSessionRepository) Create(ctx context.Context, session *domain.SessionSchedule) (uint, error) {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return 0, err
	}
	return session.ID, nil
}

// GetByID retrieves a session schedule by primary key.
func (r *postgresSessionRepository) GetByID(ctx context.Context, id uint) (*domain.SessionSchedule, error) {
	var session domain.SessionSchedule
	err := r.db.WithContext(ctx).First(&session, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// GetOwnedByID retrieves a session schedule only if the given trainer owns it.
// A session owned by someone else is indistinguishable from a missing one.
func (r *postgresSessionRepository) GetOwnedByID(ctx context.Context, id, trainerID uint) (*domain.SessionSchedule, error) {
	var session domain.SessionSchedule
	err := r.db.WithContext(ctx).
		Where("id = ? AND trainer_id = ?", id, trainerID).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// ListByTrainer returns the sessions created by one trainer.
func (r *postgresSessionRepository) ListByTrainer(ctx context.Context, trainerID uint) ([]domain.SessionSchedule, error) {
	var sessions []domain.SessionSchedule
	err := r.db.WithContext(ctx).
		Where("trainer_id = ?", trainerID).
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// ListAll returns every session schedule across all branches.
func (r *postgresSessionRepository) ListAll(ctx context.Context) ([]domain.SessionSchedule, error) {
	var sessions []domain.SessionSchedule
	if err := r.db.WithContext(ctx).Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// Update persists changes to a session schedule.
func (r *postgresSessionRepository) Update(ctx context.Context, session *domain.SessionSchedule) error {
	return r.db.WithContext(ctx).Save(session).Error
}

// Delete removes a session schedule by primary key.
func (r *postgresSessionRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.SessionSchedule{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
