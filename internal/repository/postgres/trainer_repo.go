package postgres

import (
	"context"
	"errors"

	"alcyxob/gym-api/internal/domain"
	"alcyxob/gym-api/internal/repository"

	"gorm.io/gorm"
)

// postgresTrainerRepository implements the repository.TrainerRepository interface using GORM.
type postgresTrainerRepository struct {
	db *gorm.DB
}

// NewPostgresTrainerRepository creates a new instance of postgresTrainerRepository.
func NewPostgresTrainerRepository(db *gorm.DB) repository.TrainerRepository {
	return &postgresTrainerRepository{db: db}
}

// Create inserts the trainer profile together with its login account in a
// single transaction. The profile adopts the account's generated ID so both
// rows stay keyed by the same id.
func (r *postgresTrainerRepository) Create(ctx context.Context, trainer *domain.Trainer, account *domain.User) (uint, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(account).Error; err != nil {
			return err
		}
		trainer.ID = account.ID
		return tx.Create(trainer).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, repository.ErrDuplicate
		}
		return 0, err
	}
	return trainer.ID, nil
}

// GetByID retrieves a trainer profile by primary key.
func (r *postgresTrainerRepository) GetByID(ctx context.Context, id uint) (*domain.Trainer, error) {
	var trainer domain.Trainer
	err := r.db.WithContext(ctx).First(&trainer, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &trainer, nil
}

// GetByEmail retrieves a trainer profile by email address.
func (r *postgresTrainerRepository) GetByEmail(ctx context.Context, email string) (*domain.Trainer, error) {
	var trainer domain.Trainer
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&trainer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &trainer, nil
}

// ListAll returns every trainer profile.
func (r *postgresTrainerRepository) ListAll(ctx context.Context) ([]domain.Trainer, error) {
	var trainers []domain.Trainer
	if err := r.db.WithContext(ctx).Find(&trainers).Error; err != nil {
		return nil, err
	}
	return trainers, nil
}

// ListByBranch returns the trainer profiles assigned to one branch.
func (r *postgresTrainerRepository) ListByBranch(ctx context.Context, branchName string) ([]domain.Trainer, error) {
	var trainers []domain.Trainer
	err := r.db.WithContext(ctx).
		Where("branch_name = ?", branchName).
		Find(&trainers).Error
	if err != nil {
		return nil, err
	}
	return trainers, nil
}

// Update persists profile changes and keeps the login account row in sync.
// Profiles that predate account provisioning have no matching users row;
// those are tolerated rather than treated as an error.
func (r *postgresTrainerRepository) Update(ctx context.Context, trainer *domain.Trainer) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(trainer).Error; err != nil {
			return err
		}
		// The role guard keeps an unrelated account that happens to share
		// the id from being overwritten.
		return tx.Model(&domain.User{}).
			Where("id = ? AND role = ?", trainer.ID, domain.RoleTrainer).
			Updates(map[string]interface{}{
				"name":          trainer.Name,
				"email":         trainer.Email,
				"password_hash": trainer.PasswordHash,
				"branch_name":   trainer.BranchName,
			}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

// Delete removes the trainer profile and its login account. Sessions and
// plans assigned by the trainer are left in place.
func (r *postgresTrainerRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&domain.Trainer{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return repository.ErrNotFound
		}
		return tx.Where("id = ? AND role = ?", id, domain.RoleTrainer).
			Delete(&domain.User{}).Error
	})
}
