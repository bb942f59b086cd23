package postgres

import (
	"context"
	"errors" // Import the standard errors package

	"alcyxob/gym-api/internal/domain"
	"alcyxob/gym-api/internal/repository" // Import the repository interfaces package

	"gorm.io/gorm"
)

// postgresUserRepository implements the repository.UserRepository interface using GORM.
type postgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new instance of postgresUserRepository.
// It expects a connected *gorm.DB instance.
func NewPostgresUserRepository(db *gorm.DB) repository.UserRepository {
	return &postgresUserRepository{db: db}
}

// Create inserts a new user account into the database.
func (r *postgresUserRepository) Create(ctx context.Context, user *domain.User) (uint, error) {
	// Essential fields must be set (richer validation belongs in the service layer)
	if user.Email == "" || user.PasswordHash == "" || user.Role == "" {
		return 0, errors.New("user email, password hash, and role are required")
	}

	err := r.db.WithContext(ctx).Create(user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, repository.ErrDuplicate
		}
		return 0, err
	}
	return user.ID, nil
}

// GetByEmail retrieves a user account by email address.
func (r *postgresUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user account by primary key.
func (r *postgresUserRepository) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByIDInBranch retrieves a user account only if it belongs to the given
// branch. A user outside the branch is indistinguishable from a missing one.
func (r *postgresUserRepository) GetByIDInBranch(ctx context.Context, id uint, branchName string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).
		Where("id = ? AND branch_name = ?", id, branchName).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
