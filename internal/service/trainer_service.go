package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"alcyxob/gym-api/internal/domain"
	"alcyxob/gym-api/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrTrainerNotFound       = fmt.Errorf("trainer %w", ErrNotFound)
	ErrTrainerEmailExists    = fmt.Errorf("%w: trainer with this email already exists", ErrInvalidState)
	ErrAdminBranchRequired   = fmt.Errorf("%w: admin's branch not specified", ErrInvalidState)
	ErrTrainerBranchMismatch = fmt.Errorf("%w: trainer belongs to another branch", ErrForbidden)
)

// TrainerInput carries the caller-supplied trainer fields. On update, an
// empty Password keeps the stored hash.
type TrainerInput struct {
	Name           string
	Specialization []string
	Rating         float64
	Experience     int
	Phone          string
	Email          string
	Password       string
	Availability   string
	BranchName     string
}

// --- Service Interface (Optional) ---
type TrainerService interface {
	AddTrainer(ctx context.Context, callerID uint, input TrainerInput) (*domain.Trainer, error)
	GetTrainers(ctx context.Context, callerID uint) ([]domain.Trainer, error)
	GetTrainerByID(ctx context.Context, callerID, trainerID uint) (*domain.Trainer, error)
	UpdateTrainer(ctx context.Context, callerID, trainerID uint, input TrainerInput) (*domain.Trainer, error)
	DeleteTrainer(ctx context.Context, callerID, trainerID uint) error
}

// --- Service Implementation ---

// trainerService implements the TrainerService interface.
type trainerService struct {
	trainerRepo repository.TrainerRepository
	resolver    callerResolver
}

// NewTrainerService creates a new instance of trainerService.
func NewTrainerService(trainerRepo repository.TrainerRepository, userRepo repository.UserRepository) TrainerService {
	return &trainerService{
		trainerRepo: trainerRepo,
		resolver:    callerResolver{users: userRepo},
	}
}

// AddTrainer registers a new trainer profile together with its login
// account. Admins hire into their own branch; superadmins may name any
// branch in the payload.
func (s *trainerService) AddTrainer(ctx context.Context, callerID uint, input TrainerInput) (*domain.Trainer, error) {
	// 1. Resolve the caller and check the role
	caller, err := s.resolver.Resolve(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdminOrSuperadmin() {
		return nil, ErrAdminOnly
	}

	// 2. Check if a trainer with this email already exists
	_, err = s.trainerRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, ErrTrainerEmailExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err // Propagate unexpected repository errors
	}

	// 3. Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	// 4. Admins hire into their own branch, superadmins pick one
	branch := input.BranchName
	if caller.IsAdmin() {
		branch = caller.BranchName
	}

	// 5. Build the profile and the matching login account
	trainer := &domain.Trainer{
		Name:           input.Name,
		Specialization: strings.Join(input.Specialization, ","),
		Rating:         input.Rating,
		Experience:     input.Experience,
		Phone:          input.Phone,
		Email:          input.Email,
		PasswordHash:   string(hashedPassword),
		Availability:   input.Availability,
		BranchName:     branch,
	}
	account := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Role:         domain.RoleTrainer,
		BranchName:   branch,
	}

	// 6. Persist both rows atomically
	trainerID, err := s.trainerRepo.Create(ctx, trainer, account)
	if err != nil {
		// The unique index catches a concurrent insert with the same email
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrTrainerEmailExists
		}
		return nil, err
	}
	trainer.ID = trainerID

	trainer.PasswordHash = ""
	return trainer, nil
}

// GetTrainers lists trainer profiles scoped by the caller's role. Admins
// see their own branch and must have one; superadmins see everything;
// everyone else sees their branch when assigned to one, otherwise all.
func (s *trainerService) GetTrainers(ctx context.Context, callerID uint) ([]domain.Trainer, error) {
	caller, err := s.resolver.Resolve(ctx, callerID)
	if err != nil {
		return nil, err
	}

	var trainers []domain.Trainer
	switch {
	case caller.IsSuperadmin():
		trainers, err = s.trainerRepo.ListAll(ctx)
	case caller.IsAdmin():
		if !caller.HasBranch() {
			return nil, ErrAdminBranchRequired
		}
		trainers, err = s.trainerRepo.ListByBranch(ctx, caller.BranchName)
	default:
		if caller.HasBranch() {
			trainers, err = s.trainerRepo.ListByBranch(ctx, caller.BranchName)
		} else {
			trainers, err = s.trainerRepo.ListAll(ctx)
		}
	}
	if err != nil {
		return nil, err
	}

	// Clear password hashes before returning
	for i := range trainers {
		trainers[i].PasswordHash = ""
	}
	return trainers, nil
}

// GetTrainerByID fetches a single trainer profile. Any authenticated user
// may look one up, with no branch scoping.
func (s *trainerService) GetTrainerByID(ctx context.Context, callerID, trainerID uint) (*domain.Trainer, error) {
	if _, err := s.resolver.Resolve(ctx, callerID); err != nil {
		return nil, err
	}

	trainer, err := s.trainerRepo.GetByID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}

	trainer.PasswordHash = ""
	return trainer, nil
}

// UpdateTrainer modifies a trainer profile and keeps the login account in
// sync. Admins may only touch trainers in their own branch and cannot move
// them to another one; superadmins are unrestricted.
func (s *trainerService) UpdateTrainer(ctx context.Context, callerID, trainerID uint, input TrainerInput) (*domain.Trainer, error) {
	// 1. Resolve the caller and check the role
	caller, err := s.resolver.Resolve(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdminOrSuperadmin() {
		return nil, ErrAdminOnly
	}
	if caller.IsAdmin() && !caller.HasBranch() {
		return nil, ErrAdminBranchRequired
	}

	// 2. Fetch the target and enforce branch scope for admins
	trainer, err := s.trainerRepo.GetByID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	if caller.IsAdmin() && trainer.BranchName != caller.BranchName {
		return nil, ErrTrainerBranchMismatch
	}

	// 3. Apply the mutable fields
	trainer.Name = input.Name
	trainer.Specialization = strings.Join(input.Specialization, ",")
	trainer.Rating = input.Rating
	trainer.Experience = input.Experience
	trainer.Phone = input.Phone
	trainer.Email = input.Email
	trainer.Availability = input.Availability
	if input.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrHashingFailed
		}
		trainer.PasswordHash = string(hashedPassword)
	}
	// Only superadmins may move a trainer across branches
	if caller.IsSuperadmin() {
		trainer.BranchName = input.BranchName
	}

	// 4. Persist; the repository syncs the login account in the same
	// transaction
	if err := s.trainerRepo.Update(ctx, trainer); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrTrainerEmailExists
		}
		return nil, err
	}

	trainer.PasswordHash = ""
	return trainer, nil
}

// DeleteTrainer removes a trainer profile and its login account, gated
// exactly like UpdateTrainer.
func (s *trainerService) DeleteTrainer(ctx context.Context, callerID, trainerID uint) error {
	// 1. Resolve the caller and check the role
	caller, err := s.resolver.Resolve(ctx, callerID)
	if err != nil {
		return err
	}
	if !caller.IsAdminOrSuperadmin() {
		return ErrAdminOnly
	}
	if caller.IsAdmin() && !caller.HasBranch() {
		return ErrAdminBranchRequired
	}

	// 2. Fetch the target and enforce branch scope for admins
	trainer, err := s.trainerRepo.GetByID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTrainerNotFound
		}
		return err
	}
	if caller.IsAdmin() && trainer.BranchName != caller.BranchName {
		return ErrTrainerBranchMismatch
	}

	// 3. Delete profile and account together
	if err := s.trainerRepo.Delete(ctx, trainer.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTrainerNotFound
		}
		return err
	}
	return nil
}
