package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"alcyxob/gym-api/internal/domain"
	"alcyxob/gym-api/internal/repository"
)

// --- Error Definitions ---
var (
	ErrDietPlanNotFound     = fmt.Errorf("diet plan %w for this trainer in this branch", ErrNotFound)
	ErrExercisePlanNotFound = fmt.Errorf("exercise plan %w for this trainer in this branch", ErrNotFound)
	ErrPlanSubjectImmutable = fmt.Errorf("%w: the plan user cannot be changed after assignment", ErrInvalidState)
)

// PlanInput carries the caller-supplied plan fields. On update, a zero
// UserID means the subject stays unchanged.
type PlanInput struct {
	UserID      uint
	Title       string
	Description string
	ExpiryDate  *time.Time
}

// DietPlanDetail is a diet plan together with its subject user and the
// assigning trainer. Either actor is nil when the row no longer exists.
type DietPlanDetail struct {
	domain.DietPlan
	User       *domain.User
	AssignedBy *domain.Trainer
}

// ExercisePlanDetail is the exercise plan counterpart of DietPlanDetail.
type ExercisePlanDetail struct {
	domain.ExercisePlan
	User       *domain.User
	AssignedBy *domain.Trainer
}

// --- Service Interface (Optional) ---
type PlanService interface {
	// Diet plans
	CreateDietPlan(ctx context.Context, callerID uint, input PlanInput) (*DietPlanDetail, error)
	GetDietPlans(ctx context.Context, callerID uint, filter repository.PlanFilter) ([]DietPlanDetail, error)
	UpdateDietPlan(ctx context.Context, callerID, planID uint, input PlanInput) (*DietPlanDetail, error)
	DeleteDietPlan(ctx context.Context, callerID, planID uint) error

	// Exercise plans
	CreateExercisePlan(ctx context.Context, callerID uint, input PlanInput) (*ExercisePlanDetail, error)
	GetExercisePlans(ctx context.Context, callerID uint, filter repository.PlanFilter) ([]ExercisePlanDetail, error)
	UpdateExercisePlan(ctx context.Context, callerID, planID uint, input PlanInput) (*ExercisePlanDetail, error)
	DeleteExercisePlan(ctx context.Context, callerID, planID uint) error
}

// --- Service Implementation ---

// planService implements the PlanService interface.
type planService struct {
	dietRepo     repository.DietPlanRepository
	exerciseRepo repository.ExercisePlanRepository
	trainerRepo  repository.TrainerRepository
	userRepo     repository.UserRepository
	resolver     callerResolver
}

// NewPlanService creates a new instance of planService.
func NewPlanService(
	dietRepo repository.DietPlanRepository,
	exerciseRepo repository.ExercisePlanRepository,
	trainerRepo repository.TrainerRepository,
	userRepo repository.UserRepository,
) PlanService {
	return &planService{
		dietRepo:     dietRepo,
		exerciseRepo: exerciseRepo,
		trainerRepo:  trainerRepo,
		userRepo:     userRepo,
		resolver:     callerResolver{users: userRepo},
	}
}

// assignedToday returns today's date with the time component dropped, the
// value stamped on every newly assigned plan.
func assignedToday() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

// planActors fetches the subject user and assigning trainer for a plan
// response. A missing row yields nil for that actor; only unexpected
// repository failures are returned as errors.
func (s *planService) planActors(ctx context.Context, userID, trainerID uint) (*domain.User, *domain.Trainer, error) {
	var user *domain.User
	u, err := s.userRepo.GetByID(ctx, userID)
	if err == nil {
		u.PasswordHash = ""
		user = u
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, nil, err
	}

	assignedBy, err := s.lookupAssignedBy(ctx, trainerID)
	if err != nil {
		return nil, nil, err
	}

	return user, assignedBy, nil
}

// lookupAssignedBy fetches the assigning trainer's profile. A plan outlives
// a hard-deleted trainer, so a missing row is served as nil (rendered as a
// placeholder at the API layer) and logged rather than failing the read.
func (s *planService) lookupAssignedBy(ctx context.Context, trainerID uint) (*domain.Trainer, error) {
	t, err := s.trainerRepo.GetByID(ctx, trainerID)
	if err == nil {
		t.PasswordHash = ""
		return t, nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		log.Printf("WARN: Trainer %d has assigned plans but no profile row, serving placeholder", trainerID)
		return nil, nil
	}
	return nil, err
}

// preparePlanDetails authorizes the calling trainer and builds the common
// plan fields shared by diet and exercise plan creation.
func (s *planService) preparePlanDetails(ctx context.Context, callerID uint, input PlanInput) (domain.PlanDetails, error) {
	// 1. Resolve the caller and check the role
	caller, err := s.resolver.Resolve(ctx, callerID)
	if err != nil {
		return domain.PlanDetails{}, err
	}
	if !caller.IsTrainer() {
		return domain.PlanDetails{}, ErrTrainerOnly
	}

	// 2. The subject user must exist in the trainer's branch
	if _, err := s.userRepo.GetByIDInBranch(ctx, input.UserID, caller.BranchName); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.PlanDetails{}, ErrUserNotInBranch
		}
		return domain.PlanDetails{}, err
	}

	// 3. Stamp ownership, branch and the assignment date
	return domain.PlanDetails{
		UserID:              input.UserID,
		AssignedByTrainerID: caller.ID,
		Title:               input.Title,
		Description:         input.Description,
		AssignedDate:        assignedToday(),
		ExpiryDate:          input.ExpiryDate,
		BranchName:          caller.BranchName,
	}, nil
}

// === Diet Plans ===

// CreateDietPlan assigns a new diet plan to a user in the trainer's branch.
func (s *planService) CreateDietPlan(ctx context.Context, callerID uint, input PlanInput) (*DietPlanDetail, error) {
	details, err := s.preparePlanDetails(ctx, callerID, input)
	if err != nil {
		return nil, err
	}

	plan := &domain.DietPlan{PlanDetails: details}
	planID, err := s.dietRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	plan.ID = planID

	user, assignedBy, err := s.planActors(ctx, plan.UserID, plan.AssignedByTrainerID)
	if err != nil {
		return nil, err
	}
	return &DietPlanDetail{DietPlan: *plan, User: user, AssignedBy: assignedBy}, nil
}

// GetDietPlans lists the diet plans the calling trainer assigned in their
// current branch, optionally narrowed to one subject user.
func (s *planService) GetDietPlans(ctx context.Context, callerID uint, filter repository.PlanFilter) ([]DietPlanDetail, error) {
	caller, err := s.resolver.Resolve(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !caller.IsTrainer() {
		return nil, ErrTrainerOnly
	}

	plans, err := s.dietRepo.ListByTrainer(ctx, caller.ID, caller.BranchName, filter)
	if err != nil {
		return nil, err
	}

	// All listed plans were assigned by the caller, so resolve the trainer
	// profile once
	var assignedBy *domain.Trainer
	if len(plans) > 0 {
		if assignedBy, err = s.lookupAssignedBy(ctx, caller.ID); err != nil {
			return nil, err
		}
	}

	details := make([]DietPlanDetail, 0, len(plans))
	for _, plan := range plans {
		detail := DietPlanDetail{DietPlan: plan, AssignedBy: assignedBy}
		if user, err := s.userRepo.GetByID(ctx, plan.UserID); err == nil {
			user.PasswordHash = ""
			detail.User = user
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, nil
}

// UpdateDietPlan modifies a diet plan owned by the calling trainer in their
// current branch. The subject user is fixed at assignment time.
func (s *planService) UpdateDietPlan(ctx context.Context, callerID, planID uint, input PlanInput) (*DietPlanDetail, error) {
	// 1. Resolve the caller and check the role
	caller, err := s.resolver.Resolve(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !caller.IsTrainer() {
		return nil, ErrTrainerOnly
	}

	// 2. Fetch scoped to this trainer and branch
	plan, err := s.dietRepo.GetOwnedByID(ctx, planID, caller.ID, caller.BranchName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDietPlanNotFound
		}
		return nil, err
	}

	// 3. The subject cannot be reassigned after creation
	if err := immutableField(plan.UserID, input.UserID, ErrPlanSubjectImmutable); err != nil {
		return nil, err
	}

	// 4. Apply the mutable fields and persist
	plan.Title = input.Title
	plan.Description = input.Description
	plan.ExpiryDate = input.ExpiryDate
	if err := s.dietRepo.Update(ctx, plan); err != nil {
		return nil, err
	}

	user, assignedBy, err := s.planActors(ctx, plan.UserID, plan.AssignedByTrainerID)
	if err != nil {
		return nil, err
	}
	return &DietPlanDetail{DietPlan: *plan, User: user, AssignedBy: assignedBy}, nil
}

// DeleteDietPlan removes a diet plan owned by the calling trainer in their
// current branch.
func (s *planService) DeleteDietPlan(ctx context.Context, callerID, planID uint) error {
	caller, err := s.resolver.Resolve(ctx, callerID)
	if err != nil {
		return err
	}
	if !caller.IsTrainer() {
		return ErrTrainerOnly
	}

	plan, err := s.dietRepo.GetOwnedByID(ctx, planID, caller.ID, caller.BranchName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDietPlanNotFound
		}
		return err
	}

	if err := s.dietRepo.Delete(ctx, plan.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDietPlanNotFound
		}
		return err
	}
	return nil
}

// === Exercise Plans ===

// CreateExercisePlan assigns a new exercise plan to a user in the trainer's
// branch.
func (s *planService) CreateExercisePlan(ctx context.Context, callerID uint, input PlanInput) (*ExercisePlanDetail, error) {
	details, err := s.preparePlanDetails(ctx, callerID, input)
	if err != nil {
		return nil, err
	}

	plan := &domain.ExercisePlan{PlanDetails: details}
	planID, err := s.exerciseRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	plan.ID = planID

	user, assignedBy, err := s.planActors(ctx, plan.UserID, plan.AssignedByTrainerID)
	if err != nil {
		return nil, err
	}
	return &ExercisePlanDetail{ExercisePlan: *plan, User: user, AssignedBy: assignedBy}, nil
}

// GetExercisePlans lists the exercise plans the calling trainer assigned in
// their current branch, optionally narrowed to one subject user.
func (s *planService) GetExercisePlans(ctx context.Context, callerID uint, filter repository.PlanFilter) ([]ExercisePlanDetail, error) {
	caller, err := s.resolver.Resolve(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !caller.IsTrainer() {
		return nil, ErrTrainerOnly
	}

	plans, err := s.exerciseRepo.ListByTrainer(ctx, caller.ID, caller.BranchName, filter)
	if err != nil {
		return nil, err
	}

	var assignedBy *domain.Trainer
	if len(plans) > 0 {
		if assignedBy, err = s.lookupAssignedBy(ctx, caller.ID); err != nil {
			return nil, err
		}
	}

	details := make([]ExercisePlanDetail, 0, len(plans))
	for _, plan := range plans {
		detail := ExercisePlanDetail{ExercisePlan: plan, AssignedBy: assignedBy}
		if user, err := s.userRepo.GetByID(ctx, plan.UserID); err == nil {
			user.PasswordHash = ""
			detail.User = user
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, nil
}

// UpdateExercisePlan modifies an exercise plan owned by the calling trainer
// in their current branch. The subject user is fixed at assignment time.
func (s *planService) UpdateExercisePlan(ctx context.Context, callerID, planID uint, input PlanInput) (*ExercisePlanDetail, error) {
	// 1. Resolve the caller and check the role
	caller, err := s.resolver.Resolve(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !caller.IsTrainer() {
		return nil, ErrTrainerOnly
	}

	// 2. Fetch scoped to this trainer and branch
	plan, err := s.exerciseRepo.GetOwnedByID(ctx, planID, caller.ID, caller.BranchName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExercisePlanNotFound
		}
		return nil, err
	}

	// 3. The subject cannot be reassigned after creation
	if err := immutableField(plan.UserID, input.UserID, ErrPlanSubjectImmutable); err != nil {
		return nil, err
	}

	// 4. Apply the mutable fields and persist
	plan.Title = input.Title
	plan.Description = input.Description
	plan.ExpiryDate = input.ExpiryDate
	if err := s.exerciseRepo.Update(ctx, plan); err != nil {
		return nil, err
	}

	user, assignedBy, err := s.planActors(ctx, plan.UserID, plan.AssignedByTrainerID)
	if err != nil {
		return nil, err
	}
	return &ExercisePlanDetail{ExercisePlan: *plan, User: user, AssignedBy: assignedBy}, nil
}

// DeleteExercisePlan removes an exercise plan owned by the calling trainer
// in their current branch.
func (s *planService) DeleteExercisePlan(ctx context.Context, callerID, planID uint) error {
	caller, err := s.resolver.Resolve(ctx, callerID)
	if err != nil {
		return err
	}
	if !caller.IsTrainer() {
		return ErrTrainerOnly
	}

	plan, err := s.exerciseRepo.GetOwnedByID(ctx, planID, caller.ID, caller.BranchName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExercisePlanNotFound
		}
		return err
	}

	if err := s.exerciseRepo.Delete(ctx, plan.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExercisePlanNotFound
		}
		return err
	}
	return nil
}
