package service

import (
	"context"
	"errors"
	"fmt"

	"alcyxob/gym-api/internal/domain"
	"alcyxob/gym-api/internal/repository"
)

// --- Error Definitions ---
var (
	ErrSessionNotFound       = fmt.Errorf("session %w", ErrNotFound)
	ErrTrainerBranchRequired = fmt.Errorf("%w: trainer's branch not specified", ErrInvalidState)
)

// --- Service Interface (Optional) ---
type SessionService interface {
	// Trainer operations
	CreateSession(ctx context.Context, callerID uint, input domain.SessionSchedule) (*domain.SessionSchedule, error)
	GetTrainerSessions(ctx context.Context, callerID uint) ([]domain.SessionSchedule, error)
	UpdateSession(ctx context.Context, callerID, sessionID uint, input domain.SessionSchedule) (*domain.SessionSchedule, error)
	DeleteSession(ctx context.Context, callerID, sessionID uint) error

	// Open to any authenticated user
	GetPublicSessions(ctx context.Context, callerID uint) ([]domain.SessionSchedule, error)
}

// --- Service Implementation ---

// sessionService implements the SessionService interface.
type sessionService struct {
	sessionRepo repository.SessionRepository
	resolver    callerResolver
}

// NewSessionService creates a new instance of sessionService.
func NewSessionService(sessionRepo repository.SessionRepository, userRepo repository.UserRepository) SessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		resolver:    callerResolver{users: userRepo},
	}
}

// CreateSession schedules a new session owned by the calling trainer. The
// session is stamped with the trainer's current branch; that snapshot never
// changes afterwards, even if the trainer later moves.
func (s *sessionService) CreateSession(ctx context.Context, callerID uint, input domain.SessionSchedule) (*domain.SessionSchedule, error) {
	// 1. Resolve the caller and check the role
	caller, err := s.resolver.Resolve(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !caller.IsTrainer() {
		return nil, ErrTrainerOnly
	}

	// 2. A session inherits its branch from the trainer, so the trainer
	// must be assigned to one
	if !caller.HasBranch() {
		return nil, ErrTrainerBranchRequired
	}

	// 3. Stamp ownership and branch, then persist
	session := input
	session.ID = 0
	session.TrainerID = caller.ID
	session.BranchName = caller.BranchName

	sessionID, err := s.sessionRepo.Create(ctx, &session)
	if err != nil {
		return nil, err
	}
	session.ID = sessionID
	return &session, nil
}

// GetTrainerSessions lists the sessions created by the calling trainer.
func (s *sessionService) GetTrainerSessions(ctx context.Context, callerID uint) ([]domain.SessionSchedule, error) {
	caller, err := s.resolver.Resolve(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !caller.IsTrainer() {
		return nil, ErrTrainerOnly
	}
	return s.sessionRepo.ListByTrainer(ctx, caller.ID)
}

// GetPublicSessions lists every scheduled session. Any authenticated user
// may browse the schedule regardless of role or branch.
func (s *sessionService) GetPublicSessions(ctx context.Context, callerID uint) ([]domain.SessionSchedule, error) {
	if _, err := s.resolver.Resolve(ctx, callerID); err != nil {
		return nil, err
	}
	return s.sessionRepo.ListAll(ctx)
}

// UpdateSession modifies a session owned by the calling trainer. The lookup
// is scoped to the caller, so a session owned by someone else is reported
// as missing rather than revealing it exists.
func (s *sessionService) UpdateSession(ctx context.Context, callerID, sessionID uint, input domain.SessionSchedule) (*domain.SessionSchedule, error) {
	// 1. Resolve the caller and check the role
	caller, err := s.resolver.Resolve(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !caller.IsTrainer() {
		return nil, ErrTrainerOnly
	}

	// 2. Fetch the session scoped to this trainer
	session, err := s.sessionRepo.GetOwnedByID(ctx, sessionID, caller.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	// 3. Apply the mutable fields. Ownership and the branch snapshot are
	// fixed at creation and never touched here.
	session.SessionName = input.SessionName
	session.SessionDate = input.SessionDate
	session.StartTime = input.StartTime
	session.EndTime = input.EndTime
	session.MaxCapacity = input.MaxCapacity
	session.Description = input.Description

	// 4. Persist
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// DeleteSession removes a session owned by the calling trainer.
func (s *sessionService) DeleteSession(ctx context.Context, callerID, sessionID uint) error {
	// 1. Resolve the caller and check the role
	caller, err := s.resolver.Resolve(ctx, callerID)
	if err != nil {
		return err
	}
	if !caller.IsTrainer() {
		return ErrTrainerOnly
	}

	// 2. Fetch scoped to this trainer before deleting
	session, err := s.sessionRepo.GetOwnedByID(ctx, sessionID, caller.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSessionNotFound
		}
		return err
	}

	// 3. Delete
	if err := s.sessionRepo.Delete(ctx, session.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSessionNotFound
		}
		return err
	}
	return nil
}
