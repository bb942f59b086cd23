package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alcyxob/gym-api/internal/domain"
	"alcyxob/gym-api/internal/repository"
)

// --- Error Definitions ---
var (
	ErrAttendanceNotFound      = fmt.Errorf("attendance record %w", ErrNotFound)
	ErrNotSessionOwner         = fmt.Errorf("%w: session not created by this trainer or outside their branch", ErrForbidden)
	ErrAttendanceNotOwned      = fmt.Errorf("%w: attendance belongs to a session you do not own", ErrForbidden)
	ErrAttendanceSelfOnly      = fmt.Errorf("%w: you can only manage your own attendance records", ErrForbidden)
	ErrAttendanceSubjectLocked = fmt.Errorf("%w: the attendance user cannot be changed", ErrForbidden)
	ErrAttendanceConflict      = fmt.Errorf("%w: attendance already recorded for this user, session and date", ErrInvalidState)
	ErrUserNotFound            = fmt.Errorf("user %w", ErrNotFound)
	ErrUserNotInBranch         = fmt.Errorf("user %w in this branch", ErrNotFound)
)

// AttendanceInput carries the caller-supplied attendance fields.
type AttendanceInput struct {
	UserID         uint
	Status         domain.AttendanceStatus
	AttendanceDate time.Time
}

// AttendanceDetail is an attendance record together with the subject user,
// as served by the API. User is nil when the account no longer exists.
type AttendanceDetail struct {
	domain.SessionAttendance
	User *domain.User
}

// --- Service Interface (Optional) ---
type AttendanceService interface {
	MarkAttendance(ctx context.Context, callerID, sessionID uint, input AttendanceInput) (*AttendanceDetail, error)
	GetSessionAttendance(ctx context.Context, callerID, sessionID uint, filter repository.AttendanceFilter) ([]AttendanceDetail, error)
	UpdateAttendance(ctx context.Context, callerID, attendanceID uint, input AttendanceInput) (*AttendanceDetail, error)
	DeleteAttendance(ctx context.Context, callerID, attendanceID uint) error
}

// --- Service Implementation ---

// attendanceService implements the AttendanceService interface.
type attendanceService struct {
	attendanceRepo repository.AttendanceRepository
	sessionRepo    repository.SessionRepository
	userRepo       repository.UserRepository
	resolver       callerResolver
}

// NewAttendanceService creates a new instance of attendanceService.
func NewAttendanceService(
	attendanceRepo repository.AttendanceRepository,
	sessionRepo repository.SessionRepository,
	userRepo repository.UserRepository,
) AttendanceService {
	return &attendanceService{
		attendanceRepo: attendanceRepo,
		sessionRepo:    sessionRepo,
		userRepo:       userRepo,
		resolver:       callerResolver{users: userRepo},
	}
}

// MarkAttendance records attendance for a session. Trainers may mark any
// user in their own branch against a session they own; everyone else may
// only mark themselves. Marking the same (session, user, date) again
// refreshes the status of the existing record instead of duplicating it.
func (s *attendanceService) MarkAttendance(ctx context.Context, callerID, sessionID uint, input AttendanceInput) (*AttendanceDetail, error) {
	// 1. Resolve the caller
	caller, err := s.resolver.Resolve(ctx, callerID)
	if err != nil {
		return nil, err
	}

	// 2. The session must exist regardless of role
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	// 3. Authorize and resolve the subject user
	var subject *domain.User
	if caller.IsTrainer() {
		// Trainers act only on sessions they own, in their own branch
		if session.TrainerID != caller.ID || session.BranchName != caller.BranchName {
			return nil, ErrNotSessionOwner
		}
		subject, err = s.userRepo.GetByIDInBranch(ctx, input.UserID, caller.BranchName)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrUserNotInBranch
			}
			return nil, err
		}
	} else {
		// Members (and everyone else) can only mark themselves
		if input.UserID != caller.ID {
			return nil, ErrAttendanceSelfOnly
		}
		subject, err = s.userRepo.GetByID(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
	}

	// 4. Upsert on the (session, user, date) triple
	record := &domain.SessionAttendance{
		SessionID:      session.ID,
		UserID:         subject.ID,
		Status:         input.Status,
		AttendanceDate: input.AttendanceDate,
	}
	saved, err := s.attendanceRepo.Upsert(ctx, record)
	if err != nil {
		return nil, err
	}

	// 5. Assemble the response
	subject.PasswordHash = ""
	return &AttendanceDetail{SessionAttendance: *saved, User: subject}, nil
}

// GetSessionAttendance lists attendance for one session. Trainers see every
// record of a session they own; other callers see only their own records.
func (s *attendanceService) GetSessionAttendance(ctx context.Context, callerID, sessionID uint, filter repository.AttendanceFilter) ([]AttendanceDetail, error) {
	// 1. Resolve the caller
	caller, err := s.resolver.Resolve(ctx, callerID)
	if err != nil {
		return nil, err
	}

	// 2. The session must exist regardless of role
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	// 3. Scope the listing by role
	if caller.IsTrainer() {
		if session.TrainerID != caller.ID || session.BranchName != caller.BranchName {
			return nil, ErrNotSessionOwner
		}
	} else {
		// Non-trainers are pinned to their own records; the date filter
		// still applies
		filter.UserID = &caller.ID
	}

	// 4. Fetch and assemble
	records, err := s.attendanceRepo.ListBySession(ctx, session.ID, filter)
	if err != nil {
		return nil, err
	}

	details := make([]AttendanceDetail, 0, len(records))
	for _, record := range records {
		detail := AttendanceDetail{SessionAttendance: record}
		user, err := s.userRepo.GetByID(ctx, record.UserID)
		if err == nil {
			user.PasswordHash = ""
			detail.User = user
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, nil
}

// UpdateAttendance changes the status and date of an existing record.
// Trainers may also reassign the record to another user in their branch;
// members may only touch their own records and never reassign them.
func (s *attendanceService) UpdateAttendance(ctx context.Context, callerID, attendanceID uint, input AttendanceInput) (*AttendanceDetail, error) {
	// 1. Resolve the caller and fetch the record
	caller, err := s.resolver.Resolve(ctx, callerID)
	if err != nil {
		return nil, err
	}
	record, err := s.attendanceRepo.GetByID(ctx, attendanceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAttendanceNotFound
		}
		return nil, err
	}

	// 2. Authorize against the owning session (trainer) or the record
	// subject (member), and apply any reassignment
	if caller.IsTrainer() {
		session, err := s.sessionRepo.GetOwnedByID(ctx, record.SessionID, caller.ID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrAttendanceNotOwned
			}
			return nil, err
		}
		if session.BranchName != caller.BranchName {
			return nil, ErrAttendanceNotOwned
		}
		if input.UserID != 0 && input.UserID != record.UserID {
			// Reassignment target must be in the trainer's branch
			if _, err := s.userRepo.GetByIDInBranch(ctx, input.UserID, caller.BranchName); err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return nil, ErrUserNotInBranch
				}
				return nil, err
			}
			record.UserID = input.UserID
		}
	} else {
		if record.UserID != caller.ID {
			return nil, ErrAttendanceSelfOnly
		}
		if input.UserID != 0 && input.UserID != record.UserID {
			return nil, ErrAttendanceSubjectLocked
		}
	}

	// 3. Apply the mutable fields and persist
	record.Status = input.Status
	record.AttendanceDate = input.AttendanceDate
	if err := s.attendanceRepo.Update(ctx, record); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// The new (session, user, date) triple collides with another record
			return nil, ErrAttendanceConflict
		}
		return nil, err
	}

	// 4. Assemble the response
	detail := &AttendanceDetail{SessionAttendance: *record}
	if user, err := s.userRepo.GetByID(ctx, record.UserID); err == nil {
		user.PasswordHash = ""
		detail.User = user
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return detail, nil
}

// DeleteAttendance removes a record, gated exactly like UpdateAttendance.
func (s *attendanceService) DeleteAttendance(ctx context.Context, callerID, attendanceID uint) error {
	// 1. Resolve the caller and fetch the record
	caller, err := s.resolver.Resolve(ctx, callerID)
	if err != nil {
		return err
	}
	record, err := s.attendanceRepo.GetByID(ctx, attendanceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAttendanceNotFound
		}
		return err
	}

	// 2. Same gating as update
	if caller.IsTrainer() {
		session, err := s.sessionRepo.GetOwnedByID(ctx, record.SessionID, caller.ID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrAttendanceNotOwned
			}
			return err
		}
		if session.BranchName != caller.BranchName {
			return ErrAttendanceNotOwned
		}
	} else {
		if record.UserID != caller.ID {
			return ErrAttendanceSelfOnly
		}
	}

	// 3. Delete
	if err := s.attendanceRepo.Delete(ctx, record.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAttendanceNotFound
		}
		return err
	}
	return nil
}
