package postgres

import (
	"context"
	"errors"
	"time"

	"alcyxob/gym-api/internal/domain"
	"alcyxob/gym-api/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// postgresAttendanceRepository implements the repository.AttendanceRepository interface using GORM.
type postgresAttendanceRepository struct {
	db *gorm.DB
}

// NewPostgresAttendanceRepository creates a new instance of postgresAttendanceRepository.
func NewPostgresAttendanceRepository(db *gorm.DB) repository.AttendanceRepository {
	return &postgresAttendanceRepository{db: db}
}

// Upsert inserts the attendance record, or refreshes the status of the row
// already holding the same (session, user, date) triple. The ON CONFLICT
// clause makes the check-then-act atomic, so concurrent bookings of the
// same triple cannot race into duplicates.
func (r *postgresAttendanceRepository) Upsert(ctx context.Context, attendance *domain.SessionAttendance) (*domain.SessionAttendance, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "session_id"}, {Name: "user_id"}, {Name: "attendance_date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"status":     attendance.Status,
				"updated_at": time.Now().UTC(),
			}),
		}).
		Create(attendance).Error
	if err != nil {
		return nil, err
	}

	// Re-read the row so the caller gets the authoritative record whether
	// the statement inserted or updated.
	var saved domain.SessionAttendance
	err = r.db.WithContext(ctx).
		Where("session_id = ? AND user_id = ? AND attendance_date = ?",
			attendance.SessionID, attendance.UserID, attendance.AttendanceDate).
		First(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// GetByID retrieves an attendance record by primary key.
func (r *postgresAttendanceRepository) GetByID(ctx context.Context, id uint) (*domain.SessionAttendance, error) {
	var attendance domain.SessionAttendance
	err := r.db.WithContext(ctx).First(&attendance, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &attendance, nil
}

// ListBySession returns the attendance records for one session, narrowed by
// the optional filter fields.
func (r *postgresAttendanceRepository) ListBySession(ctx context.Context, sessionID uint, filter repository.AttendanceFilter) ([]domain.SessionAttendance, error) {
	query := r.db.WithContext(ctx).Where("session_id = ?", sessionID)
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.AttendanceDate != nil {
		query = query.Where("attendance_date = ?", *filter.AttendanceDate)
	}

	var records []domain.SessionAttendance
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Update persists changes to an attendance record. A subject reassignment
// that collides with an existing (session, user, date) triple surfaces as
// ErrDuplicate.
func (r *postgresAttendanceRepository) Update(ctx context.Context, attendance *domain.SessionAttendance) error {
	err := r.db.WithContext(ctx).Save(attendance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

// Delete removes an attendance record by primary key.
func (r *postgresAttendanceRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.SessionAttendance{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
