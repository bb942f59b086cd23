// internal/domain/attendance.go
package domain

import "time"

// AttendanceStatus tracks the lifecycle of a booking.
type AttendanceStatus string

const (
	AttendanceBooked    AttendanceStatus = "booked"
	AttendanceAttended  AttendanceStatus = "attended"
	AttendanceCancelled AttendanceStatus = "cancelled"
)

// SessionAttendance records one user's booking for one session on one
// date. The (session, user, date) triple is unique; booking the same
// triple again updates the status of the existing row in place.
type SessionAttendance struct {
	ID             uint             `gorm:"primaryKey" json:"id"`
	SessionID      uint             `gorm:"uniqueIndex:idx_session_user_date" json:"sessionId"`
	UserID         uint             `gorm:"uniqueIndex:idx_session_user_date" json:"userId"`
	AttendanceDate time.Time        `gorm:"type:date;uniqueIndex:idx_session_user_date" json:"attendanceDate"`
	Status         AttendanceStatus `gorm:"size:20" json:"status"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}
