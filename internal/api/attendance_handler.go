package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"alcyxob/gym-api/internal/domain"
	"alcyxob/gym-api/internal/repository"
	"alcyxob/gym-api/internal/service"

	"github.com/gin-gonic/gin"
)

// AttendanceHandler holds the attendance tracking service dependency.
type AttendanceHandler struct {
	attendanceService service.AttendanceService
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(attendanceService service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// --- DTOs for Attendance Tracking ---

type MarkAttendanceRequest struct {
	UserID         uint                    `json:"userId" binding:"required"`
	Status         domain.AttendanceStatus `json:"status" binding:"required,oneof=booked attended cancelled"`
	AttendanceDate string                  `json:"attendanceDate" binding:"required,datetime=2006-01-02"`
}

type UpdateAttendanceRequest struct {
	UserID         uint                    `json:"userId"` // Zero keeps the current subject
	Status         domain.AttendanceStatus `json:"status" binding:"required,oneof=booked attended cancelled"`
	AttendanceDate string                  `json:"attendanceDate" binding:"required,datetime=2006-01-02"`
}

type AttendanceResponse struct {
	ID             uint                    `json:"id"`
	SessionID      uint                    `json:"sessionId"`
	UserID         uint                    `json:"userId"`
	Status         domain.AttendanceStatus `json:"status"`
	AttendanceDate string                  `json:"attendanceDate"`
	CreatedAt      time.Time               `json:"createdAt"`
	User           *UserResponse           `json:"user,omitempty"`
}

// --- Handler Methods ---

// MarkAttendance godoc
// @Summary Mark attendance for a session
// @Description Trainers mark any user in their branch against a session they own; everyone else marks themselves. Re-marking the same user and date refreshes the status.
// @Tags Attendance
// @Accept json
// @Produce json
// @Param sessionId path int true "Session ID"
// @Param attendance body MarkAttendanceRequest true "Attendance details"
// @Success 201 {object} AttendanceResponse "Attendance recorded"
// @Failure 403 {object} gin.H "Not the session owner / not your own record"
// @Failure 404 {object} gin.H "Session or subject user not found"
// @Security BearerAuth
// @Router /trainers/sessions/{sessionId}/attendance [post]
func (h *AttendanceHandler) MarkAttendance(c *gin.Context) {
	callerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify requesting user")
		return
	}

	sessionID, err := parseUintParam(c, "sessionId")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	var req MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	attendanceDate, err := time.Parse(dateLayout, req.AttendanceDate)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "attendanceDate must be in YYYY-MM-DD format")
		return
	}

	detail, err := h.attendanceService.MarkAttendance(c.Request.Context(), callerID, sessionID, service.AttendanceInput{
		UserID:         req.UserID,
		Status:         req.Status,
		AttendanceDate: attendanceDate,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MapAttendanceToResponse(detail))
}

// GetSessionAttendance godoc
// @Summary List attendance for a session
// @Description Trainers see every record of a session they own; other callers see only their own. Supports user_id and date query filters.
// @Tags Attendance
// @Produce json
// @Param sessionId path int true "Session ID"
// @Param user_id query int false "Filter by subject user (trainers only)"
// @Param date query string false "Filter by date (YYYY-MM-DD)"
// @Success 200 {array} AttendanceResponse
// @Failure 403 {object} gin.H "Not the session owner"
// @Failure 404 {object} gin.H "Session not found"
// @Security BearerAuth
// @Router /trainers/sessions/{sessionId}/attendance [get]
func (h *AttendanceHandler) GetSessionAttendance(c *gin.Context) {
	callerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify requesting user")
		return
	}

	sessionID, err := parseUintParam(c, "sessionId")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	var filter repository.AttendanceFilter
	if raw := c.Query("user_id"); raw != "" {
		value, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, fmt.Sprintf("invalid user_id: %q", raw))
			return
		}
		userID := uint(value)
		filter.UserID = &userID
	}
	if raw := c.Query("date"); raw != "" {
		date, err := time.Parse(dateLayout, raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "date must be in YYYY-MM-DD format")
			return
		}
		filter.AttendanceDate = &date
	}

	details, err := h.attendanceService.GetSessionAttendance(c.Request.Context(), callerID, sessionID, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses := make([]AttendanceResponse, 0, len(details))
	for i := range details {
		responses = append(responses, MapAttendanceToResponse(&details[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// UpdateAttendance godoc
// @Summary Update an attendance record
// @Description Changes status and date. Trainers may reassign the subject within their branch; members may not.
// @Tags Attendance
// @Accept json
// @Produce json
// @Param attendanceId path int true "Attendance record ID"
// @Param attendance body UpdateAttendanceRequest true "Updated attendance details"
// @Success 200 {object} AttendanceResponse
// @Failure 400 {object} gin.H "New subject/date collides with an existing record"
// @Failure 403 {object} gin.H "Record outside the caller's authority"
// @Failure 404 {object} gin.H "Attendance record not found"
// @Security BearerAuth
// @Router /trainers/sessions/attendance/{attendanceId} [put]
func (h *AttendanceHandler) UpdateAttendance(c *gin.Context) {
	callerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify requesting user")
		return
	}

	attendanceID, err := parseUintParam(c, "attendanceId")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	var req UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	attendanceDate, err := time.Parse(dateLayout, req.AttendanceDate)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "attendanceDate must be in YYYY-MM-DD format")
		return
	}

	detail, err := h.attendanceService.UpdateAttendance(c.Request.Context(), callerID, attendanceID, service.AttendanceInput{
		UserID:         req.UserID,
		Status:         req.Status,
		AttendanceDate: attendanceDate,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapAttendanceToResponse(detail))
}

// DeleteAttendance godoc
// @Summary Delete an attendance record
// @Description Removes a record, gated exactly like update.
// @Tags Attendance
// @Produce json
// @Param attendanceId path int true "Attendance record ID"
// @Success 200 {object} gin.H "Attendance record deleted"
// @Failure 403 {object} gin.H "Record outside the caller's authority"
// @Failure 404 {object} gin.H "Attendance record not found"
// @Security BearerAuth
// @Router /trainers/sessions/attendance/{attendanceId} [delete]
func (h *AttendanceHandler) DeleteAttendance(c *gin.Context) {
	callerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify requesting user")
		return
	}

	attendanceID, err := parseUintParam(c, "attendanceId")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.attendanceService.DeleteAttendance(c.Request.Context(), callerID, attendanceID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Attendance record deleted successfully"})
}

// MapAttendanceToResponse converts an attendance detail to its DTO.
func MapAttendanceToResponse(detail *service.AttendanceDetail) AttendanceResponse {
	if detail == nil {
		return AttendanceResponse{}
	}
	resp := AttendanceResponse{
		ID:             detail.ID,
		SessionID:      detail.SessionID,
		UserID:         detail.UserID,
		Status:         detail.Status,
		AttendanceDate: detail.AttendanceDate.Format(dateLayout),
		CreatedAt:      detail.CreatedAt,
	}
	if detail.User != nil {
		user := MapUserToResponse(detail.User)
		resp.User = &user
	}
	return resp
}
