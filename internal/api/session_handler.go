package api

import (
	"fmt"
	"net/http"
	"time"

	"alcyxob/gym-api/internal/domain"
	"alcyxob/gym-api/internal/service"

	"github.com/gin-gonic/gin"
)

// dateLayout is the wire format for calendar dates.
const dateLayout = "2006-01-02"

// SessionHandler holds the session scheduling service dependency.
type SessionHandler struct {
	sessionService service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// --- DTOs for Session Scheduling ---

type SessionRequest struct {
	SessionName string `json:"sessionName" binding:"required"`
	SessionDate string `json:"sessionDate" binding:"required,datetime=2006-01-02"`
	StartTime   string `json:"startTime" binding:"required,datetime=15:04"`
	EndTime     string `json:"endTime" binding:"required,datetime=15:04"`
	MaxCapacity int    `json:"maxCapacity" binding:"required,gt=0"`
	Description string `json:"description"`
}

type SessionResponse struct {
	ID          uint      `json:"id"`
	TrainerID   uint      `json:"trainerId"`
	SessionName string    `json:"sessionName"`
	SessionDate string    `json:"sessionDate"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	BranchName  string    `json:"branchName,omitempty"`
	MaxCapacity int       `json:"maxCapacity"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// --- Handler Methods ---

// CreateSession godoc
// @Summary Schedule a session (Trainer only)
// @Description Creates a session owned by the calling trainer, stamped with their branch.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param session body SessionRequest true "Session details"
// @Success 201 {object} SessionResponse "Session created successfully"
// @Failure 400 {object} gin.H "Invalid input or trainer has no branch"
// @Failure 403 {object} gin.H "Caller is not a trainer"
// @Security BearerAuth
// @Router /trainers/sessions [post]
func (h *SessionHandler) CreateSession(c *gin.Context) {
	callerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify requesting user")
		return
	}

	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	sessionDate, err := time.Parse(dateLayout, req.SessionDate)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "sessionDate must be in YYYY-MM-DD format")
		return
	}

	session, err := h.sessionService.CreateSession(c.Request.Context(), callerID, domain.SessionSchedule{
		SessionName: req.SessionName,
		SessionDate: sessionDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		MaxCapacity: req.MaxCapacity,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MapSessionToResponse(session))
}

// GetTrainerSessions godoc
// @Summary List own sessions (Trainer only)
// @Description Lists the sessions created by the calling trainer.
// @Tags Sessions
// @Produce json
// @Success 200 {array} SessionResponse
// @Failure 403 {object} gin.H "Caller is not a trainer"
// @Security BearerAuth
// @Router /trainers/sessions [get]
func (h *SessionHandler) GetTrainerSessions(c *gin.Context) {
	callerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify requesting user")
		return
	}

	sessions, err := h.sessionService.GetTrainerSessions(c.Request.Context(), callerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses := make([]SessionResponse, 0, len(sessions))
	for i := range sessions {
		responses = append(responses, MapSessionToResponse(&sessions[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// GetPublicSessions godoc
// @Summary Browse the session schedule
// @Description Lists every scheduled session. Open to any authenticated user.
// @Tags Sessions
// @Produce json
// @Success 200 {array} SessionResponse
// @Security BearerAuth
// @Router /trainers/public-sessions [get]
func (h *SessionHandler) GetPublicSessions(c *gin.Context) {
	callerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify requesting user")
		return
	}

	sessions, err := h.sessionService.GetPublicSessions(c.Request.Context(), callerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses := make([]SessionResponse, 0, len(sessions))
	for i := range sessions {
		responses = append(responses, MapSessionToResponse(&sessions[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// UpdateSession godoc
// @Summary Update a session (owning Trainer only)
// @Description Updates a session the calling trainer owns. Ownership and branch never change.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param sessionId path int true "Session ID"
// @Param session body SessionRequest true "Updated session details"
// @Success 200 {object} SessionResponse
// @Failure 404 {object} gin.H "Session not found or owned by someone else"
// @Security BearerAuth
// @Router /trainers/sessions/{sessionId} [put]
func (h *SessionHandler) UpdateSession(c *gin.Context) {
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

	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	sessionDate, err := time.Parse(dateLayout, req.SessionDate)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "sessionDate must be in YYYY-MM-DD format")
		return
	}

	session, err := h.sessionService.UpdateSession(c.Request.Context(), callerID, sessionID, domain.SessionSchedule{
		SessionName: req.SessionName,
		SessionDate: sessionDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		MaxCapacity: req.MaxCapacity,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapSessionToResponse(session))
}

// DeleteSession godoc
// @Summary Delete a session (owning Trainer only)
// @Description Deletes a session the calling trainer owns.
// @Tags Sessions
// @Produce json
// @Param sessionId path int true "Session ID"
// @Success 200 {object} gin.H "Session deleted"
// @Failure 404 {object} gin.H "Session not found or owned by someone else"
// @Security BearerAuth
// @Router /trainers/sessions/{sessionId} [delete]
func (h *SessionHandler) DeleteSession(c *gin.Context) {
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

	if err := h.sessionService.DeleteSession(c.Request.Context(), callerID, sessionID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session deleted successfully"})
}

// MapSessionToResponse converts a domain SessionSchedule to its DTO.
func MapSessionToResponse(session *domain.SessionSchedule) SessionResponse {
	if session == nil {
		return SessionResponse{}
	}
	return SessionResponse{
		ID:          session.ID,
		TrainerID:   session.TrainerID,
		SessionName: session.SessionName,
		SessionDate: session.SessionDate.Format(dateLayout),
		StartTime:   session.StartTime,
		EndTime:     session.EndTime,
		BranchName:  session.BranchName,
		MaxCapacity: session.MaxCapacity,
		Description: session.Description,
		CreatedAt:   session.CreatedAt,
	}
}
