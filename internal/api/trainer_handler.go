// internal/api/trainer_handler.go
package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"alcyxob/gym-api/internal/domain"
	"alcyxob/gym-api/internal/service"

	"github.com/gin-gonic/gin"
)

// TrainerHandler holds the trainer management service dependency.
type TrainerHandler struct {
	trainerService service.TrainerService
}

// NewTrainerHandler creates a new TrainerHandler.
func NewTrainerHandler(trainerService service.TrainerService) *TrainerHandler {
	return &TrainerHandler{trainerService: trainerService}
}

// --- DTOs for Trainer Management ---

type AddTrainerRequest struct {
	Name           string   `json:"name" binding:"required"`
	Specialization []string `json:"specialization"`
	Rating         float64  `json:"rating" binding:"gte=0,lte=5"`
	Experience     int      `json:"experience" binding:"gte=0"` // Years
	Phone          string   `json:"phone"`
	Email          string   `json:"email" binding:"required,email"`
	Password       string   `json:"password" binding:"required,min=8"`
	Availability   string   `json:"availability"`
	BranchName     string   `json:"branchName"` // Ignored for admins, who hire into their own branch
}

type UpdateTrainerRequest struct {
	Name           string   `json:"name" binding:"required"`
	Specialization []string `json:"specialization"`
	Rating         float64  `json:"rating" binding:"gte=0,lte=5"`
	Experience     int      `json:"experience" binding:"gte=0"`
	Phone          string   `json:"phone"`
	Email          string   `json:"email" binding:"required,email"`
	Password       string   `json:"password" binding:"omitempty,min=8"` // Empty keeps the current password
	Availability   string   `json:"availability"`
	BranchName     string   `json:"branchName"` // Only honored for superadmins
}

// TrainerResponse exposes a trainer profile with the specialization split
// into a list. The password hash never leaves the service layer.
type TrainerResponse struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	Specialization []string  `json:"specialization"`
	Rating         float64   `json:"rating"`
	Experience     int       `json:"experience"`
	Phone          string    `json:"phone,omitempty"`
	Email          string    `json:"email"`
	Availability   string    `json:"availability,omitempty"`
	BranchName     string    `json:"branchName,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// --- Handler Methods ---

// AddTrainer godoc
// @Summary Add a new trainer (Admin/Superadmin only)
// @Description Creates a trainer profile together with its login account.
// @Tags Trainers
// @Accept json
// @Produce json
// @Param trainer body AddTrainerRequest true "Trainer details"
// @Success 201 {object} TrainerResponse "Trainer created successfully"
// @Failure 400 {object} gin.H "Invalid input or duplicate email"
// @Failure 403 {object} gin.H "Caller is not an admin"
// @Security BearerAuth
// @Router /trainers/add-trainer [post]
func (h *TrainerHandler) AddTrainer(c *gin.Context) {
	callerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify requesting user")
		return
	}

	var req AddTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	trainer, err := h.trainerService.AddTrainer(c.Request.Context(), callerID, service.TrainerInput{
		Name:           req.Name,
		Specialization: req.Specialization,
		Rating:         req.Rating,
		Experience:     req.Experience,
		Phone:          req.Phone,
		Email:          req.Email,
		Password:       req.Password,
		Availability:   req.Availability,
		BranchName:     req.BranchName,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MapTrainerToResponse(trainer))
}

// GetTrainers godoc
// @Summary List trainers
// @Description Lists trainer profiles scoped by the caller's role and branch.
// @Tags Trainers
// @Produce json
// @Success 200 {array} TrainerResponse
// @Failure 400 {object} gin.H "Admin has no branch assigned"
// @Security BearerAuth
// @Router /trainers [get]
func (h *TrainerHandler) GetTrainers(c *gin.Context) {
	callerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify requesting user")
		return
	}

	trainers, err := h.trainerService.GetTrainers(c.Request.Context(), callerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses := make([]TrainerResponse, 0, len(trainers))
	for i := range trainers {
		responses = append(responses, MapTrainerToResponse(&trainers[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// GetTrainerByID godoc
// @Summary Get a single trainer
// @Description Fetches one trainer profile by ID. Open to any authenticated user.
// @Tags Trainers
// @Produce json
// @Param trainerId path int true "Trainer ID"
// @Success 200 {object} TrainerResponse
// @Failure 404 {object} gin.H "Trainer not found"
// @Security BearerAuth
// @Router /trainers/{trainerId} [get]
func (h *TrainerHandler) GetTrainerByID(c *gin.Context) {
	callerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify requesting user")
		return
	}

	trainerID, err := parseUintParam(c, "trainerId")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	trainer, err := h.trainerService.GetTrainerByID(c.Request.Context(), callerID, trainerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapTrainerToResponse(trainer))
}

// UpdateTrainer godoc
// @Summary Update a trainer (Admin/Superadmin only)
// @Description Updates a trainer profile and keeps its login account in sync.
// @Tags Trainers
// @Accept json
// @Produce json
// @Param trainerId path int true "Trainer ID"
// @Param trainer body UpdateTrainerRequest true "Updated trainer details"
// @Success 200 {object} TrainerResponse
// @Failure 403 {object} gin.H "Trainer outside the admin's branch"
// @Failure 404 {object} gin.H "Trainer not found"
// @Security BearerAuth
// @Router /trainers/{trainerId} [put]
func (h *TrainerHandler) UpdateTrainer(c *gin.Context) {
	callerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify requesting user")
		return
	}

	trainerID, err := parseUintParam(c, "trainerId")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	var req UpdateTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	trainer, err := h.trainerService.UpdateTrainer(c.Request.Context(), callerID, trainerID, service.TrainerInput{
		Name:           req.Name,
		Specialization: req.Specialization,
		Rating:         req.Rating,
		Experience:     req.Experience,
		Phone:          req.Phone,
		Email:          req.Email,
		Password:       req.Password,
		Availability:   req.Availability,
		BranchName:     req.BranchName,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapTrainerToResponse(trainer))
}

// DeleteTrainer godoc
// @Summary Delete a trainer (Admin/Superadmin only)
// @Description Removes a trainer profile and its login account.
// @Tags Trainers
// @Produce json
// @Param trainerId path int true "Trainer ID"
// @Success 200 {object} gin.H "Trainer deleted"
// @Failure 403 {object} gin.H "Trainer outside the admin's branch"
// @Failure 404 {object} gin.H "Trainer not found"
// @Security BearerAuth
// @Router /trainers/{trainerId} [delete]
func (h *TrainerHandler) DeleteTrainer(c *gin.Context) {
	callerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify requesting user")
		return
	}

	trainerID, err := parseUintParam(c, "trainerId")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.trainerService.DeleteTrainer(c.Request.Context(), callerID, trainerID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Trainer deleted successfully"})
}

// --- Mappers and Helpers ---

// MapTrainerToResponse converts a domain Trainer to a TrainerResponse DTO,
// splitting the stored specialization string into a list.
func MapTrainerToResponse(trainer *domain.Trainer) TrainerResponse {
	if trainer == nil {
		return TrainerResponse{}
	}
	return TrainerResponse{
		ID:             trainer.ID,
		Name:           trainer.Name,
		Specialization: trainer.SpecializationList(),
		Rating:         trainer.Rating,
		Experience:     trainer.Experience,
		Phone:          trainer.Phone,
		Email:          trainer.Email,
		Availability:   trainer.Availability,
		BranchName:     trainer.BranchName,
		CreatedAt:      trainer.CreatedAt,
	}
}

// parseUintParam reads a numeric path parameter.
func parseUintParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return uint(value), nil
}
