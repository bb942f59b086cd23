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

// PlanHandler holds the plan assignment service dependency.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- DTOs for Plan Assignment ---

type CreatePlanRequest struct {
	UserID      uint   `json:"userId" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	ExpiryDate  string `json:"expiryDate" binding:"omitempty,datetime=2006-01-02"`
}

type UpdatePlanRequest struct {
	UserID      uint   `json:"userId"` // Zero keeps the current subject; any other value is rejected
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	ExpiryDate  string `json:"expiryDate" binding:"omitempty,datetime=2006-01-02"`
}

// PlanResponse serves both diet and exercise plans. The scalar IDs always
// identify both actors; the embedded User is omitted when its row is gone,
// and AssignedBy falls back to a placeholder when the trainer profile no
// longer exists.
type PlanResponse struct {
	ID                  uint            `json:"id"`
	UserID              uint            `json:"userId"`
	AssignedByTrainerID uint            `json:"assignedByTrainerId"`
	Title               string          `json:"title"`
	Description         string          `json:"description,omitempty"`
	AssignedDate        string          `json:"assignedDate"`
	ExpiryDate          *string         `json:"expiryDate,omitempty"`
	BranchName          string          `json:"branchName,omitempty"`
	User                *UserResponse   `json:"user,omitempty"`
	AssignedBy          TrainerResponse `json:"assignedBy"`
}

// --- Diet Plan Handlers ---

// CreateDietPlan godoc
// @Summary Assign a diet plan (Trainer only)
// @Description Assigns a diet plan to a user in the trainer's branch.
// @Tags Plans
// @Accept json
// @Produce json
// @Param plan body CreatePlanRequest true "Plan details"
// @Success 201 {object} PlanResponse "Plan assigned"
// @Failure 403 {object} gin.H "Caller is not a trainer"
// @Failure 404 {object} gin.H "Subject user not found in this branch"
// @Security BearerAuth
// @Router /trainers/diet-plans [post]
func (h *PlanHandler) CreateDietPlan(c *gin.Context) {
	callerID, input, ok := bindPlanCreate(c)
	if !ok {
		return
	}

	detail, err := h.planService.CreateDietPlan(c.Request.Context(), callerID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapDietPlanToResponse(detail))
}

// GetDietPlans godoc
// @Summary List assigned diet plans (Trainer only)
// @Description Lists the diet plans the calling trainer assigned in their branch.
// @Tags Plans
// @Produce json
// @Param user_id query int false "Filter by subject user"
// @Success 200 {array} PlanResponse
// @Failure 403 {object} gin.H "Caller is not a trainer"
// @Security BearerAuth
// @Router /trainers/diet-plans [get]
func (h *PlanHandler) GetDietPlans(c *gin.Context) {
	callerID, filter, ok := bindPlanList(c)
	if !ok {
		return
	}

	details, err := h.planService.GetDietPlans(c.Request.Context(), callerID, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses := make([]PlanResponse, 0, len(details))
	for i := range details {
		responses = append(responses, MapDietPlanToResponse(&details[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// UpdateDietPlan godoc
// @Summary Update a diet plan (owning Trainer only)
// @Description Updates a diet plan the calling trainer assigned in their branch. The subject user cannot change.
// @Tags Plans
// @Accept json
// @Produce json
// @Param planId path int true "Plan ID"
// @Param plan body UpdatePlanRequest true "Updated plan details"
// @Success 200 {object} PlanResponse
// @Failure 400 {object} gin.H "Attempted to change the subject user"
// @Failure 404 {object} gin.H "Plan not found for this trainer in this branch"
// @Security BearerAuth
// @Router /trainers/diet-plans/{planId} [put]
func (h *PlanHandler) UpdateDietPlan(c *gin.Context) {
	callerID, planID, input, ok := bindPlanUpdate(c)
	if !ok {
		return
	}

	detail, err := h.planService.UpdateDietPlan(c.Request.Context(), callerID, planID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapDietPlanToResponse(detail))
}

// DeleteDietPlan godoc
// @Summary Delete a diet plan (owning Trainer only)
// @Description Deletes a diet plan the calling trainer assigned in their branch.
// @Tags Plans
// @Produce json
// @Param planId path int true "Plan ID"
// @Success 200 {object} gin.H "Plan deleted"
// @Failure 404 {object} gin.H "Plan not found for this trainer in this branch"
// @Security BearerAuth
// @Router /trainers/diet-plans/{planId} [delete]
func (h *PlanHandler) DeleteDietPlan(c *gin.Context) {
	callerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify requesting user")
		return
	}
	planID, err := parseUintParam(c, "planId")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.planService.DeleteDietPlan(c.Request.Context(), callerID, planID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Diet plan deleted successfully"})
}

// --- Exercise Plan Handlers ---

// CreateExercisePlan godoc
// @Summary Assign an exercise plan (Trainer only)
// @Description Assigns an exercise plan to a user in the trainer's branch.
// @Tags Plans
// @Accept json
// @Produce json
// @Param plan body CreatePlanRequest true "Plan details"
// @Success 201 {object} PlanResponse "Plan assigned"
// @Failure 403 {object} gin.H "Caller is not a trainer"
// @Failure 404 {object} gin.H "Subject user not found in this branch"
// @Security BearerAuth
// @Router /trainers/exercise-plans [post]
func (h *PlanHandler) CreateExercisePlan(c *gin.Context) {
	callerID, input, ok := bindPlanCreate(c)
	if !ok {
		return
	}

	detail, err := h.planService.CreateExercisePlan(c.Request.Context(), callerID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapExercisePlanToResponse(detail))
}

// GetExercisePlans godoc
// @Summary List assigned exercise plans (Trainer only)
// @Description Lists the exercise plans the calling trainer assigned in their branch.
// @Tags Plans
// @Produce json
// @Param user_id query int false "Filter by subject user"
// @Success 200 {array} PlanResponse
// @Failure 403 {object} gin.H "Caller is not a trainer"
// @Security BearerAuth
// @Router /trainers/exercise-plans [get]
func (h *PlanHandler) GetExercisePlans(c *gin.Context) {
	callerID, filter, ok := bindPlanList(c)
	if !ok {
		return
	}

	details, err := h.planService.GetExercisePlans(c.Request.Context(), callerID, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses := make([]PlanResponse, 0, len(details))
	for i := range details {
		responses = append(responses, MapExercisePlanToResponse(&details[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// UpdateExercisePlan godoc
// @Summary Update an exercise plan (owning Trainer only)
// @Description Updates an exercise plan the calling trainer assigned in their branch. The subject user cannot change.
// @Tags Plans
// @Accept json
// @Produce json
// @Param planId path int true "Plan ID"
// @Param plan body UpdatePlanRequest true "Updated plan details"
// @Success 200 {object} PlanResponse
// @Failure 400 {object} gin.H "Attempted to change the subject user"
// @Failure 404 {object} gin.H "Plan not found for this trainer in this branch"
// @Security BearerAuth
// @Router /trainers/exercise-plans/{planId} [put]
func (h *PlanHandler) UpdateExercisePlan(c *gin.Context) {
	callerID, planID, input, ok := bindPlanUpdate(c)
	if !ok {
		return
	}

	detail, err := h.planService.UpdateExercisePlan(c.Request.Context(), callerID, planID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExercisePlanToResponse(detail))
}

// DeleteExercisePlan godoc
// @Summary Delete an exercise plan (owning Trainer only)
// @Description Deletes an exercise plan the calling trainer assigned in their branch.
// @Tags Plans
// @Produce json
// @Param planId path int true "Plan ID"
// @Success 200 {object} gin.H "Plan deleted"
// @Failure 404 {object} gin.H "Plan not found for this trainer in this branch"
// @Security BearerAuth
// @Router /trainers/exercise-plans/{planId} [delete]
func (h *PlanHandler) DeleteExercisePlan(c *gin.Context) {
	callerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify requesting user")
		return
	}
	planID, err := parseUintParam(c, "planId")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.planService.DeleteExercisePlan(c.Request.Context(), callerID, planID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Exercise plan deleted successfully"})
}

// --- Binding Helpers ---

// bindPlanCreate extracts the caller and a validated create payload. On
// failure the response has already been written and ok is false.
func bindPlanCreate(c *gin.Context) (callerID uint, input service.PlanInput, ok bool) {
	callerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify requesting user")
		return 0, service.PlanInput{}, false
	}

	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return 0, service.PlanInput{}, false
	}
	expiry, err := parseOptionalDate(req.ExpiryDate)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "expiryDate must be in YYYY-MM-DD format")
		return 0, service.PlanInput{}, false
	}

	return callerID, service.PlanInput{
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		ExpiryDate:  expiry,
	}, true
}

// bindPlanUpdate extracts the caller, plan ID and a validated update payload.
func bindPlanUpdate(c *gin.Context) (callerID, planID uint, input service.PlanInput, ok bool) {
	callerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify requesting user")
		return 0, 0, service.PlanInput{}, false
	}
	planID, err = parseUintParam(c, "planId")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return 0, 0, service.PlanInput{}, false
	}

	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return 0, 0, service.PlanInput{}, false
	}
	expiry, err := parseOptionalDate(req.ExpiryDate)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "expiryDate must be in YYYY-MM-DD format")
		return 0, 0, service.PlanInput{}, false
	}

	return callerID, planID, service.PlanInput{
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		ExpiryDate:  expiry,
	}, true
}

// bindPlanList extracts the caller and the optional user_id query filter.
func bindPlanList(c *gin.Context) (callerID uint, filter repository.PlanFilter, ok bool) {
	callerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify requesting user")
		return 0, repository.PlanFilter{}, false
	}

	if raw := c.Query("user_id"); raw != "" {
		value, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, fmt.Sprintf("invalid user_id: %q", raw))
			return 0, repository.PlanFilter{}, false
		}
		userID := uint(value)
		filter.UserID = &userID
	}
	return callerID, filter, true
}

func parseOptionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

// --- Mappers ---

// MapDietPlanToResponse converts a diet plan detail to its DTO.
func MapDietPlanToResponse(detail *service.DietPlanDetail) PlanResponse {
	if detail == nil {
		return PlanResponse{}
	}
	resp := mapPlanCore(detail.ID, detail.PlanDetails, detail.User)
	resp.AssignedBy = assignedByOrPlaceholder(detail.AssignedBy, detail.AssignedByTrainerID)
	return resp
}

// MapExercisePlanToResponse converts an exercise plan detail to its DTO.
func MapExercisePlanToResponse(detail *service.ExercisePlanDetail) PlanResponse {
	if detail == nil {
		return PlanResponse{}
	}
	resp := mapPlanCore(detail.ID, detail.PlanDetails, detail.User)
	resp.AssignedBy = assignedByOrPlaceholder(detail.AssignedBy, detail.AssignedByTrainerID)
	return resp
}

func mapPlanCore(id uint, details domain.PlanDetails, user *domain.User) PlanResponse {
	resp := PlanResponse{
		ID:                  id,
		UserID:              details.UserID,
		AssignedByTrainerID: details.AssignedByTrainerID,
		Title:               details.Title,
		Description:         details.Description,
		AssignedDate:        details.AssignedDate.Format(dateLayout),
		BranchName:          details.BranchName,
	}
	if details.ExpiryDate != nil {
		formatted := details.ExpiryDate.Format(dateLayout)
		resp.ExpiryDate = &formatted
	}
	if user != nil {
		mapped := MapUserToResponse(user)
		resp.User = &mapped
	}
	return resp
}

// assignedByOrPlaceholder renders the assigning trainer, or a placeholder
// preserving the ID when the profile row no longer exists.
func assignedByOrPlaceholder(trainer *domain.Trainer, trainerID uint) TrainerResponse {
	if trainer != nil {
		return MapTrainerToResponse(trainer)
	}
	return TrainerResponse{
		ID:             trainerID,
		Name:           "Unknown Trainer",
		Specialization: []string{},
	}
}
