package service

import (
	"bytes"
	"context"
	"log"
	"os"
	"testing"
	"time"

	"alcyxob/gym-api/internal/domain"
	"alcyxob/gym-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type planFixture struct {
	users    *fakeUserRepo
	trainers *fakeTrainerRepo
	diet     *fakeDietPlanRepo
	exercise *fakeExercisePlanRepo
	svc      PlanService
}

func newPlanFixture() planFixture {
	users := newFakeUserRepo()
	trainers := newFakeTrainerRepo(users)
	diet := newFakeDietPlanRepo()
	exercise := newFakeExercisePlanRepo()
	return planFixture{
		users:    users,
		trainers: trainers,
		diet:     diet,
		exercise: exercise,
		svc:      NewPlanService(diet, exercise, trainers, users),
	}
}

func samplePlanInput(userID uint) PlanInput {
	expiry := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	return PlanInput{
		UserID:      userID,
		Title:       "Cutting phase",
		Description: "High protein, moderate deficit",
		ExpiryDate:  &expiry,
	}
}

func TestCreateDietPlanTrainerOnly(t *testing.T) {
	fx := newPlanFixture()
	member := seedMember(fx.users, 1, "downtown")

	_, err := fx.svc.CreateDietPlan(context.Background(), member.ID, samplePlanInput(member.ID))

	assert.ErrorIs(t, err, ErrTrainerOnly)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateDietPlanSubjectMustBeInBranch(t *testing.T) {
	fx := newPlanFixture()
	trainer := seedTrainerUser(fx.users, 2, "downtown")
	outsider := seedMember(fx.users, 1, "uptown")

	_, err := fx.svc.CreateDietPlan(context.Background(), trainer.ID, samplePlanInput(outsider.ID))

	assert.ErrorIs(t, err, ErrUserNotInBranch)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateDietPlanStampsOwnership(t *testing.T) {
	fx := newPlanFixture()
	trainer := seedTrainerUser(fx.users, 2, "downtown")
	fx.trainers.seed(domain.Trainer{ID: trainer.ID, Name: "Coach Dana", Email: trainer.Email, BranchName: "downtown"})
	member := seedMember(fx.users, 1, "downtown")
	member.PasswordHash = "bcrypt-hash"

	detail, err := fx.svc.CreateDietPlan(context.Background(), trainer.ID, samplePlanInput(member.ID))
	require.NoError(t, err)

	assert.NotZero(t, detail.ID)
	assert.Equal(t, member.ID, detail.UserID)
	assert.Equal(t, trainer.ID, detail.AssignedByTrainerID)
	assert.Equal(t, "downtown", detail.BranchName)
	assert.Equal(t, assignedToday(), detail.AssignedDate)
	require.NotNil(t, detail.User)
	assert.Empty(t, detail.User.PasswordHash)
	require.NotNil(t, detail.AssignedBy)
	assert.Equal(t, "Coach Dana", detail.AssignedBy.Name)
}

func TestCreateDietPlanWithoutTrainerProfile(t *testing.T) {
	fx := newPlanFixture()
	trainer := seedTrainerUser(fx.users, 2, "downtown")
	member := seedMember(fx.users, 1, "downtown")

	var logged bytes.Buffer
	log.SetOutput(&logged)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	// No trainer profile row; the plan is still created and served, but the
	// orphaned assignment leaves a warning behind
	detail, err := fx.svc.CreateDietPlan(context.Background(), trainer.ID, samplePlanInput(member.ID))
	require.NoError(t, err)

	assert.Nil(t, detail.AssignedBy)
	require.NotNil(t, detail.User)
	assert.Contains(t, logged.String(), "WARN: Trainer 2 has assigned plans but no profile row")
}

func TestUpdateDietPlanSubjectImmutable(t *testing.T) {
	fx := newPlanFixture()
	trainer := seedTrainerUser(fx.users, 2, "downtown")
	member := seedMember(fx.users, 1, "downtown")
	other := seedMember(fx.users, 3, "downtown")
	plan := fx.diet.seed(domain.DietPlan{PlanDetails: domain.PlanDetails{
		UserID: member.ID, AssignedByTrainerID: trainer.ID, Title: "Bulk", BranchName: "downtown",
	}})

	input := samplePlanInput(other.ID)
	_, err := fx.svc.UpdateDietPlan(context.Background(), trainer.ID, plan.ID, input)
	assert.ErrorIs(t, err, ErrPlanSubjectImmutable)
	assert.ErrorIs(t, err, ErrInvalidState)

	// A zero UserID leaves the subject untouched
	input.UserID = 0
	updated, err := fx.svc.UpdateDietPlan(context.Background(), trainer.ID, plan.ID, input)
	require.NoError(t, err)
	assert.Equal(t, member.ID, updated.UserID)
	assert.Equal(t, "Cutting phase", updated.Title)
}

func TestUpdateDietPlanScopedToOwnerAndBranch(t *testing.T) {
	fx := newPlanFixture()
	owner := seedTrainerUser(fx.users, 2, "downtown")
	other := seedTrainerUser(fx.users, 4, "downtown")
	member := seedMember(fx.users, 1, "downtown")
	plan := fx.diet.seed(domain.DietPlan{PlanDetails: domain.PlanDetails{
		UserID: member.ID, AssignedByTrainerID: owner.ID, Title: "Bulk", BranchName: "downtown",
	}})

	// Another trainer cannot see the plan at all
	_, err := fx.svc.UpdateDietPlan(context.Background(), other.ID, plan.ID, samplePlanInput(member.ID))
	assert.ErrorIs(t, err, ErrDietPlanNotFound)
	assert.ErrorIs(t, err, ErrNotFound)

	// Neither can the owner once assigned to a different branch
	stale := fx.diet.seed(domain.DietPlan{PlanDetails: domain.PlanDetails{
		UserID: member.ID, AssignedByTrainerID: owner.ID, Title: "Old branch plan", BranchName: "uptown",
	}})
	_, err = fx.svc.UpdateDietPlan(context.Background(), owner.ID, stale.ID, samplePlanInput(member.ID))
	assert.ErrorIs(t, err, ErrDietPlanNotFound)
}

func TestGetDietPlansScopedAndFiltered(t *testing.T) {
	fx := newPlanFixture()
	trainer := seedTrainerUser(fx.users, 2, "downtown")
	memberA := seedMember(fx.users, 1, "downtown")
	memberB := seedMember(fx.users, 3, "downtown")
	fx.diet.seed(domain.DietPlan{PlanDetails: domain.PlanDetails{UserID: memberA.ID, AssignedByTrainerID: trainer.ID, BranchName: "downtown"}})
	fx.diet.seed(domain.DietPlan{PlanDetails: domain.PlanDetails{UserID: memberB.ID, AssignedByTrainerID: trainer.ID, BranchName: "downtown"}})
	// Assigned before the trainer moved here; not listed
	fx.diet.seed(domain.DietPlan{PlanDetails: domain.PlanDetails{UserID: memberA.ID, AssignedByTrainerID: trainer.ID, BranchName: "uptown"}})

	all, err := fx.svc.GetDietPlans(context.Background(), trainer.ID, repository.PlanFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	aID := memberA.ID
	filtered, err := fx.svc.GetDietPlans(context.Background(), trainer.ID, repository.PlanFilter{UserID: &aID})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, memberA.ID, filtered[0].UserID)
	require.NotNil(t, filtered[0].User)
}

func TestDeleteDietPlanScopedToOwner(t *testing.T) {
	fx := newPlanFixture()
	owner := seedTrainerUser(fx.users, 2, "downtown")
	other := seedTrainerUser(fx.users, 4, "downtown")
	member := seedMember(fx.users, 1, "downtown")
	plan := fx.diet.seed(domain.DietPlan{PlanDetails: domain.PlanDetails{
		UserID: member.ID, AssignedByTrainerID: owner.ID, BranchName: "downtown",
	}})

	err := fx.svc.DeleteDietPlan(context.Background(), other.ID, plan.ID)
	assert.ErrorIs(t, err, ErrDietPlanNotFound)

	err = fx.svc.DeleteDietPlan(context.Background(), owner.ID, plan.ID)
	require.NoError(t, err)

	err = fx.svc.DeleteDietPlan(context.Background(), owner.ID, plan.ID)
	assert.ErrorIs(t, err, ErrDietPlanNotFound)
}

func TestCreateExercisePlanStampsOwnership(t *testing.T) {
	fx := newPlanFixture()
	trainer := seedTrainerUser(fx.users, 2, "downtown")
	member := seedMember(fx.users, 1, "downtown")

	input := samplePlanInput(member.ID)
	input.Title = "Push pull legs"
	detail, err := fx.svc.CreateExercisePlan(context.Background(), trainer.ID, input)
	require.NoError(t, err)

	assert.NotZero(t, detail.ID)
	assert.Equal(t, trainer.ID, detail.AssignedByTrainerID)
	assert.Equal(t, "downtown", detail.BranchName)
	assert.Equal(t, "Push pull legs", detail.Title)
}

func TestCreateExercisePlanTrainerOnly(t *testing.T) {
	fx := newPlanFixture()
	admin := seedAdmin(fx.users, 9, domain.RoleAdmin, "downtown")
	member := seedMember(fx.users, 1, "downtown")

	_, err := fx.svc.CreateExercisePlan(context.Background(), admin.ID, samplePlanInput(member.ID))

	assert.ErrorIs(t, err, ErrTrainerOnly)
}

func TestUpdateExercisePlanSubjectImmutable(t *testing.T) {
	fx := newPlanFixture()
	trainer := seedTrainerUser(fx.users, 2, "downtown")
	member := seedMember(fx.users, 1, "downtown")
	other := seedMember(fx.users, 3, "downtown")
	plan := fx.exercise.seed(domain.ExercisePlan{PlanDetails: domain.PlanDetails{
		UserID: member.ID, AssignedByTrainerID: trainer.ID, BranchName: "downtown",
	}})

	_, err := fx.svc.UpdateExercisePlan(context.Background(), trainer.ID, plan.ID, samplePlanInput(other.ID))

	assert.ErrorIs(t, err, ErrPlanSubjectImmutable)
}

func TestGetExercisePlansTrainerOnly(t *testing.T) {
	fx := newPlanFixture()
	member := seedMember(fx.users, 1, "downtown")

	_, err := fx.svc.GetExercisePlans(context.Background(), member.ID, repository.PlanFilter{})

	assert.ErrorIs(t, err, ErrTrainerOnly)
}

func TestDeleteExercisePlanScopedToBranch(t *testing.T) {
	fx := newPlanFixture()
	trainer := seedTrainerUser(fx.users, 2, "downtown")
	member := seedMember(fx.users, 1, "downtown")
	plan := fx.exercise.seed(domain.ExercisePlan{PlanDetails: domain.PlanDetails{
		UserID: member.ID, AssignedByTrainerID: trainer.ID, BranchName: "uptown",
	}})

	err := fx.svc.DeleteExercisePlan(context.Background(), trainer.ID, plan.ID)

	assert.ErrorIs(t, err, ErrExercisePlanNotFound)
}
