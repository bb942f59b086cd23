package service

import (
	"context"
	"testing"
	"time"

	"alcyxob/gym-api/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionFixture() (*fakeUserRepo, *fakeSessionRepo, SessionService) {
	users := newFakeUserRepo()
	sessions := newFakeSessionRepo()
	svc := NewSessionService(sessions, users)
	return users, sessions, svc
}

func sampleSessionInput() domain.SessionSchedule {
	return domain.SessionSchedule{
		SessionName: "Morning Yoga",
		SessionDate: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		StartTime:   "08:00",
		EndTime:     "09:00",
		MaxCapacity: 20,
		Description: "Vinyasa flow",
	}
}

func TestCreateSessionRequiresTrainer(t *testing.T) {
	users, _, svc := newSessionFixture()
	member := seedMember(users, 1, "downtown")

	_, err := svc.CreateSession(context.Background(), member.ID, sampleSessionInput())

	assert.ErrorIs(t, err, ErrTrainerOnly)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateSessionRequiresBranch(t *testing.T) {
	users, _, svc := newSessionFixture()
	trainer := seedTrainerUser(users, 2, "")

	_, err := svc.CreateSession(context.Background(), trainer.ID, sampleSessionInput())

	assert.ErrorIs(t, err, ErrTrainerBranchRequired)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCreateSessionStampsOwnershipAndBranch(t *testing.T) {
	users, sessions, svc := newSessionFixture()
	trainer := seedTrainerUser(users, 2, "downtown")

	input := sampleSessionInput()
	// Caller-supplied ownership fields must be ignored
	input.TrainerID = 999
	input.BranchName = "uptown"

	created, err := svc.CreateSession(context.Background(), trainer.ID, input)
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, trainer.ID, created.TrainerID)
	assert.Equal(t, "downtown", created.BranchName)

	stored, err := sessions.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "downtown", stored.BranchName)
}

func TestCreateSessionUnknownCaller(t *testing.T) {
	_, _, svc := newSessionFixture()

	_, err := svc.CreateSession(context.Background(), 42, sampleSessionInput())

	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestUpdateSessionScopedToOwner(t *testing.T) {
	users, sessions, svc := newSessionFixture()
	owner := seedTrainerUser(users, 2, "downtown")
	other := seedTrainerUser(users, 3, "downtown")
	session := sessions.seed(domain.SessionSchedule{
		TrainerID:   owner.ID,
		SessionName: "Morning Yoga",
		SessionDate: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		StartTime:   "08:00",
		EndTime:     "09:00",
		BranchName:  "downtown",
		MaxCapacity: 20,
	})

	// A session owned by someone else reads as missing
	_, err := svc.UpdateSession(context.Background(), other.ID, session.ID, sampleSessionInput())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, err, ErrNotFound)

	// The owner may update, but never the branch snapshot
	input := sampleSessionInput()
	input.SessionName = "Evening Yoga"
	input.BranchName = "uptown"
	updated, err := svc.UpdateSession(context.Background(), owner.ID, session.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "Evening Yoga", updated.SessionName)
	assert.Equal(t, "downtown", updated.BranchName)
	assert.Equal(t, owner.ID, updated.TrainerID)
}

func TestDeleteSessionScopedToOwner(t *testing.T) {
	users, sessions, svc := newSessionFixture()
	owner := seedTrainerUser(users, 2, "downtown")
	other := seedTrainerUser(users, 3, "uptown")
	session := sessions.seed(domain.SessionSchedule{
		TrainerID:   owner.ID,
		SessionName: "Spin Class",
		SessionDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		BranchName:  "downtown",
	})

	err := svc.DeleteSession(context.Background(), other.ID, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	err = svc.DeleteSession(context.Background(), owner.ID, session.ID)
	require.NoError(t, err)

	_, err = sessions.GetByID(context.Background(), session.ID)
	assert.Error(t, err)
}

func TestGetTrainerSessionsListsOwnOnly(t *testing.T) {
	users, sessions, svc := newSessionFixture()
	owner := seedTrainerUser(users, 2, "downtown")
	other := seedTrainerUser(users, 3, "downtown")
	sessions.seed(domain.SessionSchedule{TrainerID: owner.ID, SessionName: "A", BranchName: "downtown"})
	sessions.seed(domain.SessionSchedule{TrainerID: owner.ID, SessionName: "B", BranchName: "downtown"})
	sessions.seed(domain.SessionSchedule{TrainerID: other.ID, SessionName: "C", BranchName: "downtown"})

	owned, err := svc.GetTrainerSessions(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Len(t, owned, 2)
	for _, s := range owned {
		assert.Equal(t, owner.ID, s.TrainerID)
	}
}

func TestGetPublicSessionsOpenToMembers(t *testing.T) {
	users, sessions, svc := newSessionFixture()
	trainer := seedTrainerUser(users, 2, "downtown")
	member := seedMember(users, 1, "uptown")
	sessions.seed(domain.SessionSchedule{TrainerID: trainer.ID, SessionName: "A", BranchName: "downtown"})
	sessions.seed(domain.SessionSchedule{TrainerID: trainer.ID, SessionName: "B", BranchName: "downtown"})

	all, err := svc.GetPublicSessions(context.Background(), member.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
