package service

import (
	"context"
	"fmt"

	"alcyxob/gym-api/internal/domain"
	"alcyxob/gym-api/internal/repository"
)

// In-memory repository fakes mirroring the postgres implementations closely
// enough to exercise the service authorization paths.

// --- Users ---

type fakeUserRepo struct {
	users  map[uint]*domain.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*domain.User), nextID: 1}
}

func (f *fakeUserRepo) seed(user domain.User) *domain.User {
	if user.ID == 0 {
		user.ID = f.nextID
	}
	if user.ID >= f.nextID {
		f.nextID = user.ID + 1
	}
	stored := user
	f.users[stored.ID] = &stored
	return &stored
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) (uint, error) {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return 0, repository.ErrDuplicate
		}
	}
	stored := *user
	stored.ID = f.nextID
	f.nextID++
	f.users[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByIDInBranch(ctx context.Context, id uint, branchName string) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok || user.BranchName != branchName {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

// --- Trainers ---

type fakeTrainerRepo struct {
	trainers map[uint]*domain.Trainer
	accounts *fakeUserRepo // Trainer accounts live in the user fake
	nextID   uint
}

func newFakeTrainerRepo(accounts *fakeUserRepo) *fakeTrainerRepo {
	return &fakeTrainerRepo{trainers: make(map[uint]*domain.Trainer), accounts: accounts, nextID: 1000}
}

func (f *fakeTrainerRepo) seed(trainer domain.Trainer) *domain.Trainer {
	if trainer.ID == 0 {
		trainer.ID = f.nextID
	}
	if trainer.ID >= f.nextID {
		f.nextID = trainer.ID + 1
	}
	stored := trainer
	f.trainers[stored.ID] = &stored
	return &stored
}

func (f *fakeTrainerRepo) Create(ctx context.Context, trainer *domain.Trainer, account *domain.User) (uint, error) {
	for _, existing := range f.trainers {
		if existing.Email == trainer.Email {
			return 0, repository.ErrDuplicate
		}
	}
	accountID, err := f.accounts.Create(ctx, account)
	if err != nil {
		return 0, err
	}
	stored := *trainer
	stored.ID = accountID
	f.trainers[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeTrainerRepo) GetByID(ctx context.Context, id uint) (*domain.Trainer, error) {
	trainer, ok := f.trainers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *trainer
	return &copied, nil
}

func (f *fakeTrainerRepo) GetByEmail(ctx context.Context, email string) (*domain.Trainer, error) {
	for _, trainer := range f.trainers {
		if trainer.Email == email {
			copied := *trainer
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeTrainerRepo) ListAll(ctx context.Context) ([]domain.Trainer, error) {
	result := make([]domain.Trainer, 0, len(f.trainers))
	for _, trainer := range f.trainers {
		result = append(result, *trainer)
	}
	return result, nil
}

func (f *fakeTrainerRepo) ListByBranch(ctx context.Context, branchName string) ([]domain.Trainer, error) {
	var result []domain.Trainer
	for _, trainer := range f.trainers {
		if trainer.BranchName == branchName {
			result = append(result, *trainer)
		}
	}
	return result, nil
}

func (f *fakeTrainerRepo) Update(ctx context.Context, trainer *domain.Trainer) error {
	for _, existing := range f.trainers {
		if existing.ID != trainer.ID && existing.Email == trainer.Email {
			return repository.ErrDuplicate
		}
	}
	stored := *trainer
	f.trainers[stored.ID] = &stored
	if account, ok := f.accounts.users[trainer.ID]; ok && account.Role == domain.RoleTrainer {
		account.Name = trainer.Name
		account.Email = trainer.Email
		account.BranchName = trainer.BranchName
	}
	return nil
}

func (f *fakeTrainerRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := f.trainers[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.trainers, id)
	if account, ok := f.accounts.users[id]; ok && account.Role == domain.RoleTrainer {
		delete(f.accounts.users, id)
	}
	return nil
}

// --- Sessions ---

type fakeSessionRepo struct {
	sessions map[uint]*domain.SessionSchedule
	nextID   uint
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uint]*domain.SessionSchedule), nextID: 1}
}

func (f *fakeSessionRepo) seed(session domain.SessionSchedule) *domain.SessionSchedule {
	if session.ID == 0 {
		session.ID = f.nextID
	}
	if session.ID >= f.nextID {
		f.nextID = session.ID + 1
	}
	stored := session
	f.sessions[stored.ID] = &stored
	return &stored
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *domain.SessionSchedule) (uint, error) {
	stored := *session
	stored.ID = f.nextID
	f.nextID++
	f.sessions[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeSessionRepo) GetByID(ctx context.Context, id uint) (*domain.SessionSchedule, error) {
	session, ok := f.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *session
	return &copied, nil
}

func (f *fakeSessionRepo) GetOwnedByID(ctx context.Context, id, trainerID uint) (*domain.SessionSchedule, error) {
	session, ok := f.sessions[id]
	if !ok || session.TrainerID != trainerID {
		return nil, repository.ErrNotFound
	}
	copied := *session
	return &copied, nil
}

func (f *fakeSessionRepo) ListByTrainer(ctx context.Context, trainerID uint) ([]domain.SessionSchedule, error) {
	var result []domain.SessionSchedule
	for _, session := range f.sessions {
		if session.TrainerID == trainerID {
			result = append(result, *session)
		}
	}
	return result, nil
}

func (f *fakeSessionRepo) ListAll(ctx context.Context) ([]domain.SessionSchedule, error) {
	result := make([]domain.SessionSchedule, 0, len(f.sessions))
	for _, session := range f.sessions {
		result = append(result, *session)
	}
	return result, nil
}

func (f *fakeSessionRepo) Update(ctx context.Context, session *domain.SessionSchedule) error {
	stored := *session
	f.sessions[stored.ID] = &stored
	return nil
}

func (f *fakeSessionRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := f.sessions[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.sessions, id)
	return nil
}

// --- Attendance ---

type fakeAttendanceRepo struct {
	records map[uint]*domain.SessionAttendance
	nextID  uint
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[uint]*domain.SessionAttendance), nextID: 1}
}

func (f *fakeAttendanceRepo) seed(record domain.SessionAttendance) *domain.SessionAttendance {
	if record.ID == 0 {
		record.ID = f.nextID
	}
	if record.ID >= f.nextID {
		f.nextID = record.ID + 1
	}
	stored := record
	f.records[stored.ID] = &stored
	return &stored
}

func (f *fakeAttendanceRepo) Upsert(ctx context.Context, attendance *domain.SessionAttendance) (*domain.SessionAttendance, error) {
	for _, existing := range f.records {
		if existing.SessionID == attendance.SessionID &&
			existing.UserID == attendance.UserID &&
			existing.AttendanceDate.Equal(attendance.AttendanceDate) {
			existing.Status = attendance.Status
			copied := *existing
			return &copied, nil
		}
	}
	stored := *attendance
	stored.ID = f.nextID
	f.nextID++
	f.records[stored.ID] = &stored
	copied := stored
	return &copied, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id uint) (*domain.SessionAttendance, error) {
	record, ok := f.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *record
	return &copied, nil
}

func (f *fakeAttendanceRepo) ListBySession(ctx context.Context, sessionID uint, filter repository.AttendanceFilter) ([]domain.SessionAttendance, error) {
	var result []domain.SessionAttendance
	for _, record := range f.records {
		if record.SessionID != sessionID {
			continue
		}
		if filter.UserID != nil && record.UserID != *filter.UserID {
			continue
		}
		if filter.AttendanceDate != nil && !record.AttendanceDate.Equal(*filter.AttendanceDate) {
			continue
		}
		result = append(result, *record)
	}
	return result, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, attendance *domain.SessionAttendance) error {
	for _, existing := range f.records {
		if existing.ID != attendance.ID &&
			existing.SessionID == attendance.SessionID &&
			existing.UserID == attendance.UserID &&
			existing.AttendanceDate.Equal(attendance.AttendanceDate) {
			return repository.ErrDuplicate
		}
	}
	stored := *attendance
	f.records[stored.ID] = &stored
	return nil
}

func (f *fakeAttendanceRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := f.records[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.records, id)
	return nil
}

// --- Diet Plans ---

type fakeDietPlanRepo struct {
	plans  map[uint]*domain.DietPlan
	nextID uint
}

func newFakeDietPlanRepo() *fakeDietPlanRepo {
	return &fakeDietPlanRepo{plans: make(map[uint]*domain.DietPlan), nextID: 1}
}

func (f *fakeDietPlanRepo) seed(plan domain.DietPlan) *domain.DietPlan {
	if plan.ID == 0 {
		plan.ID = f.nextID
	}
	if plan.ID >= f.nextID {
		f.nextID = plan.ID + 1
	}
	stored := plan
	f.plans[stored.ID] = &stored
	return &stored
}

func (f *fakeDietPlanRepo) Create(ctx context.Context, plan *domain.DietPlan) (uint, error) {
	stored := *plan
	stored.ID = f.nextID
	f.nextID++
	f.plans[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeDietPlanRepo) GetOwnedByID(ctx context.Context, id, trainerID uint, branchName string) (*domain.DietPlan, error) {
	plan, ok := f.plans[id]
	if !ok || plan.AssignedByTrainerID != trainerID || plan.BranchName != branchName {
		return nil, repository.ErrNotFound
	}
	copied := *plan
	return &copied, nil
}

func (f *fakeDietPlanRepo) ListByTrainer(ctx context.Context, trainerID uint, branchName string, filter repository.PlanFilter) ([]domain.DietPlan, error) {
	var result []domain.DietPlan
	for _, plan := range f.plans {
		if plan.AssignedByTrainerID != trainerID || plan.BranchName != branchName {
			continue
		}
		if filter.UserID != nil && plan.UserID != *filter.UserID {
			continue
		}
		result = append(result, *plan)
	}
	return result, nil
}

func (f *fakeDietPlanRepo) Update(ctx context.Context, plan *domain.DietPlan) error {
	stored := *plan
	f.plans[stored.ID] = &stored
	return nil
}

func (f *fakeDietPlanRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := f.plans[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.plans, id)
	return nil
}

// --- Exercise Plans ---

type fakeExercisePlanRepo struct {
	plans  map[uint]*domain.ExercisePlan
	nextID uint
}

func newFakeExercisePlanRepo() *fakeExercisePlanRepo {
	return &fakeExercisePlanRepo{plans: make(map[uint]*domain.ExercisePlan), nextID: 1}
}

func (f *fakeExercisePlanRepo) seed(plan domain.ExercisePlan) *domain.ExercisePlan {
	if plan.ID == 0 {
		plan.ID = f.nextID
	}
	if plan.ID >= f.nextID {
		f.nextID = plan.ID + 1
	}
	stored := plan
	f.plans[stored.ID] = &stored
	return &stored
}

func (f *fakeExercisePlanRepo) Create(ctx context.Context, plan *domain.ExercisePlan) (uint, error) {
	stored := *plan
	stored.ID = f.nextID
	f.nextID++
	f.plans[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeExercisePlanRepo) GetOwnedByID(ctx context.Context, id, trainerID uint, branchName string) (*domain.ExercisePlan, error) {
	plan, ok := f.plans[id]
	if !ok || plan.AssignedByTrainerID != trainerID || plan.BranchName != branchName {
		return nil, repository.ErrNotFound
	}
	copied := *plan
	return &copied, nil
}

func (f *fakeExercisePlanRepo) ListByTrainer(ctx context.Context, trainerID uint, branchName string, filter repository.PlanFilter) ([]domain.ExercisePlan, error) {
	var result []domain.ExercisePlan
	for _, plan := range f.plans {
		if plan.AssignedByTrainerID != trainerID || plan.BranchName != branchName {
			continue
		}
		if filter.UserID != nil && plan.UserID != *filter.UserID {
			continue
		}
		result = append(result, *plan)
	}
	return result, nil
}

func (f *fakeExercisePlanRepo) Update(ctx context.Context, plan *domain.ExercisePlan) error {
	stored := *plan
	f.plans[stored.ID] = &stored
	return nil
}

func (f *fakeExercisePlanRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := f.plans[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.plans, id)
	return nil
}

// --- Shared seed helpers ---

func seedMember(users *fakeUserRepo, id uint, branch string) *domain.User {
	return users.seed(domain.User{
		ID:         id,
		Name:       "Member",
		Email:      memberEmail(id),
		Role:       domain.RoleMember,
		BranchName: branch,
	})
}

func seedTrainerUser(users *fakeUserRepo, id uint, branch string) *domain.User {
	return users.seed(domain.User{
		ID:         id,
		Name:       "Trainer",
		Email:      memberEmail(id),
		Role:       domain.RoleTrainer,
		BranchName: branch,
	})
}

func seedAdmin(users *fakeUserRepo, id uint, role domain.Role, branch string) *domain.User {
	return users.seed(domain.User{
		ID:         id,
		Name:       "Admin",
		Email:      memberEmail(id),
		Role:       role,
		BranchName: branch,
	})
}

func memberEmail(id uint) string {
	return fmt.Sprintf("user%d@example.com", id)
}
