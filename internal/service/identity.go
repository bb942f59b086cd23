package service

import (
	"context"
	"errors"
	"fmt"

	"alcyxob/gym-api/internal/domain"
	"alcyxob/gym-api/internal/repository"
)

// --- Error Definitions ---
var (
	ErrTrainerOnly = fmt.Errorf("%w: trainer access required", ErrForbidden)
	ErrAdminOnly   = fmt.Errorf("%w: admin access required", ErrForbidden)
)

// callerResolver loads the authenticated user's current record so services
// act on fresh role and branch values instead of trusting token claims.
type callerResolver struct {
	users repository.UserRepository
}

// Resolve maps the authenticated user ID to a domain.Caller. A user that
// no longer exists (deleted after the token was issued) resolves to
// ErrUnauthenticated.
func (r callerResolver) Resolve(ctx context.Context, callerID uint) (domain.Caller, error) {
	user, err := r.users.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Caller{}, ErrUnauthenticated
		}
		return domain.Caller{}, err
	}
	return domain.Caller{
		ID:         user.ID,
		Role:       user.Role,
		BranchName: user.BranchName,
	}, nil
}
