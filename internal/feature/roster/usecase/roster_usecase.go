// Package usecase implements the roster headcounts shown on the landing and
// role pages.
package usecase

import (
	"context"
	"fmt"

	"smartpletude_backend/internal/feature/auth/domain/entity"
)

// CountsRepository abstracts the per-role headcount query.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type CountsRepository interface {
	// CountByType returns the number of users with the given role.
	CountByType(ctx context.Context, userType string) (int64, error)
}

// Counts holds the current number of registered users per role.
type Counts struct {
	Students int64
	Teachers int64
}

// Total returns the overall number of registered users.
func (c Counts) Total() int64 {
	return c.Students + c.Teachers
}

// rosterUsecase serves headcounts over the credential store.
type rosterUsecase struct {
	users CountsRepository
}

// NewRosterUsecase creates a new instance of rosterUsecase.
func NewRosterUsecase(users CountsRepository) *rosterUsecase {
	return &rosterUsecase{users: users}
}

// Counts returns the student and teacher headcounts.
func (u *rosterUsecase) Counts(ctx context.Context) (Counts, error) {
	students, err := u.users.CountByType(ctx, entity.UserTypeStudent)
	if err != nil {
		return Counts{}, fmt.Errorf("count students: %w", err)
	}
	teachers, err := u.users.CountByType(ctx, entity.UserTypeTeacher)
	if err != nil {
		return Counts{}, fmt.Errorf("count teachers: %w", err)
	}
	return Counts{Students: students, Teachers: teachers}, nil
}
