// Package duty answers "which unit is this user on duty as". The duty
// workflow itself lives in the host application; these resolvers only read it.
package duty

import (
	"context"

	"github.com/nanami9426/officerchat/internal/models"
)

type Resolver interface {
	ActiveUnit(ctx context.Context, userID string) (*models.Unit, error)
}

// GormResolver reads the host's unit tables.
type GormResolver struct{}

func NewGormResolver() *GormResolver {
	return &GormResolver{}
}

func (r *GormResolver) ActiveUnit(ctx context.Context, userID string) (*models.Unit, error) {
	return models.GetActiveUnitForUser(ctx, userID)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ctx context.Context, userID string) (*models.Unit, error)

func (f ResolverFunc) ActiveUnit(ctx context.Context, userID string) (*models.Unit, error) {
	return f(ctx, userID)
}
