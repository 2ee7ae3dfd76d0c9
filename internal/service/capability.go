package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/coursepulse/internal/domain"
	"github.com/alexanderramin/coursepulse/internal/repository"
)

type roleCapabilityOracle struct {
	roles repository.RoleRepo
}

// NewRoleCapabilityOracle derives capabilities from the user's course roles
// through domain.RoleCapabilities.
func NewRoleCapabilityOracle(roles repository.RoleRepo) CapabilityOracle {
	return &roleCapabilityOracle{roles: roles}
}

func (o *roleCapabilityOracle) ViewerFor(ctx context.Context, courseID, userID int64) (domain.ViewerContext, error) {
	roles, err := o.roles.ListRoles(ctx, courseID, userID)
	if err != nil {
		return domain.ViewerContext{}, fmt.Errorf("resolving capabilities of user %d: %w", userID, err)
	}
	return domain.NewViewerContext(userID, roles...), nil
}
