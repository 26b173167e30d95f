package rosterRepo

import (
	"context"

	"clinicbook/models"
)

// Repository answers which resources may perform a service. The
// qualification rules themselves live with whoever maintains the
// resource documents; the scheduler only reads the outcome.
type Repository interface {
	ListQualifiedResources(ctx context.Context, orgID, serviceID string) ([]string, error)
	GetResource(ctx context.Context, orgID, resourceID string) (*models.Resource, error)
}
