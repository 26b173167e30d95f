package rosterRepo

import (
	"context"
	"sync"

	"clinicbook/models"
)

// InMemoryRepository is a Repository for tests and single-process use.
type InMemoryRepository struct {
	mu        sync.RWMutex
	resources map[string]models.Resource
}

// NewInMemoryRepository returns an empty in-memory roster.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{resources: make(map[string]models.Resource)}
}

// AddResource registers or replaces a resource.
func (r *InMemoryRepository) AddResource(resource models.Resource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resources[resource.OrganisationID+"|"+resource.ID] = resource
}

func (r *InMemoryRepository) ListQualifiedResources(_ context.Context, orgID, serviceID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var ids []string
	for _, res := range r.resources {
		if res.OrganisationID != orgID || !res.Active {
			continue
		}
		for _, sid := range res.ServiceIDs {
			if sid == serviceID {
				ids = append(ids, res.ID)
				break
			}
		}
	}
	return ids, nil
}

func (r *InMemoryRepository) GetResource(_ context.Context, orgID, resourceID string) (*models.Resource, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.resources[orgID+"|"+resourceID]
	if !ok {
		return nil, nil
	}
	return &res, nil
}
