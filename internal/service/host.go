package service

import (
	"context"
)

// HostRepository defines the persistence operations required by the host
// enrollment service.
type HostRepository interface {
	// HostExists returns true if a host with the given name is enrolled.
	HostExists(ctx context.Context, name string) (bool, error)
	// EnrollHost creates a new host record with the given name.
	EnrollHost(ctx context.Context, name string) error
}

// HostService implements host enrollment by delegating to a HostRepository.
type HostService struct {
	// repo performs the data-layer operations.
	repo HostRepository
}

// NewHostService constructs a HostService using the provided repository.
func NewHostService(repo HostRepository) *HostService {
	return &HostService{repo: repo}
}

// HostExists checks whether a host with the specified name is enrolled.
func (s *HostService) HostExists(ctx context.Context, name string) (bool, error) {
	return s.repo.HostExists(ctx, name)
}

// EnrollHost enrolls a new host with the given name.
func (s *HostService) EnrollHost(ctx context.Context, name string) error {
	return s.repo.EnrollHost(ctx, name)
}
