package tag

import (
	"context"

	"ordering/domain/shared"
)

type DomainService struct {
	repo Repository
}

func NewDomainService(repo Repository) *DomainService {
	return &DomainService{repo: repo}
}

// EnsureNameAvailable fails with ErrConflict when another tag owns name
func (s *DomainService) EnsureNameAvailable(ctx context.Context, name, selfID string) error {
	normalized, err := shared.NormalizeName(EntityName, name)
	if err != nil {
		return err
	}
	return shared.EnsureNameAvailable(ctx, EntityName, normalized, selfID, func(ctx context.Context, name string) (string, error) {
		t, err := s.repo.FindByName(ctx, name)
		if err != nil {
			return "", err
		}
		return t.ID(), nil
	})
}
