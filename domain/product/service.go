package product

import (
	"context"

	"ordering/domain/shared"
)

// DomainService holds rules that need the repository
type DomainService struct {
	repo Repository
}

func NewDomainService(repo Repository) *DomainService {
	return &DomainService{repo: repo}
}

// EnsureNameAvailable fails with ErrConflict when another product owns name
func (s *DomainService) EnsureNameAvailable(ctx context.Context, name, selfID string) error {
	normalized, err := shared.NormalizeName(EntityName, name)
	if err != nil {
		return err
	}
	return shared.EnsureNameAvailable(ctx, EntityName, normalized, selfID, func(ctx context.Context, name string) (string, error) {
		p, err := s.repo.FindByName(ctx, name)
		if err != nil {
			return "", err
		}
		return p.ID(), nil
	})
}
