package catalog

import (
	"context"

	"ordering/domain/product"
	"ordering/domain/shared"
	"ordering/domain/tag"
)

// TagService tag use cases. The tag aggregate owns its product id set.
type TagService struct {
	tagRepo     tag.Repository
	productRepo product.Repository
	tagDomain   *tag.DomainService
	uowFactory  shared.UnitOfWorkFactory
}

func NewTagService(tagRepo tag.Repository, productRepo product.Repository, uowFactory shared.UnitOfWorkFactory) *TagService {
	return &TagService{
		tagRepo:     tagRepo,
		productRepo: productRepo,
		tagDomain:   tag.NewDomainService(tagRepo),
		uowFactory:  uowFactory,
	}
}

func (s *TagService) AddTag(ctx context.Context, req TagRequest) (*TagResponse, error) {
	var t *tag.Tag
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		t, err = tag.NewTag(req.Name, req.Description)
		if err != nil {
			return err
		}
		if err := s.tagDomain.EnsureNameAvailable(ctx, t.Name(), ""); err != nil {
			return err
		}
		if err := s.tagRepo.Save(ctx, t); err != nil {
			return err
		}
		uow.RegisterNew(t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toTagResponse(t), nil
}

func (s *TagService) UpdateTag(ctx context.Context, id string, req TagRequest) (*TagResponse, error) {
	return s.apply(ctx, id, func(ctx context.Context, t *tag.Tag) error {
		if err := t.EnsureAvailable(); err != nil {
			return err
		}
		if err := s.tagDomain.EnsureNameAvailable(ctx, req.Name, t.ID()); err != nil {
			return err
		}
		return t.Update(req.Name, req.Description)
	})
}

func (s *TagService) RetireTag(ctx context.Context, id string) (*TagResponse, error) {
	resp, err := s.apply(ctx, id, func(_ context.Context, t *tag.Tag) error {
		return t.Retire()
	})
	if err != nil {
		return nil, err
	}
	logRetired(ctx, tag.EntityName, id)
	return resp, nil
}

func (s *TagService) GetTag(ctx context.Context, id string) (*TagResponse, error) {
	t, err := s.tagRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTagResponse(t), nil
}

func (s *TagService) ListTags(ctx context.Context) ([]*TagResponse, error) {
	tags, err := s.tagRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]*TagResponse, len(tags))
	for i, t := range tags {
		responses[i] = toTagResponse(t)
	}
	return responses, nil
}

// AddProductToTag requires both the tag and the product to be active
func (s *TagService) AddProductToTag(ctx context.Context, tagID, productID string) (*TagResponse, error) {
	return s.apply(ctx, tagID, func(ctx context.Context, t *tag.Tag) error {
		p, err := s.productRepo.FindByID(ctx, productID)
		if err != nil {
			return err
		}
		if err := p.EnsureAvailable(); err != nil {
			return err
		}
		return t.AddProduct(p.ID())
	})
}

// RemoveProductFromTag is allowed on retired tags and retired products
func (s *TagService) RemoveProductFromTag(ctx context.Context, tagID, productID string) (*TagResponse, error) {
	return s.apply(ctx, tagID, func(_ context.Context, t *tag.Tag) error {
		return t.RemoveProduct(productID)
	})
}

func (s *TagService) apply(ctx context.Context, id string, change func(context.Context, *tag.Tag) error) (*TagResponse, error) {
	var t *tag.Tag
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		t, err = s.tagRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := change(ctx, t); err != nil {
			return err
		}
		if err := s.tagRepo.Save(ctx, t); err != nil {
			return err
		}
		uow.RegisterDirty(t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toTagResponse(t), nil
}
