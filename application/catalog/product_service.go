/*
Package catalog Application Layer - products, categories and tags

Every catalog mutation applies the retirement and uniqueness guard:
names are unique per entity type, retirement is one-way, and retired
entities accept no updates and no new associations.
*/
package catalog

import (
	"context"

	"ordering/domain/category"
	"ordering/domain/product"
	"ordering/domain/shared"
	"ordering/pkg/logger"

	"go.uber.org/zap"
)

// ProductService product use cases
type ProductService struct {
	productRepo   product.Repository
	categoryRepo  category.Repository
	productDomain *product.DomainService
	uowFactory    shared.UnitOfWorkFactory
}

func NewProductService(
	productRepo product.Repository,
	categoryRepo category.Repository,
	uowFactory shared.UnitOfWorkFactory,
) *ProductService {
	return &ProductService{
		productRepo:   productRepo,
		categoryRepo:  categoryRepo,
		productDomain: product.NewDomainService(productRepo),
		uowFactory:    uowFactory,
	}
}

// AddProduct creates a product, optionally inside an active category
func (s *ProductService) AddProduct(ctx context.Context, req ProductRequest) (*ProductResponse, error) {
	var p *product.Product
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		p, err = product.NewProduct(toProductDetails(req))
		if err != nil {
			return err
		}
		if err := s.productDomain.EnsureNameAvailable(ctx, p.Name(), ""); err != nil {
			return err
		}

		if req.CategoryID != "" {
			c, err := s.categoryRepo.FindByID(ctx, req.CategoryID)
			if err != nil {
				return err
			}
			if err := c.EnsureAcceptsProducts(); err != nil {
				return err
			}
			if err := p.AssignCategory(c.ID()); err != nil {
				return err
			}
		}

		if err := s.productRepo.Save(ctx, p); err != nil {
			return err
		}
		uow.RegisterNew(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// UpdateProduct replaces name, description and price; renaming onto another product's name conflicts
func (s *ProductService) UpdateProduct(ctx context.Context, id string, req ProductRequest) (*ProductResponse, error) {
	return s.apply(ctx, id, func(ctx context.Context, p *product.Product) error {
		if err := p.EnsureAvailable(); err != nil {
			return err
		}
		if err := s.productDomain.EnsureNameAvailable(ctx, req.Name, p.ID()); err != nil {
			return err
		}
		return p.Update(toProductDetails(req))
	})
}

// RetireProduct is one-way; a second call fails with ErrAlreadyRetired
func (s *ProductService) RetireProduct(ctx context.Context, id string) (*ProductResponse, error) {
	resp, err := s.apply(ctx, id, func(_ context.Context, p *product.Product) error {
		return p.Retire()
	})
	if err != nil {
		return nil, err
	}
	logRetired(ctx, product.EntityName, id)
	return resp, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*ProductResponse, error) {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

func (s *ProductService) ListProducts(ctx context.Context) ([]*ProductResponse, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

func (s *ProductService) apply(ctx context.Context, id string, change func(context.Context, *product.Product) error) (*ProductResponse, error) {
	var p *product.Product
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		p, err = s.productRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := change(ctx, p); err != nil {
			return err
		}
		if err := s.productRepo.Save(ctx, p); err != nil {
			return err
		}
		uow.RegisterDirty(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

func logRetired(ctx context.Context, entity, id string) {
	logger.FromContext(ctx).Info(entity+" retired", zap.String("id", id))
}
