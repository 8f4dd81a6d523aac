package catalog

import (
	"context"

	"ordering/domain/category"
	"ordering/domain/product"
	"ordering/domain/shared"
)

// CategoryService category use cases. Membership lives on product.categoryID,
// so adding or removing a product saves the product, not the category.
type CategoryService struct {
	categoryRepo   category.Repository
	productRepo    product.Repository
	categoryDomain *category.DomainService
	uowFactory     shared.UnitOfWorkFactory
}

func NewCategoryService(
	categoryRepo category.Repository,
	productRepo product.Repository,
	uowFactory shared.UnitOfWorkFactory,
) *CategoryService {
	return &CategoryService{
		categoryRepo:   categoryRepo,
		productRepo:    productRepo,
		categoryDomain: category.NewDomainService(categoryRepo),
		uowFactory:     uowFactory,
	}
}

func (s *CategoryService) AddCategory(ctx context.Context, req CategoryRequest) (*CategoryResponse, error) {
	var c *category.Category
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		c, err = category.NewCategory(req.Name, req.Description)
		if err != nil {
			return err
		}
		if err := s.categoryDomain.EnsureNameAvailable(ctx, c.Name(), ""); err != nil {
			return err
		}
		if err := s.categoryRepo.Save(ctx, c); err != nil {
			return err
		}
		uow.RegisterNew(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id string, req CategoryRequest) (*CategoryResponse, error) {
	return s.apply(ctx, id, func(ctx context.Context, c *category.Category) error {
		if err := c.EnsureAvailable(); err != nil {
			return err
		}
		if err := s.categoryDomain.EnsureNameAvailable(ctx, req.Name, c.ID()); err != nil {
			return err
		}
		return c.Update(req.Name, req.Description)
	})
}

func (s *CategoryService) RetireCategory(ctx context.Context, id string) (*CategoryResponse, error) {
	resp, err := s.apply(ctx, id, func(_ context.Context, c *category.Category) error {
		return c.Retire()
	})
	if err != nil {
		return nil, err
	}
	logRetired(ctx, category.EntityName, id)
	return resp, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, id string) (*CategoryResponse, error) {
	c, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]*CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]*CategoryResponse, len(categories))
	for i, c := range categories {
		responses[i] = toCategoryResponse(c)
	}
	return responses, nil
}

// AddProductToCategory moves an active product into an active category
func (s *CategoryService) AddProductToCategory(ctx context.Context, categoryID, productID string) (*ProductResponse, error) {
	return s.changeMembership(ctx, categoryID, productID, func(c *category.Category, p *product.Product) error {
		if err := c.EnsureAcceptsProducts(); err != nil {
			return err
		}
		return p.AssignCategory(c.ID())
	})
}

// RemoveProductFromCategory is allowed even when either side is retired
func (s *CategoryService) RemoveProductFromCategory(ctx context.Context, categoryID, productID string) (*ProductResponse, error) {
	return s.changeMembership(ctx, categoryID, productID, func(c *category.Category, p *product.Product) error {
		return p.UnassignCategory(c.ID())
	})
}

// ListCategoryProducts lists current members, retired ones included
func (s *CategoryService) ListCategoryProducts(ctx context.Context, categoryID string) ([]*ProductResponse, error) {
	if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
		return nil, err
	}
	products, err := s.productRepo.FindByCategoryID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

func (s *CategoryService) changeMembership(
	ctx context.Context,
	categoryID, productID string,
	change func(*category.Category, *product.Product) error,
) (*ProductResponse, error) {
	var p *product.Product
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		c, err := s.categoryRepo.FindByID(ctx, categoryID)
		if err != nil {
			return err
		}
		p, err = s.productRepo.FindByID(ctx, productID)
		if err != nil {
			return err
		}
		if err := change(c, p); err != nil {
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

func (s *CategoryService) apply(ctx context.Context, id string, change func(context.Context, *category.Category) error) (*CategoryResponse, error) {
	var c *category.Category
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		c, err = s.categoryRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := change(ctx, c); err != nil {
			return err
		}
		if err := s.categoryRepo.Save(ctx, c); err != nil {
			return err
		}
		uow.RegisterDirty(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}
