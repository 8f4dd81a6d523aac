package catalog

import (
	"ordering/domain/category"
	"ordering/domain/product"
	"ordering/domain/shared"
	"ordering/domain/tag"
)

func toProductDetails(req ProductRequest) product.Details {
	return product.Details{
		Name:        req.Name,
		Description: req.Description,
		Price:       shared.NewMoney(req.Price),
	}
}

func toProductResponse(p *product.Product) *ProductResponse {
	return &ProductResponse{
		ID:          p.ID(),
		Name:        p.Name(),
		Description: p.Description(),
		Price:       p.Price().String(),
		CategoryID:  p.CategoryID(),
		Retired:     p.IsRetired(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}

func toProductResponses(products []*product.Product) []*ProductResponse {
	responses := make([]*ProductResponse, len(products))
	for i, p := range products {
		responses[i] = toProductResponse(p)
	}
	return responses
}

func toCategoryResponse(c *category.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:          c.ID(),
		Name:        c.Name(),
		Description: c.Description(),
		Retired:     c.IsRetired(),
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	}
}

func toTagResponse(t *tag.Tag) *TagResponse {
	return &TagResponse{
		ID:          t.ID(),
		Name:        t.Name(),
		Description: t.Description(),
		ProductIDs:  t.ProductIDs(),
		Retired:     t.IsRetired(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
}
