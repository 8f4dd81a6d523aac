package order

import "ordering/domain/shared"

// LineValuation is one priced basket row
type LineValuation struct {
	Product  CatalogProduct
	Quantity int
	// Subtotal is exact; truncate only for display
	Subtotal shared.Money
}

// Valuation is a priced basket
type Valuation struct {
	Lines []LineValuation
	// Total is the sum of exact subtotals truncated to two decimals once
	Total shared.Money
}

// Valuate prices items with live product prices.
// Products are never deleted, so a missing product means the catalog is inconsistent.
func Valuate(items []LineItem, products map[string]CatalogProduct) (Valuation, error) {
	lines := make([]LineValuation, 0, len(items))
	sum := shared.ZeroMoney()
	for _, item := range items {
		p, ok := products[item.productID]
		if !ok {
			return Valuation{}, shared.NewNotFoundError("product", item.productID)
		}
		subtotal := p.Price.Times(item.quantity)
		sum = sum.Add(subtotal)
		lines = append(lines, LineValuation{
			Product:  p,
			Quantity: item.quantity,
			Subtotal: subtotal,
		})
	}
	return Valuation{Lines: lines, Total: sum.Truncated()}, nil
}
