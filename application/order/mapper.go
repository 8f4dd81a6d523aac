package order

import (
	"ordering/domain/order"
)

func toLineRequests(items []LineItemRequest) []order.LineRequest {
	requests := make([]order.LineRequest, len(items))
	for i, item := range items {
		requests[i] = order.LineRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}
	return requests
}

func toOrderResponse(o *order.Order, v order.Valuation) *OrderResponse {
	lines := make([]LineItemResponse, len(v.Lines))
	for i, line := range v.Lines {
		lines[i] = LineItemResponse{
			Product: ProductSummary{
				ID:    line.Product.ID,
				Name:  line.Product.Name,
				Price: line.Product.Price.String(),
			},
			Quantity: line.Quantity,
			SubTotal: line.Subtotal.String(),
		}
	}

	return &OrderResponse{
		ID:          o.ID(),
		Status:      string(o.Status()),
		CreatedOn:   o.CreatedOn(),
		LastUpdated: o.LastUpdated(),
		LineItems:   lines,
		OrderTotal:  v.Total.String(),
	}
}
