package order

import "time"

// LineItemRequest is one (product, quantity) pair of a basket request.
// Quantity is validated by the domain so every quantity error reads the same.
type LineItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// CreateOrderRequest 创建订单，篮子可以为空
type CreateOrderRequest struct {
	LineItems []LineItemRequest `json:"line_items" binding:"dive"`
}

// UpdateOrderRequest 整体替换篮子
type UpdateOrderRequest struct {
	LineItems []LineItemRequest `json:"line_items" binding:"dive"`
}

// LineItemQuantityRequest 单行新增或修改数量
type LineItemQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// OrderResponse 订单返回模型，金额均为两位小数字符串
type OrderResponse struct {
	ID          string             `json:"id"`
	Status      string             `json:"status"`
	CreatedOn   time.Time          `json:"created_on"`
	LastUpdated time.Time          `json:"last_updated"`
	LineItems   []LineItemResponse `json:"line_items"`
	OrderTotal  string             `json:"order_total"`
}

// LineItemResponse 订单行返回模型
type LineItemResponse struct {
	Product  ProductSummary `json:"product"`
	Quantity int            `json:"quantity"`
	SubTotal string         `json:"sub_total"`
}

// ProductSummary 订单行中的商品快照（读时获取，非下单时冻结）
type ProductSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
}
