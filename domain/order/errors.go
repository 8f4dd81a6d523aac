/*
Package order - 订单领域错误定义

所有订单错误都基于 shared.DomainError：
  - errors.Is(err, shared.ErrConflict) 判断错误分类（映射 HTTP 状态码）
  - errors.Is(err, ErrOrderCancelled) 等判断具体原因
*/
package order

import (
	"errors"
	"fmt"
	"strings"

	"ordering/domain/shared"
)

const (
	EntityName     = "order"
	lineItemEntity = "line item"
)

var (
	// ErrOrderCancelled 已取消的订单不可修改，也不能再次取消
	ErrOrderCancelled = errors.New("order is cancelled")

	// ErrOrderCompleted 已完成的订单不可修改
	ErrOrderCompleted = errors.New("order is complete")

	// ErrDuplicateLineItem 同一商品在篮子中只能有一行
	ErrDuplicateLineItem = errors.New("duplicate line item")
)

// NewOrderNotFoundError 订单未找到
func NewOrderNotFoundError(orderID string) error {
	return shared.NewNotFoundError(EntityName, orderID)
}

func newTerminalStateError(orderID string, status Status) error {
	if status == StatusCancelled {
		return shared.NewReasonedConflictError(EntityName, ErrOrderCancelled,
			fmt.Sprintf("order %s is cancelled and can no longer be changed", orderID))
	}
	return shared.NewReasonedConflictError(EntityName, ErrOrderCompleted,
		fmt.Sprintf("order %s is complete and can no longer be changed", orderID))
}

func newDuplicateLinesError(productIDs []string) error {
	return shared.NewReasonedConflictError(lineItemEntity, ErrDuplicateLineItem,
		"products requested more than once: ["+strings.Join(productIDs, ", ")+"]", productIDs...)
}

func newLineExistsError(productID string) error {
	return shared.NewReasonedConflictError(lineItemEntity, ErrDuplicateLineItem,
		fmt.Sprintf("order already has a line item for product %s", productID), productID)
}

func newLineNotFoundError(orderID, productID string) error {
	return shared.NewNotMemberError(lineItemEntity+" for product", productID, EntityName, orderID)
}

func newInvalidQuantityError(productID string, quantity int) error {
	return shared.NewValidationError(lineItemEntity, "quantity",
		fmt.Sprintf("quantity for product %s must be at least 1, got %d", productID, quantity))
}
