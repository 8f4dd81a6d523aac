/*
Package order - 订单 API 控制器

错误处理原则:
1. 参数绑定错误: response.HandleError 直接返回 400
2. 业务错误: response.HandleAppError 通过 errors.FromDomainError 映射状态码
*/
package order

import (
	"ordering/api/ctxutil"
	"ordering/api/response"
	orderapp "ordering/application/order"

	"github.com/gin-gonic/gin"
)

// Controller 订单控制器
type Controller struct {
	orderService *orderapp.ApplicationService
}

func NewController(orderService *orderapp.ApplicationService) *Controller {
	return &Controller{orderService: orderService}
}

// RegisterRoutes 注册订单路由
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	orderGroup := router.Group("/orders")
	{
		orderGroup.POST("", c.CreateOrder)
		orderGroup.GET("", c.ListOrders)
		orderGroup.GET("/:id", c.GetOrder)
		orderGroup.PUT("/:id", c.UpdateOrder)
		orderGroup.DELETE("/:id", c.CancelOrder)
		orderGroup.POST("/:id/complete", c.CompleteOrder)

		orderGroup.POST("/:id/lineitems/:productId", c.AddLineItem)
		orderGroup.PUT("/:id/lineitems/:productId", c.UpdateLineItem)
		orderGroup.DELETE("/:id/lineitems/:productId", c.RemoveLineItem)
	}
}

// CreateOrder POST /api/v1/orders
func (c *Controller) CreateOrder(ctx *gin.Context) {
	var req orderapp.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters")
		return
	}

	order, err := c.orderService.AddOrder(ctxutil.RequestContext(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, order, "order created successfully")
}

// ListOrders GET /api/v1/orders
func (c *Controller) ListOrders(ctx *gin.Context) {
	orders, err := c.orderService.ListOrders(ctxutil.RequestContext(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, orders, "orders retrieved successfully")
}

// GetOrder GET /api/v1/orders/:id
func (c *Controller) GetOrder(ctx *gin.Context) {
	order, err := c.orderService.GetOrder(ctxutil.RequestContext(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, order, "order retrieved successfully")
}

// UpdateOrder PUT /api/v1/orders/:id
// 整体替换篮子，请求中未出现的商品行被删除
func (c *Controller) UpdateOrder(ctx *gin.Context) {
	var req orderapp.UpdateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters")
		return
	}

	order, err := c.orderService.UpdateOrder(ctxutil.RequestContext(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, order, "order updated successfully")
}

// CancelOrder DELETE /api/v1/orders/:id
func (c *Controller) CancelOrder(ctx *gin.Context) {
	if err := c.orderService.CancelOrder(ctxutil.RequestContext(ctx), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, nil, "order cancelled successfully")
}

// CompleteOrder POST /api/v1/orders/:id/complete
func (c *Controller) CompleteOrder(ctx *gin.Context) {
	if err := c.orderService.CompleteOrder(ctxutil.RequestContext(ctx), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, nil, "order completed successfully")
}

// AddLineItem POST /api/v1/orders/:id/lineitems/:productId
func (c *Controller) AddLineItem(ctx *gin.Context) {
	var req orderapp.LineItemQuantityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters")
		return
	}

	order, err := c.orderService.AddLineItem(ctxutil.RequestContext(ctx), ctx.Param("id"), ctx.Param("productId"), req.Quantity)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, order, "line item added successfully")
}

// UpdateLineItem PUT /api/v1/orders/:id/lineitems/:productId
func (c *Controller) UpdateLineItem(ctx *gin.Context) {
	var req orderapp.LineItemQuantityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters")
		return
	}

	order, err := c.orderService.UpdateLineItem(ctxutil.RequestContext(ctx), ctx.Param("id"), ctx.Param("productId"), req.Quantity)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, order, "line item updated successfully")
}

// RemoveLineItem DELETE /api/v1/orders/:id/lineitems/:productId
func (c *Controller) RemoveLineItem(ctx *gin.Context) {
	order, err := c.orderService.RemoveLineItem(ctxutil.RequestContext(ctx), ctx.Param("id"), ctx.Param("productId"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, order, "line item removed successfully")
}
