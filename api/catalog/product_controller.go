/*
Package catalog - 商品、分类、标签 API 控制器
*/
package catalog

import (
	"ordering/api/ctxutil"
	"ordering/api/response"
	catalogapp "ordering/application/catalog"

	"github.com/gin-gonic/gin"
)

type ProductController struct {
	service *catalogapp.ProductService
}

func NewProductController(service *catalogapp.ProductService) *ProductController {
	return &ProductController{service: service}
}

func (c *ProductController) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/products")
	{
		group.POST("", c.AddProduct)
		group.GET("", c.ListProducts)
		group.GET("/:id", c.GetProduct)
		group.PUT("/:id", c.UpdateProduct)
		group.POST("/:id/retire", c.RetireProduct)
	}
}

// AddProduct POST /api/v1/products
func (c *ProductController) AddProduct(ctx *gin.Context) {
	var req catalogapp.ProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters")
		return
	}

	p, err := c.service.AddProduct(ctxutil.RequestContext(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, p, "product created successfully")
}

func (c *ProductController) ListProducts(ctx *gin.Context) {
	products, err := c.service.ListProducts(ctxutil.RequestContext(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, products, "products retrieved successfully")
}

func (c *ProductController) GetProduct(ctx *gin.Context) {
	p, err := c.service.GetProduct(ctxutil.RequestContext(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, p, "product retrieved successfully")
}

// UpdateProduct PUT /api/v1/products/:id
func (c *ProductController) UpdateProduct(ctx *gin.Context) {
	var req catalogapp.ProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters")
		return
	}

	p, err := c.service.UpdateProduct(ctxutil.RequestContext(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, p, "product updated successfully")
}

// RetireProduct POST /api/v1/products/:id/retire
func (c *ProductController) RetireProduct(ctx *gin.Context) {
	p, err := c.service.RetireProduct(ctxutil.RequestContext(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, p, "product retired successfully")
}
