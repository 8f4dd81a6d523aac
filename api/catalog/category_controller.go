package catalog

import (
	"ordering/api/ctxutil"
	"ordering/api/response"
	catalogapp "ordering/application/catalog"

	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	service *catalogapp.CategoryService
}

func NewCategoryController(service *catalogapp.CategoryService) *CategoryController {
	return &CategoryController{service: service}
}

func (c *CategoryController) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/categories")
	{
		group.POST("", c.AddCategory)
		group.GET("", c.ListCategories)
		group.GET("/:id", c.GetCategory)
		group.PUT("/:id", c.UpdateCategory)
		group.POST("/:id/retire", c.RetireCategory)

		group.GET("/:id/products", c.ListCategoryProducts)
		group.POST("/:id/products/:productId", c.AddProduct)
		group.DELETE("/:id/products/:productId", c.RemoveProduct)
	}
}

func (c *CategoryController) AddCategory(ctx *gin.Context) {
	var req catalogapp.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters")
		return
	}

	category, err := c.service.AddCategory(ctxutil.RequestContext(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, category, "category created successfully")
}

func (c *CategoryController) ListCategories(ctx *gin.Context) {
	categories, err := c.service.ListCategories(ctxutil.RequestContext(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, categories, "categories retrieved successfully")
}

func (c *CategoryController) GetCategory(ctx *gin.Context) {
	category, err := c.service.GetCategory(ctxutil.RequestContext(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, category, "category retrieved successfully")
}

func (c *CategoryController) UpdateCategory(ctx *gin.Context) {
	var req catalogapp.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters")
		return
	}

	category, err := c.service.UpdateCategory(ctxutil.RequestContext(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, category, "category updated successfully")
}

func (c *CategoryController) RetireCategory(ctx *gin.Context) {
	category, err := c.service.RetireCategory(ctxutil.RequestContext(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, category, "category retired successfully")
}

// ListCategoryProducts GET /api/v1/categories/:id/products
func (c *CategoryController) ListCategoryProducts(ctx *gin.Context) {
	products, err := c.service.ListCategoryProducts(ctxutil.RequestContext(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, products, "category products retrieved successfully")
}

// AddProduct POST /api/v1/categories/:id/products/:productId
// 商品若已属于其他分类，则移动到该分类
func (c *CategoryController) AddProduct(ctx *gin.Context) {
	p, err := c.service.AddProductToCategory(ctxutil.RequestContext(ctx), ctx.Param("id"), ctx.Param("productId"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, p, "product added to category")
}

// RemoveProduct DELETE /api/v1/categories/:id/products/:productId
func (c *CategoryController) RemoveProduct(ctx *gin.Context) {
	p, err := c.service.RemoveProductFromCategory(ctxutil.RequestContext(ctx), ctx.Param("id"), ctx.Param("productId"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, p, "product removed from category")
}
