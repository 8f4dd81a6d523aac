package catalog

import (
	"ordering/api/ctxutil"
	"ordering/api/response"
	catalogapp "ordering/application/catalog"

	"github.com/gin-gonic/gin"
)

type TagController struct {
	service *catalogapp.TagService
}

func NewTagController(service *catalogapp.TagService) *TagController {
	return &TagController{service: service}
}

func (c *TagController) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/tags")
	{
		group.POST("", c.AddTag)
		group.GET("", c.ListTags)
		group.GET("/:id", c.GetTag)
		group.PUT("/:id", c.UpdateTag)
		group.POST("/:id/retire", c.RetireTag)

		group.POST("/:id/products/:productId", c.AddProduct)
		group.DELETE("/:id/products/:productId", c.RemoveProduct)
	}
}

func (c *TagController) AddTag(ctx *gin.Context) {
	var req catalogapp.TagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters")
		return
	}

	t, err := c.service.AddTag(ctxutil.RequestContext(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, t, "tag created successfully")
}

func (c *TagController) ListTags(ctx *gin.Context) {
	tags, err := c.service.ListTags(ctxutil.RequestContext(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, tags, "tags retrieved successfully")
}

func (c *TagController) GetTag(ctx *gin.Context) {
	t, err := c.service.GetTag(ctxutil.RequestContext(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, t, "tag retrieved successfully")
}

func (c *TagController) UpdateTag(ctx *gin.Context) {
	var req catalogapp.TagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters")
		return
	}

	t, err := c.service.UpdateTag(ctxutil.RequestContext(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, t, "tag updated successfully")
}

func (c *TagController) RetireTag(ctx *gin.Context) {
	t, err := c.service.RetireTag(ctxutil.RequestContext(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, t, "tag retired successfully")
}

func (c *TagController) AddProduct(ctx *gin.Context) {
	t, err := c.service.AddProductToTag(ctxutil.RequestContext(ctx), ctx.Param("id"), ctx.Param("productId"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, t, "product tagged")
}

func (c *TagController) RemoveProduct(ctx *gin.Context) {
	t, err := c.service.RemoveProductFromTag(ctxutil.RequestContext(ctx), ctx.Param("id"), ctx.Param("productId"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, t, "product untagged")
}
