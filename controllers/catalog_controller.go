package controllers

import (
	"github.com/gin-gonic/gin"

	"travelcms/dto"
	"travelcms/response"
	"travelcms/services"
)

// CatalogController serves the REST routes of one entity kind. C and U are
// the kind's create and partial update payloads.
type CatalogController[C dto.Creator[T], U dto.Patcher[T], T any, PT services.Entity[T]] struct {
	service *services.CatalogService[T, PT]
}

func NewCatalogController[C dto.Creator[T], U dto.Patcher[T], T any, PT services.Entity[T]](service *services.CatalogService[T, PT]) *CatalogController[C, U, T, PT] {
	return &CatalogController[C, U, T, PT]{service: service}
}

// Register mounts the routes on group. read guards GET routes, write guards
// the rest.
func (ctl *CatalogController[C, U, T, PT]) Register(group *gin.RouterGroup, read, write gin.HandlersChain) {
	group.GET("/", with(read, ctl.List)...)
	group.GET("/slug/:slug", with(read, ctl.GetBySlug)...)
	group.GET("/:id", with(read, ctl.Get)...)
	group.POST("/", with(write, ctl.Create)...)
	group.PUT("/:id", with(write, ctl.Update)...)
	group.DELETE("/:id", with(write, ctl.Delete)...)
	if ctl.service.Kind().HasCover() {
		group.POST("/:id/cover-image", with(write, ctl.SetCover)...)
	}
}

func (ctl *CatalogController[C, U, T, PT]) List(c *gin.Context) {
	query, err := ctl.service.ParseListQuery(c.Query)
	if err != nil {
		response.FromError(c, err)
		return
	}
	items, total, err := ctl.service.List(c.Request.Context(), query)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithTotal(c, items, total)
}

func (ctl *CatalogController[C, U, T, PT]) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	item, err := ctl.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, item)
}

func (ctl *CatalogController[C, U, T, PT]) GetBySlug(c *gin.Context) {
	item, err := ctl.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, item)
}

func (ctl *CatalogController[C, U, T, PT]) Create(c *gin.Context) {
	var request C
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BindError(c, err, "body")
		return
	}
	item := request.NewModel()
	if err := ctl.service.Create(c.Request.Context(), &item); err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, item)
}

func (ctl *CatalogController[C, U, T, PT]) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var request U
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BindError(c, err, "body")
		return
	}
	item, err := ctl.service.Update(c.Request.Context(), id, request)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, item)
}

func (ctl *CatalogController[C, U, T, PT]) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := ctl.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}

func (ctl *CatalogController[C, U, T, PT]) SetCover(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var request dto.SetCoverRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BindError(c, err, "body")
		return
	}
	item, err := ctl.service.SetCover(c.Request.Context(), id, request.ImageID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, item)
}
