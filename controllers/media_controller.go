package controllers

import (
	"github.com/gin-gonic/gin"

	"travelcms/dto"
	"travelcms/response"
	"travelcms/services"
	"travelcms/validator"
)

type MediaController struct {
	service *services.MediaService
}

func NewMediaController(service *services.MediaService) *MediaController {
	return &MediaController{service: service}
}

func (ctl *MediaController) Register(group *gin.RouterGroup, read, write gin.HandlersChain) {
	group.GET("/", with(read, ctl.List)...)
	group.POST("/upload", with(write, ctl.Upload)...)
	group.PUT("/:id", with(write, ctl.Update)...)
	group.DELETE("/:id", with(write, ctl.Delete)...)
}

func (ctl *MediaController) List(c *gin.Context) {
	var query dto.MediaQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BindError(c, err, "query")
		return
	}
	items, err := ctl.service.List(c.Request.Context(), query.EntityType, query.EntityID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, items)
}

func (ctl *MediaController) Upload(c *gin.Context) {
	var form dto.MediaUploadForm
	if err := c.ShouldBind(&form); err != nil {
		response.BindError(c, err, "body")
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		response.ValidationError(c, []validator.FieldError{{Loc: []string{"body", "file"}, Msg: "field required"}})
		return
	}
	src, err := file.Open()
	if err != nil {
		response.BadRequest(c, "could not read uploaded file")
		return
	}
	defer src.Close()

	item, err := ctl.service.Upload(c.Request.Context(), form, file.Filename, src)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, item)
}

func (ctl *MediaController) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var request dto.UpdateMediaRequest
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

func (ctl *MediaController) Delete(c *gin.Context) {
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
