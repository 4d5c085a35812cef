package controllers

import (
	"github.com/gin-gonic/gin"

	"travelcms/constants"
	"travelcms/models"
	"travelcms/response"
	"travelcms/services"
)

// RelationshipController serves the links of one owning kind.
type RelationshipController struct {
	service *services.RelationshipService
	owner   models.Kind
}

func NewRelationshipController(service *services.RelationshipService, owner models.Kind) *RelationshipController {
	return &RelationshipController{service: service, owner: owner}
}

func (ctl *RelationshipController) Register(group *gin.RouterGroup, read, write gin.HandlersChain) {
	group.GET("/:id/relationships", with(read, ctl.Get)...)
	for _, segment := range []string{constants.RelatedPackages, constants.RelatedGroupTrips} {
		group.POST("/:id/"+segment+"/:relatedId", with(write, ctl.Assign)...)
		group.DELETE("/:id/"+segment+"/:relatedId", with(write, ctl.Remove)...)
	}
}

func (ctl *RelationshipController) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	links, err := ctl.service.Get(c.Request.Context(), ctl.owner, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, links)
}

// target resolves the owner id, related kind and related id of the request.
func (ctl *RelationshipController) target(c *gin.Context) (uint, models.Kind, uint, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return 0, "", 0, false
	}
	relatedID, ok := paramID(c, "relatedId")
	if !ok {
		return 0, "", 0, false
	}
	// /<kind>/:id/<segment>/:relatedId
	segment := ""
	if parts := splitPath(c.FullPath()); len(parts) >= 2 {
		segment = parts[len(parts)-2]
	}
	kind, ok := services.RelatedKind(segment)
	if !ok {
		response.NotFound(c, "")
		return 0, "", 0, false
	}
	return id, kind, relatedID, true
}

func (ctl *RelationshipController) Assign(c *gin.Context) {
	id, kind, relatedID, ok := ctl.target(c)
	if !ok {
		return
	}
	links, err := ctl.service.Assign(c.Request.Context(), ctl.owner, id, kind, relatedID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, links)
}

func (ctl *RelationshipController) Remove(c *gin.Context) {
	id, kind, relatedID, ok := ctl.target(c)
	if !ok {
		return
	}
	links, err := ctl.service.Remove(c.Request.Context(), ctl.owner, id, kind, relatedID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, links)
}
