package controllers

import (
	"github.com/gin-gonic/gin"

	"travelcms/dto"
	"travelcms/middleware"
	"travelcms/response"
	"travelcms/services"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

func (ctl *AuthController) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err, "body")
		return
	}
	result, err := ctl.service.Login(c.Request.Context(), input)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, result)
}

func (ctl *AuthController) Me(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c)
		return
	}
	user, err := ctl.service.Me(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, user)
}
