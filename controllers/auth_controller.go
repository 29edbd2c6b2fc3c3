package controllers

import (
	"github.com/Govind-619/CocoMart/services"
	"github.com/Govind-619/CocoMart/utils"
	"github.com/gin-gonic/gin"
)

// Register creates a vendor or driver account and logs it in
func (ctl *Controller) Register(c *gin.Context) {
	utils.LogInfo("Register called")

	var req services.UserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data", err.Error())
		return
	}

	result, err := ctl.svc.Identity.Register(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Created(c, "User registered successfully", result)
}

// Login exchanges credentials for a bearer token
func (ctl *Controller) Login(c *gin.Context) {
	utils.LogInfo("Login called")

	var req services.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Email and password are required", err.Error())
		return
	}

	result, err := ctl.svc.Identity.Login(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Login successful", result)
}
