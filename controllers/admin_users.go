package controllers

import (
	"github.com/Govind-619/CocoMart/models"
	"github.com/Govind-619/CocoMart/services"
	"github.com/Govind-619/CocoMart/utils"
	"github.com/gin-gonic/gin"
)

// GetUsers lists accounts, optionally filtered with ?role=
func (ctl *Controller) GetUsers(c *gin.Context) {
	utils.LogInfo("GetUsers called")

	users, err := ctl.svc.Users.List(c.Request.Context(), c.Query("role"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Users retrieved successfully", gin.H{"users": users, "total": len(users)})
}

// GetDrivers lists driver accounts
func (ctl *Controller) GetDrivers(c *gin.Context) {
	utils.LogInfo("GetDrivers called")

	drivers, err := ctl.svc.Users.List(c.Request.Context(), models.RoleDriver)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Drivers retrieved successfully", gin.H{"drivers": drivers})
}

func (ctl *Controller) CreateUser(c *gin.Context) {
	utils.LogInfo("CreateUser called")

	var req services.UserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data", err.Error())
		return
	}

	user, err := ctl.svc.Users.Create(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Created(c, "User created successfully", gin.H{"user": user})
}

func (ctl *Controller) UpdateUser(c *gin.Context) {
	utils.LogInfo("UpdateUser called")

	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req services.UserUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data", err.Error())
		return
	}

	user, err := ctl.svc.Users.Update(c.Request.Context(), id, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "User updated successfully", gin.H{"user": user})
}

func (ctl *Controller) DeleteUser(c *gin.Context) {
	utils.LogInfo("DeleteUser called")

	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if p, ok := caller(c); !ok {
		return
	} else if p.ID == id {
		utils.BadRequest(c, "You cannot delete your own account", nil)
		return
	}

	if err := ctl.svc.Users.Delete(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "User deleted successfully", nil)
}
