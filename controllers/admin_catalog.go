package controllers

import (
	"github.com/Govind-619/CocoMart/services"
	"github.com/Govind-619/CocoMart/utils"
	"github.com/gin-gonic/gin"
)

// GetCoconuts lists the whole catalog, unavailable items included
func (ctl *Controller) GetCoconuts(c *gin.Context) {
	utils.LogInfo("GetCoconuts called")

	items, err := ctl.svc.Catalog.List(c.Request.Context(), false)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Coconuts retrieved successfully", gin.H{"coconuts": items})
}

func (ctl *Controller) CreateCoconut(c *gin.Context) {
	utils.LogInfo("CreateCoconut called")

	var req services.CatalogItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data", err.Error())
		return
	}

	item, err := ctl.svc.Catalog.Create(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Created(c, "Coconut created successfully", gin.H{"coconut": item})
}

func (ctl *Controller) UpdateCoconut(c *gin.Context) {
	utils.LogInfo("UpdateCoconut called")

	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req services.CatalogItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data", err.Error())
		return
	}

	item, err := ctl.svc.Catalog.Update(c.Request.Context(), id, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Coconut updated successfully", gin.H{"coconut": item})
}

func (ctl *Controller) DeleteCoconut(c *gin.Context) {
	utils.LogInfo("DeleteCoconut called")

	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ctl.svc.Catalog.Delete(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Coconut deleted successfully", nil)
}
