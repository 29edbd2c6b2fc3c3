package controllers

import (
	"net/http"

	"github.com/Govind-619/CocoMart/config"
	"github.com/Govind-619/CocoMart/utils"
	"github.com/gin-gonic/gin"
)

func (ctl *Controller) Health(c *gin.Context) {
	dbUp := config.Ping(ctl.db)
	data := gin.H{
		"database":    "up",
		"connections": 0,
		"online":      0,
	}
	if ctl.hub != nil {
		data["connections"] = ctl.hub.ConnCount()
		data["online"] = ctl.hub.Presence().Len()
	}

	if !dbUp {
		data["database"] = "down"
		c.JSON(http.StatusServiceUnavailable, utils.StandardResponse{
			Success: false,
			Message: "Database unavailable",
			Data:    data,
		})
		return
	}
	utils.Success(c, "OK", data)
}
