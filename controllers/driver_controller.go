package controllers

import (
	"github.com/Govind-619/CocoMart/utils"
	"github.com/gin-gonic/gin"
)

// GetAssignedOrders lists the driver's open orders, or delivered ones with
// ?history=true
func (ctl *Controller) GetAssignedOrders(c *gin.Context) {
	utils.LogInfo("GetAssignedOrders called")

	p, ok := caller(c)
	if !ok {
		return
	}
	history := c.Query("history") == "true"

	orders, err := ctl.svc.Orders.ListForDriver(c.Request.Context(), p.ID, history)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Orders retrieved successfully", gin.H{"orders": orders})
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (ctl *Controller) UpdateDeliveryStatus(c *gin.Context) {
	utils.LogInfo("UpdateDeliveryStatus called")

	p, ok := caller(c)
	if !ok {
		return
	}
	orderID, ok := parseID(c, "orderId")
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Status is required", err.Error())
		return
	}

	order, delivery, err := ctl.svc.Orders.UpdateStatus(c.Request.Context(), p, orderID, req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Order status updated", gin.H{"order": order, "delivery": delivery})
}
