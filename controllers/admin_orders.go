package controllers

import (
	"github.com/Govind-619/CocoMart/utils"
	"github.com/gin-gonic/gin"
)

// GetOrders lists every order with its vendor, driver and coconut
func (ctl *Controller) GetOrders(c *gin.Context) {
	utils.LogInfo("GetOrders called")

	orders, err := ctl.svc.Orders.ListAll(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Orders retrieved successfully", gin.H{"orders": orders})
}

// AssignDeliveryRequest hands an order to a driver
type AssignDeliveryRequest struct {
	OrderID  uint `json:"order_id" binding:"required"`
	DriverID uint `json:"driver_id" binding:"required"`
}

func (ctl *Controller) AssignDelivery(c *gin.Context) {
	utils.LogInfo("AssignDelivery called")

	p, ok := caller(c)
	if !ok {
		return
	}
	var req AssignDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "order_id and driver_id are required", err.Error())
		return
	}

	order, delivery, err := ctl.svc.Orders.AssignDelivery(c.Request.Context(), p, req.OrderID, req.DriverID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Delivery assigned successfully", gin.H{"order": order, "delivery": delivery})
}
