package controllers

import (
	"fmt"
	"net/http"

	"github.com/Govind-619/CocoMart/utils"
	"github.com/gin-gonic/gin"
)

func (ctl *Controller) GetPayments(c *gin.Context) {
	utils.LogInfo("GetPayments called")

	payments, err := ctl.svc.Ledger.ListPayments(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Payments retrieved successfully", gin.H{"payments": payments})
}

// UpdatePaymentRequest is the admin override of a payment
type UpdatePaymentRequest struct {
	Status     string   `json:"status" binding:"required"`
	AmountPaid *float64 `json:"amount_paid"`
}

func (ctl *Controller) UpdatePayment(c *gin.Context) {
	utils.LogInfo("UpdatePayment called")

	id, ok := parseID(c, "paymentId")
	if !ok {
		return
	}
	var req UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid status value", err.Error())
		return
	}

	payment, err := ctl.svc.Ledger.AdminSetStatus(c.Request.Context(), id, req.Status, req.AmountPaid)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Payment updated successfully", gin.H{"payment": payment})
}

// ExportPayments downloads every payment as an Excel workbook
func (ctl *Controller) ExportPayments(c *gin.Context) {
	utils.LogInfo("ExportPayments called")

	now := ctl.now()
	data, err := ctl.svc.Reports.PaymentsXLSX(c.Request.Context(), now)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=payments_%s.xlsx", now.Format("20060102")))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	utils.LogInfo("Payments report exported (%d bytes)", len(data))
}
