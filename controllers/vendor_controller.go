package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Govind-619/CocoMart/models"
	"github.com/Govind-619/CocoMart/services"
	"github.com/Govind-619/CocoMart/utils"
	"github.com/gin-gonic/gin"
)

// GetAvailableCoconuts lists what a vendor can order
func (ctl *Controller) GetAvailableCoconuts(c *gin.Context) {
	utils.LogInfo("GetAvailableCoconuts called")

	items, err := ctl.svc.Catalog.List(c.Request.Context(), true)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Coconuts retrieved successfully", gin.H{"coconuts": items})
}

func (ctl *Controller) PlaceOrder(c *gin.Context) {
	utils.LogInfo("PlaceOrder called")

	p, ok := caller(c)
	if !ok {
		return
	}
	var req services.PlaceOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid order data", err.Error())
		return
	}

	order, err := ctl.svc.Orders.PlaceOrder(c.Request.Context(), p.ID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Created(c, "Order placed successfully", gin.H{"order": order})
}

// GetVendorOrders lists the vendor's orders with their payment state
func (ctl *Controller) GetVendorOrders(c *gin.Context) {
	utils.LogInfo("GetVendorOrders called")

	vendorID, ok := parseID(c, "vendorId")
	if !ok {
		return
	}
	orders, err := ctl.svc.Orders.ListForVendor(c.Request.Context(), vendorID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Orders retrieved successfully", gin.H{"orders": orders})
}

// DownloadInvoice returns the PDF invoice of one of the vendor's orders
func (ctl *Controller) DownloadInvoice(c *gin.Context) {
	utils.LogInfo("DownloadInvoice called")

	vendorID, ok := parseID(c, "vendorId")
	if !ok {
		return
	}
	orderID, ok := parseID(c, "orderId")
	if !ok {
		return
	}

	data, err := ctl.svc.Reports.InvoicePDF(c.Request.Context(), vendorID, orderID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice_%d.pdf", orderID))
	c.Data(http.StatusOK, "application/pdf", data)
}

// MakePaymentRequest records a payment. The gateway method opens a checkout
// instead; the amount is applied once the gateway payment is verified.
type MakePaymentRequest struct {
	OrderID       uint    `json:"order_id" binding:"required"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
}

func (ctl *Controller) MakePayment(c *gin.Context) {
	utils.LogInfo("MakePayment called")

	p, ok := caller(c)
	if !ok {
		return
	}
	var req MakePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid payment data", err.Error())
		return
	}

	method := strings.ToLower(strings.TrimSpace(req.PaymentMethod))
	if m, ok := models.ParsePaymentMethod(method); ok && m == models.PaymentMethodGateway {
		session, err := ctl.svc.Ledger.CreateCheckout(c.Request.Context(), p.ID, req.OrderID, req.Amount)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		utils.Success(c, "Checkout session created", gin.H{"checkout": session})
		return
	}

	payment, err := ctl.svc.Ledger.ApplyPayment(c.Request.Context(), p.ID, req.OrderID, req.Amount, method)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Payment recorded successfully", gin.H{"payment": payment})
}

// CheckoutRequest opens a gateway checkout; a zero amount pays what is due
type CheckoutRequest struct {
	OrderID uint    `json:"order_id" binding:"required"`
	Amount  float64 `json:"amount"`
}

func (ctl *Controller) CreateCheckoutSession(c *gin.Context) {
	utils.LogInfo("CreateCheckoutSession called")

	p, ok := caller(c)
	if !ok {
		return
	}
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid checkout data", err.Error())
		return
	}

	session, err := ctl.svc.Ledger.CreateCheckout(c.Request.Context(), p.ID, req.OrderID, req.Amount)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Checkout session created", gin.H{"checkout": session})
}

func (ctl *Controller) VerifyPayment(c *gin.Context) {
	utils.LogInfo("VerifyPayment called")

	p, ok := caller(c)
	if !ok {
		return
	}
	var req services.GatewayVerification
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid verification data", err.Error())
		return
	}

	payment, err := ctl.svc.Ledger.VerifyGatewayPayment(c.Request.Context(), p.ID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Payment verified successfully", gin.H{"payment": payment})
}
