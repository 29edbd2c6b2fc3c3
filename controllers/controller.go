package controllers

import (
	"strconv"
	"time"

	"github.com/Govind-619/CocoMart/config"
	"github.com/Govind-619/CocoMart/middleware"
	"github.com/Govind-619/CocoMart/models"
	"github.com/Govind-619/CocoMart/realtime"
	"github.com/Govind-619/CocoMart/services"
	"github.com/Govind-619/CocoMart/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Controller holds what the HTTP handlers need
type Controller struct {
	svc *services.Services
	hub *realtime.Hub
	db  *gorm.DB
	cfg *config.Config
	now func() time.Time
}

func New(svc *services.Services, hub *realtime.Hub, db *gorm.DB, cfg *config.Config) *Controller {
	return &Controller{svc: svc, hub: hub, db: db, cfg: cfg, now: time.Now}
}

// Identity is the token authenticator used by the auth middleware
func (ctl *Controller) Identity() middleware.Authenticator {
	return ctl.svc.Identity
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		utils.BadRequest(c, "Invalid "+param, nil)
		return 0, false
	}
	return uint(id), true
}

// caller returns the authenticated principal or writes a 401
func caller(c *gin.Context) (models.Principal, bool) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.Unauthorized(c, "Please login for access")
	}
	return p, ok
}
