package controllers

import (
	"strings"

	"github.com/Govind-619/CocoMart/models"
	"github.com/Govind-619/CocoMart/utils"
	"github.com/gin-gonic/gin"
)

// ServeWS opens the real-time channel. The bearer token may come from the
// Authorization header or, for browsers, the token query parameter.
func (ctl *Controller) ServeWS(c *gin.Context) {
	utils.LogInfo("ServeWS called")

	token := c.GetHeader("Authorization")
	if token == "" {
		token = c.Query("token")
	}

	var principal *models.Principal
	if strings.TrimSpace(token) != "" {
		user, err := ctl.svc.Identity.Authenticate(c.Request.Context(), token)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		p := user.Principal()
		principal = &p
	} else if !ctl.cfg.Realtime.TrustClientJoin {
		utils.Unauthorized(c, "Authorization token required")
		return
	}

	if err := ctl.hub.ServeWS(c.Writer, c.Request, principal); err != nil {
		// the upgrader has already written the HTTP error
		utils.LogError("WebSocket upgrade failed: %v", err)
	}
}
