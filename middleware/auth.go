package middleware

import (
	"context"
	"strconv"

	"github.com/Govind-619/CocoMart/models"
	"github.com/Govind-619/CocoMart/utils"
	"github.com/gin-gonic/gin"
)

// Authenticator resolves a bearer token to an account
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// AuthMiddleware requires a valid bearer token and stores the account and
// its principal in the context
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.LogError("Missing Authorization header on %s", c.Request.URL.Path)
			utils.Unauthorized(c, "Please login for access")
			c.Abort()
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), authHeader)
		if err != nil {
			utils.LogError("Authentication failed: %v", err)
			utils.RespondError(c, err)
			c.Abort()
			return
		}

		c.Set(utils.ContextUserKey, *user)
		c.Set(utils.ContextPrincipalKey, user.Principal())
		utils.LogDebug("User %d (%s) authenticated", user.ID, user.Role)
		c.Next()
	}
}

// RoleMiddleware lets through only principals holding one of roles
func RoleMiddleware(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			utils.Unauthorized(c, "Please login for access")
			c.Abort()
			return
		}
		for _, r := range roles {
			if principal.Role == r {
				c.Next()
				return
			}
		}
		utils.LogError("User %d with role %s denied access to %s", principal.ID, principal.Role, c.Request.URL.Path)
		utils.Forbidden(c, "Access denied")
		c.Abort()
	}
}

func AdminOnly() gin.HandlerFunc  { return RoleMiddleware(models.RoleAdmin) }
func VendorOnly() gin.HandlerFunc { return RoleMiddleware(models.RoleVendor) }
func DriverOnly() gin.HandlerFunc { return RoleMiddleware(models.RoleDriver) }

// SelfOnly requires the :param path segment to be the caller's own id
func SelfOnly(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			utils.Unauthorized(c, "Please login for access")
			c.Abort()
			return
		}
		id, err := strconv.ParseUint(c.Param(param), 10, 64)
		if err != nil {
			utils.BadRequest(c, "Invalid "+param, nil)
			c.Abort()
			return
		}
		if uint(id) != principal.ID {
			utils.Forbidden(c, "You can only access your own records")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetPrincipal returns the authenticated caller
func GetPrincipal(c *gin.Context) (models.Principal, bool) {
	v, exists := c.Get(utils.ContextPrincipalKey)
	if !exists {
		return models.Principal{}, false
	}
	p, ok := v.(models.Principal)
	return p, ok
}

// GetUser returns the authenticated account
func GetUser(c *gin.Context) (models.User, bool) {
	v, exists := c.Get(utils.ContextUserKey)
	if !exists {
		return models.User{}, false
	}
	u, ok := v.(models.User)
	return u, ok
}
