package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Govind-619/CocoMart/models"
	"github.com/Govind-619/CocoMart/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubAuth map[string]models.User

func (s stubAuth) Authenticate(_ context.Context, token string) (*models.User, error) {
	u, ok := s[token]
	if !ok {
		return nil, utils.UnauthorizedError("Invalid or expired token", nil)
	}
	return &u, nil
}

func account(id uint, role string) models.User {
	u := models.User{Role: role}
	u.ID = id
	return u
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	auth := stubAuth{
		"Bearer vendor": account(5, models.RoleVendor),
		"Bearer admin":  account(1, models.RoleAdmin),
	}
	ok := func(c *gin.Context) {
		p, _ := GetPrincipal(c)
		u, _ := GetUser(c)
		c.JSON(http.StatusOK, gin.H{"id": p.ID, "role": p.Role, "user": u.ID})
	}

	r := gin.New()
	r.Use(AuthMiddleware(auth))
	r.GET("/admin", AdminOnly(), ok)
	r.GET("/vendor/:vendorId", VendorOnly(), SelfOnly("vendorId"), ok)
	r.GET("/driver", DriverOnly(), ok)
	r.GET("/any", ok)
	return r
}

func get(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter()

	assert.Equal(t, http.StatusUnauthorized, get(r, "/any", "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/any", "Bearer forged").Code)

	w := get(r, "/any", "Bearer vendor")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":5,"role":"vendor","user":5}`, w.Body.String())
}

func TestRoleMiddleware(t *testing.T) {
	r := newRouter()

	assert.Equal(t, http.StatusOK, get(r, "/admin", "Bearer admin").Code)
	assert.Equal(t, http.StatusForbidden, get(r, "/admin", "Bearer vendor").Code)
	assert.Equal(t, http.StatusForbidden, get(r, "/driver", "Bearer vendor").Code)
	assert.Equal(t, http.StatusForbidden, get(r, "/vendor/1", "Bearer admin").Code)
}

func TestSelfOnly(t *testing.T) {
	r := newRouter()

	assert.Equal(t, http.StatusOK, get(r, "/vendor/5", "Bearer vendor").Code)
	assert.Equal(t, http.StatusForbidden, get(r, "/vendor/6", "Bearer vendor").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/vendor/abc", "Bearer vendor").Code)
}

func TestRoleMiddlewareWithoutPrincipal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", AdminOnly(), func(c *gin.Context) { c.Status(http.StatusOK) })
	assert.Equal(t, http.StatusUnauthorized, get(r, "/admin", "").Code)
}
