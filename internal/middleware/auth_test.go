package middleware

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/Adarsha5421/Grainly-final/internal/models"
	"github.com/Adarsha5421/Grainly-final/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newAuthEnv(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	r := gin.New()
	protected := r.Group("", AuthRequired(testSecret, db))
	protected.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": CurrentUser(c).Username})
	})
	admin := protected.Group("/admin", AdminRequired())
	admin.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, db
}

func issueToken(t *testing.T, db *gorm.DB, username string, isAdmin bool) string {
	t.Helper()
	user := models.User{Username: username, PasswordHash: "x", IsAdmin: isAdmin}
	require.NoError(t, db.Create(&user).Error)
	token, err := util.GenerateToken(testSecret, user.ID, time.Hour)
	require.NoError(t, err)
	return token
}

// Accounts created without an email must not collide on the unique index.
func TestUsersWithoutEmailCoexist(t *testing.T) {
	_, db := newAuthEnv(t)

	require.NoError(t, db.Create(&models.User{Username: "dave", PasswordHash: "x"}).Error)
	require.NoError(t, db.Create(&models.User{Username: "erin", PasswordHash: "x"}).Error)
}

func TestAuthRequired_MissingToken(t *testing.T) {
	r, _ := newAuthEnv(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequired_ValidToken(t *testing.T) {
	r, db := newAuthEnv(t)
	token := issueToken(t, db, "alice", false)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRequired_CookieFallback(t *testing.T) {
	r, db := newAuthEnv(t)
	token := issueToken(t, db, "bob", false)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminRequired(t *testing.T) {
	r, db := newAuthEnv(t)
	userToken := issueToken(t, db, "carol", false)
	adminToken := issueToken(t, db, "root", true)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
