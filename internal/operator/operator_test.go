package operator

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/TonyMalanga/BroadcastControl/config"
	"github.com/TonyMalanga/BroadcastControl/pkg/token"
)

const testSecret = "test-secret"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Operator{}))
	return db
}

func newAuthRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.JWT.Secret = testSecret
	cfg.JWT.ExpiryMinutes = 60
	r := gin.New()
	RegisterOperatorRoutes(r.Group("/api"), db, cfg)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterAndLoginIssuesValidToken(t *testing.T) {
	db := newTestDB(t)
	r := newAuthRouter(t, db)

	w := postJSON(r, "/api/auth/register", `{"username":"courtside","password":"hunter2hunter2","display_name":"Courtside"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(r, "/api/auth/login", `{"username":"courtside","password":"hunter2hunter2"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Data.Token)

	claims, err := token.ValidateJWT(body.Data.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "courtside", claims.Username)
	assert.NotZero(t, claims.OperatorID)

	_, err = token.ValidateJWT(body.Data.Token, "some-other-secret")
	assert.Error(t, err)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	db := newTestDB(t)
	r := newAuthRouter(t, db)

	w := postJSON(r, "/api/auth/register", `{"username":"courtside","password":"hunter2hunter2"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(r, "/api/auth/login", `{"username":"courtside","password":"wrongwrongwrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(r, "/api/auth/login", `{"username":"nobody","password":"hunter2hunter2"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	r := newAuthRouter(t, db)

	w := postJSON(r, "/api/auth/register", `{"username":"courtside","password":"hunter2hunter2"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(r, "/api/auth/register", `{"username":"courtside","password":"anotherpass99"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func middlewareContext(t *testing.T, authHeader string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		c.Request.Header.Set("Authorization", authHeader)
	}
	return c, w
}

func TestAuthMiddlewareResolvesActor(t *testing.T) {
	db := newTestDB(t)
	op := &Operator{Username: "courtside", PasswordHash: "irrelevant"}
	require.NoError(t, NewOperatorRepository(db).Create(op))

	signed, err := token.GenerateJWT(op.ID, op.Username, op.Role, testSecret, 60)
	require.NoError(t, err)

	c, _ := middlewareContext(t, "Bearer "+signed)
	AuthMiddleware(testSecret, db)(c)

	assert.False(t, c.IsAborted())
	assert.Equal(t, "courtside", ActorFromContext(c))
}

func TestAuthMiddlewareRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	mw := AuthMiddleware(testSecret, db)

	c, w := middlewareContext(t, "")
	mw(c)
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	c, w = middlewareContext(t, "Token abc")
	mw(c)
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	signed, err := token.GenerateJWT(7, "courtside", "operator", "some-other-secret", 60)
	require.NoError(t, err)
	c, w = middlewareContext(t, "Bearer "+signed)
	mw(c)
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsRemovedOperator(t *testing.T) {
	db := newTestDB(t)
	op := &Operator{Username: "courtside", PasswordHash: "irrelevant"}
	require.NoError(t, NewOperatorRepository(db).Create(op))

	signed, err := token.GenerateJWT(op.ID, op.Username, op.Role, testSecret, 60)
	require.NoError(t, err)
	require.NoError(t, db.Delete(op).Error)

	c, w := middlewareContext(t, "Bearer "+signed)
	AuthMiddleware(testSecret, db)(c)
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
