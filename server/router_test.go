package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubHandler struct{}

func (stubHandler) Adapt(ctx *gin.Context)       { ctx.JSON(http.StatusOK, gin.H{"handler": "adapt"}) }
func (stubHandler) Publish(ctx *gin.Context)     { ctx.JSON(http.StatusOK, gin.H{"handler": "publish"}) }
func (stubHandler) List(ctx *gin.Context)        { ctx.JSON(http.StatusOK, gin.H{"handler": "list"}) }
func (stubHandler) Get(ctx *gin.Context)         { ctx.JSON(http.StatusOK, gin.H{"handler": "get"}) }
func (stubHandler) Delete(ctx *gin.Context)      { ctx.JSON(http.StatusOK, gin.H{"handler": "delete"}) }
func (stubHandler) GetAuthURL(ctx *gin.Context)  { ctx.JSON(http.StatusOK, gin.H{"handler": "auth"}) }
func (stubHandler) Callback(ctx *gin.Context)    { ctx.JSON(http.StatusOK, gin.H{"handler": "callback"}) }
func (stubHandler) TokenStatus(ctx *gin.Context) { ctx.JSON(http.StatusOK, gin.H{"handler": "token"}) }

func newTestRouter(secretKey string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := stubHandler{}
	return InitiateRouter(h, h, h, h, nil, secretKey)
}

func TestInitiateRouter_Healthz(t *testing.T) {
	router := newTestRouter("")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/healthz", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestInitiateRouter_OAuthRoutesArePublic(t *testing.T) {
	router := newTestRouter("my-secret-key")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/tiktok", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestInitiateRouter_APIRequiresToken(t *testing.T) {
	router := newTestRouter("my-secret-key")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestInitiateRouter_APIOpenWithoutSecret(t *testing.T) {
	router := newTestRouter("")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"handler":"list"`)
}

func TestInitiateRouter_Routes(t *testing.T) {
	router := newTestRouter("")

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/adapt"},
		{http.MethodPost, "/api/publish"},
		{http.MethodGet, "/api/posts/1"},
		{http.MethodDelete, "/api/posts/1"},
		{http.MethodGet, "/api/tiktok/token"},
		{http.MethodGet, "/auth/tiktok/callback"},
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(tc.method, tc.path, nil)
		router.ServeHTTP(w, req)
		assert.Equalf(t, http.StatusOK, w.Code, "%s %s", tc.method, tc.path)
	}
}
