package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/CPU-commits/Intranet_BSubjects/models"
	"github.com/CPU-commits/Intranet_BSubjects/services"
	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func signToken(t *testing.T, userType string, key string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &services.Claims{
		ID:       "u1",
		UserType: userType,
		Name:     "Name",
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		},
	})
	signed, err := token.SignedString([]byte(key))
	require.NoError(t, err)
	return signed
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET(
		"/protected",
		JWTMiddleware(secret),
		RolesMiddleware([]string{models.DIRECTOR, models.DIRECTIVE}),
		func(c *gin.Context) {
			claims, _ := services.NewClaimsFromContext(c)
			c.String(http.StatusOK, claims.ID)
		},
	)
	return router
}

func request(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestJWTMiddleware(t *testing.T) {
	router := newRouter()

	w := request(router, "Bearer "+signToken(t, models.DIRECTOR, secret))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, request(router, "").Code)
	assert.Equal(t, http.StatusUnauthorized, request(router, "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, request(router, "Bearer not-a-token").Code)
	assert.Equal(t, http.StatusUnauthorized, request(router, "Bearer "+signToken(t, models.DIRECTOR, "other")).Code)
}

func TestRolesMiddleware(t *testing.T) {
	router := newRouter()

	assert.Equal(t, http.StatusOK, request(router, "Bearer "+signToken(t, models.DIRECTIVE, secret)).Code)
	assert.Equal(t, http.StatusUnauthorized, request(router, "Bearer "+signToken(t, models.STUDENT, secret)).Code)
	assert.Equal(t, http.StatusUnauthorized, request(router, "Bearer "+signToken(t, models.TEACHER, secret)).Code)
}
