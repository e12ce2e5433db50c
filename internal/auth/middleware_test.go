package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"pocket/internal/config"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newProtectedRouter(cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.GET("/protected", AppToken(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func request(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("X-App-Token", token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAppTokenAllowsMatchingToken(t *testing.T) {
	router := newProtectedRouter(&config.Config{AppToken: "app-t0ken"})

	if w := request(router, "app-t0ken"); w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestAppTokenRejectsMissingOrWrongToken(t *testing.T) {
	router := newProtectedRouter(&config.Config{AppToken: "app-t0ken"})

	for _, token := range []string{"", "wrong"} {
		if w := request(router, token); w.Code != http.StatusUnauthorized {
			t.Errorf("token %q: status = %d, want 401", token, w.Code)
		}
	}
}

func TestAppTokenRejectsWhenUnconfigured(t *testing.T) {
	router := newProtectedRouter(&config.Config{})

	if w := request(router, "anything"); w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500 for missing server config", w.Code)
	}
}
