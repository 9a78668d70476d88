package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/inf7m/hotel-booking-clone/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestActorFromHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testCases := []struct {
		name      string
		userID    string
		role      string
		wantCode  int
		wantActor domain.Actor
	}{
		{"ordinary user", "user-1", "", http.StatusOK, domain.Actor{UserID: "user-1"}},
		{"operator", "op-1", "admin", http.StatusOK, domain.Actor{UserID: "op-1", Operator: true}},
		{"missing identity", "", "", http.StatusUnauthorized, domain.Actor{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got domain.Actor
			router := gin.New()
			router.GET("/probe", ActorFromHeaders(), func(c *gin.Context) {
				got = actorFrom(c)
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/probe", nil)
			if tc.userID != "" {
				req.Header.Set("X-User-ID", tc.userID)
			}
			if tc.role != "" {
				req.Header.Set("X-User-Role", tc.role)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.wantCode, w.Code)
			if tc.wantCode == http.StatusOK {
				assert.Equal(t, tc.wantActor, got)
			}
		})
	}
}
