package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inf7m/hotel-booking-clone/internal/domain"
	"go.opentelemetry.io/otel/trace"
)

const actorKey = "actor"

// ActorFromHeaders builds the authenticated actor from the identity
// headers set by the upstream authenticator. Credentials themselves are
// never checked here; this engine only consumes the result.
func ActorFromHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
			return
		}
		c.Set(actorKey, domain.Actor{
			UserID:   userID,
			Operator: c.GetHeader("X-User-Role") == "admin",
		})
		c.Next()
	}
}

func actorFrom(c *gin.Context) domain.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(domain.Actor); ok {
			return actor
		}
	}
	return domain.Actor{}
}

// AccessLog writes one line per request, with the trace id when the
// request context carries a span.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		traceID := ""
		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.IsValid() {
			traceID = sc.TraceID().String()
		}
		log.Printf("method=%s path=%s status=%d traceID=%s latency=%s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), traceID, time.Since(start))
	}
}
