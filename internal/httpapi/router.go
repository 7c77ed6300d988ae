package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const healthBody = "Discord bot is running"

// NewRouter serves the container liveness probe. It answers regardless of
// the gateway connection state, so operators can tell "process alive" from
// "bot connected". No request logging: probes fire every few seconds.
func NewRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/", health)
	r.GET("/healthz", health)
	return r
}

func health(c *gin.Context) {
	c.String(http.StatusOK, healthBody)
}
