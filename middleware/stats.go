package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/phuslu/log"
	"github.com/seo-optimizer/content-optimizer/logging"
)

// Stats tracks visitors and per-endpoint request figures, saving them in the
// background every hundred requests.
func Stats(stats *logging.Statistics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		stats.TrackVisitor(c.ClientIP())

		c.Next()

		route := c.FullPath()
		if route == "" {
			return
		}

		if stats.TrackRequest(c.Request.Method+" "+route, time.Since(start), c.Writer.Status() >= 400) {
			go func() {
				if err := stats.Save(); err != nil {
					log.Error().Err(err).Msg("Failed to save statistics")
				}
			}()
		}
	}
}
