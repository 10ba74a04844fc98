package api

/**
 * events.go - /events rest api implementation
 *
 * Lets an external proxy report finished requests.
 */

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vtsd/vtsd/collector"
	"github.com/vtsd/vtsd/core"
	"github.com/vtsd/vtsd/metrics"
)

/**
 * Batch of events
 */
type eventBatch struct {
	Servers   []core.ServerEvent   `json:"servers"`
	Upstreams []core.UpstreamEvent `json:"upstreams"`
}

/**
 * Attaches /events handlers
 */
func attachEvents(app *gin.RouterGroup, events *collector.Collector) {

	app.POST("/events/server", func(c *gin.Context) {

		var e core.ServerEvent
		if err := c.ShouldBindJSON(&e); err != nil {
			c.IndentedJSON(http.StatusBadRequest, err.Error())
			return
		}

		events.Server(e)
		metrics.ReportEvents("server", 1)

		c.IndentedJSON(http.StatusAccepted, gin.H{"accepted": 1})
	})

	app.POST("/events/upstream", func(c *gin.Context) {

		var e core.UpstreamEvent
		if err := c.ShouldBindJSON(&e); err != nil {
			c.IndentedJSON(http.StatusBadRequest, err.Error())
			return
		}

		events.Upstream(e)
		metrics.ReportEvents("upstream", 1)

		c.IndentedJSON(http.StatusAccepted, gin.H{"accepted": 1})
	})

	app.POST("/events", func(c *gin.Context) {

		var batch eventBatch
		if err := c.ShouldBindJSON(&batch); err != nil {
			c.IndentedJSON(http.StatusBadRequest, err.Error())
			return
		}

		for _, e := range batch.Servers {
			events.Server(e)
		}
		for _, e := range batch.Upstreams {
			events.Upstream(e)
		}

		metrics.ReportEvents("server", len(batch.Servers))
		metrics.ReportEvents("upstream", len(batch.Upstreams))

		c.IndentedJSON(http.StatusAccepted, gin.H{"accepted": len(batch.Servers) + len(batch.Upstreams)})
	})
}
