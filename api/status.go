package api

/**
 * status.go - /status rest api implementation
 */

import (
	"errors"
	"net/http"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/gin-gonic/gin"
	"github.com/vtsd/vtsd/exporter"
	"github.com/vtsd/vtsd/metrics"
	"github.com/vtsd/vtsd/stats"
	"github.com/vtsd/vtsd/utils"
)

/**
 * Renders store reports, optionally caching the result for ttl
 */
type statusHandler struct {
	store *stats.Store

	/* nil when caching is off */
	cache *ristretto.Cache[string, []byte]
	ttl   time.Duration
}

func newStatusHandler(store *stats.Store, cacheTtl string) (*statusHandler, error) {

	h := &statusHandler{
		store: store,
		ttl:   utils.ParseDurationOrDefault(cacheTtl, 0),
	}

	if h.ttl <= 0 {
		return h, nil
	}

	cache, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: 1e3,
		MaxCost:     64 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}

	h.cache = cache

	return h, nil
}

/**
 * Rendered report in format, from cache when fresh enough
 */
func (this *statusHandler) render(format string) ([]byte, error) {

	if this.cache != nil {
		if data, ok := this.cache.Get(format); ok {
			metrics.ReportCacheHit()
			return data, nil
		}
	}

	data, err := exporter.Render(this.store.ExportSnapshot(), format)
	metrics.ReportRender(format, err)
	if err != nil {
		return nil, err
	}

	if this.cache != nil {
		this.cache.SetWithTTL(format, data, int64(len(data)), this.ttl)
	}

	return data, nil
}

/**
 * Attaches /status handlers
 */
func attachStatus(app *gin.RouterGroup, status *statusHandler) {

	/**
	 * Whole report in json, prometheus or text format
	 */
	app.GET("/status", func(c *gin.Context) {

		format := c.DefaultQuery("format", exporter.FormatJSON)

		data, err := status.render(format)
		if errors.Is(err, exporter.ErrUnknownFormat) {
			c.IndentedJSON(http.StatusBadRequest, gin.H{
				"error":   err.Error(),
				"formats": exporter.Formats(),
			})
			return
		}
		if err != nil {
			c.IndentedJSON(http.StatusInternalServerError, err.Error())
			return
		}

		c.Data(http.StatusOK, exporter.ContentType(format), data)
	})

	/**
	 * Entry of one server
	 */
	app.GET("/status/servers/:name", func(c *gin.Context) {

		r := status.store.ExportSnapshot()
		records := r.Server(c.Param("name"))
		if len(records) == 0 {
			c.IndentedJSON(http.StatusNotFound, "Server not found")
			return
		}

		c.IndentedJSON(http.StatusOK, exporter.ServerItems(records)[0])
	})

	/**
	 * Entries of every peer of one upstream
	 */
	app.GET("/status/upstreams/:name", func(c *gin.Context) {

		r := status.store.ExportSnapshot()
		records := r.Upstream(c.Param("name"))
		if len(records) == 0 {
			c.IndentedJSON(http.StatusNotFound, "Upstream not found")
			return
		}

		c.IndentedJSON(http.StatusOK, exporter.UpstreamItems(records))
	})
}
