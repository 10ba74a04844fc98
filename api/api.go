package api

/**
 * api.go - rest api implementation
 */

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/vtsd/vtsd/collector"
	"github.com/vtsd/vtsd/config"
	"github.com/vtsd/vtsd/logging"
	"github.com/vtsd/vtsd/stats"
)

/* gin app */
var app *gin.Engine

/**
 * Initialize module
 */
func init() {
	gin.SetMode(gin.ReleaseMode)
}

/**
 * Starts REST API server
 */
func Start(cfg config.ApiConfig, store *stats.Store, events *collector.Collector) {

	var log = logging.For("api")

	if !cfg.Enabled {
		log.Info("API disabled")
		return
	}

	log.Info("Starting up API")

	router, err := newRouter(cfg, store, events)
	if err != nil {
		log.Fatal(err)
	}

	app = router

	go func() {
		if err := app.Run(cfg.Bind); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()
}

/**
 * Builds gin engine with all handlers attached
 */
func newRouter(cfg config.ApiConfig, store *stats.Store, events *collector.Collector) (*gin.Engine, error) {

	log := logging.For("api")

	router := gin.New()
	router.Use(gin.Recovery())

	if cfg.Cors {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = true
		corsConfig.AddAllowHeaders("Authorization")
		router.Use(cors.New(corsConfig))
		log.Info("API CORS enabled")
	}

	/* attach endpoints that don't require auth */
	attachPublic(router.Group("/"))

	group := router.Group("/")

	if cfg.BasicAuth != nil {
		log.Info("Using HTTP Basic Auth")
		group.Use(gin.BasicAuth(gin.Accounts{
			cfg.BasicAuth.Login: cfg.BasicAuth.Password,
		}))
	}

	attachRoot(group)
	attachEvents(group, events)

	if config.Enabled(cfg.Status, true) {
		status, err := newStatusHandler(store, cfg.CacheTtl)
		if err != nil {
			return nil, err
		}
		attachStatus(group, status)
	} else {
		log.Info("Status endpoint disabled")
	}

	return router, nil
}
