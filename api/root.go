package api

/**
 * root.go - / rest api implementation
 */

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vtsd/vtsd/info"
	"github.com/vtsd/vtsd/manager"
)

/**
 * Attaches / handlers
 */
func attachRoot(app *gin.RouterGroup) {

	/**
	 * Process info
	 */
	app.GET("/", func(c *gin.Context) {

		c.IndentedJSON(http.StatusOK, gin.H{
			"pid":           os.Getpid(),
			"time":          time.Now(),
			"startTime":     info.StartTime,
			"uptime":        time.Since(info.StartTime).String(),
			"version":       info.Version,
			"configuration": info.Configuration,
		})
	})

	/**
	 * Dump current config as TOML or JSON
	 */
	app.GET("/dump", func(c *gin.Context) {
		format := c.DefaultQuery("format", "toml")

		data, err := manager.DumpConfig(format)
		if err != nil {
			c.IndentedJSON(http.StatusInternalServerError, err.Error())
			return
		}

		c.String(http.StatusOK, data)
	})

	/**
	 * Configured proxy servers
	 */
	app.GET("/servers", func(c *gin.Context) {
		c.IndentedJSON(http.StatusOK, manager.All())
	})

	app.GET("/servers/:name", func(c *gin.Context) {
		server, ok := manager.Get(c.Param("name"))
		if !ok {
			c.IndentedJSON(http.StatusNotFound, "Server not found")
			return
		}
		c.IndentedJSON(http.StatusOK, server)
	})
}
