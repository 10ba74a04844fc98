package api

/**
 * public.go - endpoints without auth
 */

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

/**
 * Attaches public handlers
 */
func attachPublic(app *gin.RouterGroup) {

	/**
	 * Simple 200 and OK response
	 */
	app.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
}
