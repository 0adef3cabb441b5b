package api

import (
	"net/http"
	"time"

	"github.com/GiovanniPerreon/gacha-arena/internal/constants"
	"github.com/GiovanniPerreon/gacha-arena/internal/version"

	"github.com/gin-gonic/gin"
)

var startedAt = time.Now()

// Home is the keep-alive page hit by external uptime monitors.
func Home(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte("<html><body><h1>Arena is alive!</h1></body></html>"))
}

// Status reports process health and uptime as JSON.
func Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		constants.JSONKeyStatus: "ok",
		"uptime":                time.Since(startedAt).Round(time.Second).String(),
		"version":               version.Version,
	})
}

// Version returns build and VCS metadata injected at build time.
func Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version": version.Version,
		"commit":  version.Commit,
		"date":    version.Date,
		"dirty":   version.Dirty,
	})
}
