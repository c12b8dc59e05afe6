package handler

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/mohamadmonzer-a/railwayBackend/config"
	"github.com/mohamadmonzer-a/railwayBackend/types"
)

const serviceName = "railwayBackend"

type EnvHandler struct {
	getenv func(string) string
}

// NewEnvHandler reads the process environment when getenv is nil.
func NewEnvHandler(getenv func(string) string) *EnvHandler {
	if getenv == nil {
		getenv = os.Getenv
	}
	return &EnvHandler{getenv: getenv}
}

func (h *EnvHandler) CheckEnvHandler(c *gin.Context) {
	c.JSON(http.StatusOK, config.CheckEnv(h.getenv))
}

func (h *EnvHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, types.HealthResponse{OK: true, Service: serviceName})
}
