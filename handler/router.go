package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mohamadmonzer-a/railwayBackend/middleware"
	"github.com/mohamadmonzer-a/railwayBackend/types"
)

const maxMultipartMemory = 32 << 20

func NewRouter(logger *zap.Logger, uploadHandler *UploadHandler, envHandler *EnvHandler) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = maxMultipartMemory

	router.Use(middleware.TraceMiddleware())
	router.Use(middleware.LoggerMiddleware(logger))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			zap.String("trace_id", c.GetString(middleware.TraceContextKey)),
			zap.Any("panic", recovered),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, types.ErrorResponse{Detail: "Internal server error"})
	}))
	router.Use(NewCorsMiddleware())

	router.GET("/health", envHandler.HealthHandler)
	router.GET("/check_env/", envHandler.CheckEnvHandler)
	router.POST("/upload_pdf/", uploadHandler.UploadPDFHandler)

	return router
}
