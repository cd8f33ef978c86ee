package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"asset-verification-portal/internal/logger"
	"asset-verification-portal/internal/middleware"
	appErrors "asset-verification-portal/pkg/errors"
	"asset-verification-portal/pkg/utils"
)

// respondWithError translates use case errors into HTTP responses. Unmapped
// errors are logged and answered with a generic 500 so internal details never
// leak to clients.
func respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	status := appErrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error("Request failed",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		utils.ErrorResponse(c, status, "Internal server error")
		return
	}

	var appErr *appErrors.AppError
	if errors.As(err, &appErr) {
		utils.ErrorResponse(c, status, appErr.Message)
		return
	}

	utils.ErrorResponse(c, status, err.Error())
}
