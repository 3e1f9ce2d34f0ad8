package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/srgjo27/tour_booking/internal/core/domain"
)

const internalErrorMessage = "服务器内部错误"

func respondOK(c *gin.Context, payload gin.H) {
	if payload == nil {
		payload = gin.H{}
	}
	payload["success"] = true
	c.JSON(http.StatusOK, payload)
}

func respondFail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success":    false,
		"message":    message,
		"request_id": GetRequestID(c),
	})
}

// respondError maps a domain error kind to a status code.
func respondError(c *gin.Context, log *slog.Logger, err error) {
	switch {
	case domain.IsValidation(err):
		respondFail(c, http.StatusBadRequest, err.Error())
	case domain.IsNotFound(err):
		respondFail(c, http.StatusNotFound, err.Error())
	case domain.IsConflict(err):
		respondFail(c, http.StatusConflict, err.Error())
	default:
		log.Error("request failed", "request_id", GetRequestID(c), "path", c.Request.URL.Path, "error", err)
		respondFail(c, http.StatusInternalServerError, internalErrorMessage)
	}
}
