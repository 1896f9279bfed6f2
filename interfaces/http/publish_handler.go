package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArnW0lf/ParaJose/domain/dto"
	"github.com/ArnW0lf/ParaJose/domain/model"
	"github.com/ArnW0lf/ParaJose/infrastructure/logger"
	"github.com/ArnW0lf/ParaJose/usecase"
)

type IPublishHandler interface {
	Publish(ctx *gin.Context)
}

type PublishHandler struct {
	publishUsecase usecase.IPublishUsecase
}

func NewPublishHandler(uc usecase.IPublishUsecase) IPublishHandler {
	return &PublishHandler{publishUsecase: uc}
}

// Publish runs one publish attempt for a draft. The HTTP status mirrors the
// attempt outcome: 200 for success or manual action, 502 when the platform
// rejected the attempt.
func (h *PublishHandler) Publish(ctx *gin.Context) {
	var req dto.PublishRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: publication_id is required"})
		return
	}

	result, err := h.publishUsecase.Publish(ctx.Request.Context(), req)
	if err != nil {
		if errors.Is(err, usecase.ErrPublicationNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.GetLogger().WithField("publication_id", req.PublicationID).WithField("error", err.Error()).Error("publish request failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	status := http.StatusOK
	if result.Status == model.StatusError {
		status = http.StatusBadGateway
	}
	ctx.JSON(status, result)
}
