package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArnW0lf/ParaJose/domain/dto"
	"github.com/ArnW0lf/ParaJose/infrastructure/logger"
	"github.com/ArnW0lf/ParaJose/usecase"
)

type IAdaptHandler interface {
	Adapt(ctx *gin.Context)
}

type AdaptHandler struct {
	adaptUsecase usecase.IAdaptUsecase
}

func NewAdaptHandler(uc usecase.IAdaptUsecase) IAdaptHandler {
	return &AdaptHandler{adaptUsecase: uc}
}

// Adapt generates and persists one draft per platform from the posted content.
func (h *AdaptHandler) Adapt(ctx *gin.Context) {
	var req dto.AdaptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: title and body are required"})
		return
	}

	resp, err := h.adaptUsecase.Adapt(ctx.Request.Context(), req)
	if err != nil {
		logger.GetLogger().WithField("error", err.Error()).Warn("adapt request failed")
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
