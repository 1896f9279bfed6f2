package http

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ArnW0lf/ParaJose/usecase"
)

type IPostHandler interface {
	List(ctx *gin.Context)
	Get(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

type PostHandler struct {
	adaptUsecase usecase.IAdaptUsecase
}

func NewPostHandler(uc usecase.IAdaptUsecase) IPostHandler {
	return &PostHandler{adaptUsecase: uc}
}

func (h *PostHandler) List(ctx *gin.Context) {
	posts, err := h.adaptUsecase.ListPosts(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"posts": posts})
}

func (h *PostHandler) Get(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}
	detail, err := h.adaptUsecase.GetPost(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

func (h *PostHandler) Delete(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}
	if err := h.adaptUsecase.DeletePost(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"deleted": id})
}
