package handlers

import (
	"net/http"

	"benchracers_backend/internal/middleware"
	"benchracers_backend/internal/services"
	"benchracers_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// CommentHandler - комментарии к записям: /api/explore/comments
type CommentHandler struct {
	*BaseHandler
	commentService services.CommentService
}

func NewCommentHandler(base *BaseHandler, commentService services.CommentService) *CommentHandler {
	return &CommentHandler{
		BaseHandler:    base,
		commentService: commentService,
	}
}

// RegisterRoutes регистрирует маршруты комментариев.
// Чтение доступно анонимно, запись требует аутентификации.
func (h *CommentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	public := rg.Group("/explore/comments")
	public.Use(middleware.OptionalAuthMiddleware())
	{
		public.GET("/:entryId", h.ListComments)
	}

	authed := rg.Group("/explore/comments")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.POST("", h.CreateComment)
		authed.PUT("/:commentId", h.UpdateComment)
		authed.DELETE("/:commentId", h.DeleteComment)
		authed.POST("/:commentId/like", h.ToggleLike)
	}
}

func (h *CommentHandler) ListComments(c *gin.Context) {
	page, limit := ParsePagination(c)

	db := h.GetDB(c)
	resp, err := h.commentService.ListComments(c.Request.Context(), db, h.GetViewerEmail(c), c.Param("entryId"), page, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	email, ok := h.GetAndAuthorizeUser(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	comment, err := h.commentService.CreateComment(c.Request.Context(), db, email, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) UpdateComment(c *gin.Context) {
	email, ok := h.GetAndAuthorizeUser(c)
	if !ok {
		return
	}

	var req dto.UpdateCommentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	comment, err := h.commentService.UpdateComment(c.Request.Context(), db, email, c.Param("commentId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	email, ok := h.GetAndAuthorizeUser(c)
	if !ok {
		return
	}

	db := h.GetDB(c)
	err := h.commentService.DeleteComment(c.Request.Context(), db, email, h.IsEditor(c), c.Param("commentId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted."})
}

func (h *CommentHandler) ToggleLike(c *gin.Context) {
	email, ok := h.GetAndAuthorizeUser(c)
	if !ok {
		return
	}

	db := h.GetDB(c)
	resp, err := h.commentService.ToggleLike(c.Request.Context(), db, email, c.Param("commentId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
