package handlers

import (
	"net/http"

	"benchracers_backend/internal/middleware"
	"benchracers_backend/internal/services"
	"benchracers_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// ExploreHandler - публичная лента и голоса: /api/explore
type ExploreHandler struct {
	*BaseHandler
	exploreService services.ExploreService
}

func NewExploreHandler(base *BaseHandler, exploreService services.ExploreService) *ExploreHandler {
	return &ExploreHandler{
		BaseHandler:    base,
		exploreService: exploreService,
	}
}

// RegisterRoutes регистрирует маршруты ленты. Просмотр доступен
// анонимно, голоса и жалобы требуют аутентификации.
func (h *ExploreHandler) RegisterRoutes(rg *gin.RouterGroup) {
	explore := rg.Group("/explore")
	explore.Use(middleware.OptionalAuthMiddleware())
	{
		explore.POST("/cars", h.GetFeed)
		explore.GET("/rankings", h.GetRankings)
	}

	authed := rg.Group("/explore")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.POST("/like", h.ToggleUpvote)
		authed.POST("/report", h.ReportEntry)
		authed.GET("/stats", h.GetStats)
	}
}

// GetFeed отдает окно ленты. POST, потому что клиент передает
// списки уже показанных ID, которые не влезают в query string.
func (h *ExploreHandler) GetFeed(c *gin.Context) {
	var req dto.FeedRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	resp, err := h.exploreService.GetFeed(c.Request.Context(), db, h.GetViewerEmail(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ExploreHandler) ToggleUpvote(c *gin.Context) {
	email, ok := h.GetAndAuthorizeUser(c)
	if !ok {
		return
	}

	var req dto.LikeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	resp, err := h.exploreService.ToggleUpvote(c.Request.Context(), db, email, req.CarID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ExploreHandler) ReportEntry(c *gin.Context) {
	email, ok := h.GetAndAuthorizeUser(c)
	if !ok {
		return
	}

	var req dto.ReportRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	if err := h.exploreService.ReportEntry(c.Request.Context(), db, email, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Report submitted."})
}

func (h *ExploreHandler) GetStats(c *gin.Context) {
	email, ok := h.GetAndAuthorizeUser(c)
	if !ok {
		return
	}

	db := h.GetDB(c)
	stats, err := h.exploreService.GetStats(c.Request.Context(), db, email)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *ExploreHandler) GetRankings(c *gin.Context) {
	db := h.GetDB(c)
	rankings, err := h.exploreService.GetRankings(c.Request.Context(), db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, rankings)
}
