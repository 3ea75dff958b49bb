package handlers

import (
	"net/http"

	"benchracers_backend/internal/middleware"
	"benchracers_backend/internal/services"
	"benchracers_backend/internal/services/dto"
	"benchracers_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// GarageHandler - записи текущего пользователя: /api/garage
type GarageHandler struct {
	*BaseHandler
	garageService services.GarageService
}

func NewGarageHandler(base *BaseHandler, garageService services.GarageService) *GarageHandler {
	return &GarageHandler{
		BaseHandler:   base,
		garageService: garageService,
	}
}

// RegisterRoutes регистрирует маршруты гаража, все под AuthMiddleware
func (h *GarageHandler) RegisterRoutes(rg *gin.RouterGroup) {
	garage := rg.Group("/garage")
	garage.Use(middleware.AuthMiddleware())
	{
		garage.GET("/entries", h.ListEntries)
		garage.POST("/entries", h.CreateEntry)
		garage.GET("/entries/:id", h.GetEntry)
		garage.PUT("/entries/:id", h.UpdateEntry)
		garage.DELETE("/entries/:id", h.DeleteEntry)

		garage.GET("/s3/presigned-url", h.GetPresignedURL)
	}
}

func (h *GarageHandler) ListEntries(c *gin.Context) {
	email, ok := h.GetAndAuthorizeUser(c)
	if !ok {
		return
	}

	db := h.GetDB(c)
	entries, err := h.garageService.ListEntries(c.Request.Context(), db, email)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *GarageHandler) GetEntry(c *gin.Context) {
	email, ok := h.GetAndAuthorizeUser(c)
	if !ok {
		return
	}

	db := h.GetDB(c)
	entry, err := h.garageService.GetEntry(c.Request.Context(), db, email, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *GarageHandler) CreateEntry(c *gin.Context) {
	email, ok := h.GetAndAuthorizeUser(c)
	if !ok {
		return
	}

	var req dto.CreateEntryRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	entry, err := h.garageService.CreateEntry(c.Request.Context(), db, email, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *GarageHandler) UpdateEntry(c *gin.Context) {
	email, ok := h.GetAndAuthorizeUser(c)
	if !ok {
		return
	}

	var req dto.UpdateEntryRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	entry, err := h.garageService.UpdateEntry(c.Request.Context(), db, email, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *GarageHandler) DeleteEntry(c *gin.Context) {
	email, ok := h.GetAndAuthorizeUser(c)
	if !ok {
		return
	}

	db := h.GetDB(c)
	if err := h.garageService.DeleteEntry(c.Request.Context(), db, email, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Entry deleted."})
}

// GetPresignedURL выдает URL для прямой загрузки фото:
// GET /garage/s3/presigned-url?fileName=...&fileType=...
func (h *GarageHandler) GetPresignedURL(c *gin.Context) {
	email, ok := h.GetAndAuthorizeUser(c)
	if !ok {
		return
	}

	fileName := c.Query("fileName")
	fileType := c.Query("fileType")
	if fileName == "" || fileType == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("fileName and fileType query parameters are required"))
		return
	}

	resp, err := h.garageService.PresignUpload(c.Request.Context(), email, fileName, fileType)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
