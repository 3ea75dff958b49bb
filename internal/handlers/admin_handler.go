package handlers

import (
	"net/http"

	"benchracers_backend/internal/middleware"
	"benchracers_backend/internal/repositories"
	"benchracers_backend/internal/services"
	"benchracers_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// AdminHandler - маршруты редакторов: /api/admin
type AdminHandler struct {
	*BaseHandler
	adminService services.AdminService
	userRepo     repositories.UserRepository
}

func NewAdminHandler(base *BaseHandler, adminService services.AdminService, userRepo repositories.UserRepository) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  base,
		adminService: adminService,
		userRepo:     userRepo,
	}
}

// RegisterRoutes регистрирует админ-маршруты. EditorMiddleware
// перепроверяет флаг редактора по базе на каждый запрос.
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.EditorMiddleware(h.userRepo))
	{
		admin.GET("/users", h.ListUsers)
		admin.PUT("/users/:email", h.UpdateUser)
		admin.DELETE("/users/:email", h.DeleteUser)

		admin.GET("/entries", h.ListEntries)
		admin.DELETE("/entries/:id", h.DeleteEntry)

		admin.DELETE("/photos/:id", h.DeletePhoto)
		admin.POST("/photos/:id/main", h.SetMainPhoto)

		admin.GET("/mods", h.ListMods)
		admin.POST("/mods", h.CreateMod)
		admin.PUT("/mods/:id", h.UpdateMod)
		admin.DELETE("/mods/:id", h.DeleteMod)

		admin.GET("/tags", h.ListTags)
		admin.DELETE("/tags/:id", h.DeleteTag)

		admin.GET("/awards", h.ListAwards)
		admin.POST("/awards", h.CreateAward)
		admin.DELETE("/awards/:id", h.DeleteAward)

		admin.GET("/reports", h.ListReports)
		admin.POST("/reports/:id/resolve", h.ResolveReport)

		admin.POST("/reset", h.ResetDatabase)
	}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, limit := ParsePagination(c)

	db := h.GetDB(c)
	resp, err := h.adminService.ListUsers(c.Request.Context(), db, page, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	var req dto.AdminUpdateUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	if err := h.adminService.UpdateUser(c.Request.Context(), db, c.Param("email"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated."})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	db := h.GetDB(c)
	if err := h.adminService.DeleteUser(c.Request.Context(), db, c.Param("email")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted."})
}

func (h *AdminHandler) ListEntries(c *gin.Context) {
	page, limit := ParsePagination(c)

	db := h.GetDB(c)
	resp, err := h.adminService.ListEntries(c.Request.Context(), db, page, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) DeleteEntry(c *gin.Context) {
	db := h.GetDB(c)
	if err := h.adminService.DeleteEntry(c.Request.Context(), db, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Entry deleted."})
}

func (h *AdminHandler) DeletePhoto(c *gin.Context) {
	db := h.GetDB(c)
	if err := h.adminService.DeletePhoto(c.Request.Context(), db, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Photo deleted."})
}

func (h *AdminHandler) SetMainPhoto(c *gin.Context) {
	db := h.GetDB(c)
	if err := h.adminService.SetMainPhoto(c.Request.Context(), db, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Main photo updated."})
}

func (h *AdminHandler) ListMods(c *gin.Context) {
	page, limit := ParsePagination(c)

	db := h.GetDB(c)
	resp, err := h.adminService.ListMods(c.Request.Context(), db, page, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) CreateMod(c *gin.Context) {
	var req dto.CreateModRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	mod, err := h.adminService.CreateMod(c.Request.Context(), db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, mod)
}

func (h *AdminHandler) UpdateMod(c *gin.Context) {
	var req dto.UpdateModRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	mod, err := h.adminService.UpdateMod(c.Request.Context(), db, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, mod)
}

func (h *AdminHandler) DeleteMod(c *gin.Context) {
	db := h.GetDB(c)
	if err := h.adminService.DeleteMod(c.Request.Context(), db, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Mod deleted."})
}

func (h *AdminHandler) ListTags(c *gin.Context) {
	db := h.GetDB(c)
	tags, err := h.adminService.ListTags(c.Request.Context(), db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

func (h *AdminHandler) DeleteTag(c *gin.Context) {
	db := h.GetDB(c)
	if err := h.adminService.DeleteTag(c.Request.Context(), db, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tag deleted."})
}

func (h *AdminHandler) ListAwards(c *gin.Context) {
	page, limit := ParsePagination(c)

	db := h.GetDB(c)
	awards, err := h.adminService.ListAwards(c.Request.Context(), db, page, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"awards": awards})
}

func (h *AdminHandler) CreateAward(c *gin.Context) {
	var req dto.CreateAwardRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	award, err := h.adminService.CreateAward(c.Request.Context(), db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, award)
}

func (h *AdminHandler) DeleteAward(c *gin.Context) {
	db := h.GetDB(c)
	if err := h.adminService.DeleteAward(c.Request.Context(), db, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Award deleted."})
}

func (h *AdminHandler) ListReports(c *gin.Context) {
	page, limit := ParsePagination(c)

	db := h.GetDB(c)
	reports, err := h.adminService.ListReports(c.Request.Context(), db, page, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

func (h *AdminHandler) ResolveReport(c *gin.Context) {
	db := h.GetDB(c)
	if err := h.adminService.ResolveReport(c.Request.Context(), db, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Report resolved."})
}

func (h *AdminHandler) ResetDatabase(c *gin.Context) {
	db := h.GetDB(c)
	if err := h.adminService.ResetDatabase(c.Request.Context(), db); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Database reset."})
}
