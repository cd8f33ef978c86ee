package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"asset-verification-portal/internal/usecase/asset"
	"asset-verification-portal/pkg/utils"
)

type AssetHandler struct {
	service *asset.Service
}

func NewAssetHandler(service *asset.Service) *AssetHandler {
	return &AssetHandler{service: service}
}

func (h *AssetHandler) RegisterRoutes(router *gin.RouterGroup) {
	assets := router.Group("/assets")
	{
		assets.GET("", h.ListAssets)
		assets.GET("/statistics", h.GetStatistics)
		assets.GET("/by-tag/:service_tag", h.GetAssetByServiceTag)
		assets.GET("/employee/:employee_id", h.ListAssetsByEmployee)
		assets.GET("/:id", h.GetAsset)
	}
}

func (h *AssetHandler) RegisterManagerRoutes(router *gin.RouterGroup) {
	assets := router.Group("/assets")
	{
		assets.POST("", h.CreateAsset)
		assets.PUT("/:id", h.UpdateAsset)
		assets.DELETE("/:id", h.DeleteAsset)
		assets.POST("/:id/assign", h.AssignAsset)
		assets.POST("/:id/unassign", h.UnassignAsset)
		assets.POST("/import", h.ImportCSV)
		assets.POST("/bulk", h.BulkImport)
		assets.GET("/export", h.ExportCSV)
	}
}

func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req asset.CreateAssetRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Asset created successfully", result)
}

func (h *AssetHandler) GetAsset(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid asset ID")
		return
	}

	result, err := h.service.GetByID(c.Request.Context(), assetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Asset retrieved successfully", result)
}

func (h *AssetHandler) GetAssetByServiceTag(c *gin.Context) {
	result, err := h.service.GetByServiceTag(c.Request.Context(), c.Param("service_tag"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Asset retrieved successfully", result)
}

func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid asset ID")
		return
	}

	var req asset.UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Update(c.Request.Context(), assetID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Asset updated successfully", result)
}

func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid asset ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), assetID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Asset deleted successfully", nil)
}

func (h *AssetHandler) AssignAsset(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid asset ID")
		return
	}

	var req asset.AssignAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Assign(c.Request.Context(), assetID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Asset assigned successfully", result)
}

func (h *AssetHandler) UnassignAsset(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid asset ID")
		return
	}

	result, err := h.service.Unassign(c.Request.Context(), assetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Asset unassigned successfully", result)
}

func (h *AssetHandler) ListAssets(c *gin.Context) {
	var filter asset.AssetFilterRequest

	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	result, err := h.service.List(c.Request.Context(), &filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Assets retrieved successfully", result)
}

func (h *AssetHandler) ListAssetsByEmployee(c *gin.Context) {
	result, err := h.service.ListByEmployee(c.Request.Context(), c.Param("employee_id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Assets retrieved successfully", result)
}

func (h *AssetHandler) GetStatistics(c *gin.Context) {
	result, err := h.service.GetStatistics(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Statistics retrieved successfully", result)
}

func (h *AssetHandler) BulkImport(c *gin.Context) {
	var req asset.BulkImportRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.BulkImport(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Assets imported successfully", result)
}

func (h *AssetHandler) ImportCSV(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "CSV file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to open uploaded file")
		return
	}
	defer file.Close()

	result, err := h.service.ImportCSV(c.Request.Context(), file)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "CSV imported successfully", result)
}

func (h *AssetHandler) ExportCSV(c *gin.Context) {
	filename := fmt.Sprintf("assets-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.service.ExportCSV(c.Request.Context(), c.Writer); err != nil {
		respondWithError(c, err)
		return
	}
}
