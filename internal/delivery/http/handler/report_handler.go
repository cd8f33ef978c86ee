package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"asset-verification-portal/internal/usecase/report"
	"asset-verification-portal/pkg/utils"
)

type ReportHandler struct {
	service *report.Service
}

func NewReportHandler(service *report.Service) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/reports")
	{
		reports.GET("/dashboard", h.GetDashboard)
		reports.GET("/verification-trend", h.GetVerificationTrend)
		reports.GET("/campaigns/:id/progress", h.GetCampaignProgress)
		reports.GET("/campaigns/:id/export", h.ExportCampaignCSV)
		reports.GET("/export/peripherals", h.ExportPeripheralsCSV)
		reports.GET("/export/equipment", h.ExportEquipmentCSV)
	}
}

func (h *ReportHandler) GetVerificationTrend(c *gin.Context) {
	result, err := h.service.GetVerificationTrend(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Verification trend retrieved successfully", result)
}

func (h *ReportHandler) ExportPeripheralsCSV(c *gin.Context) {
	filename := fmt.Sprintf("peripherals-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.service.ExportPeripheralsCSV(c.Request.Context(), c.Writer); err != nil {
		respondWithError(c, err)
		return
	}
}

func (h *ReportHandler) ExportEquipmentCSV(c *gin.Context) {
	filename := fmt.Sprintf("equipment-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.service.ExportEquipmentCSV(c.Request.Context(), c.Writer); err != nil {
		respondWithError(c, err)
		return
	}
}

func (h *ReportHandler) GetDashboard(c *gin.Context) {
	result, err := h.service.GetDashboard(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Dashboard retrieved successfully", result)
}

func (h *ReportHandler) GetCampaignProgress(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid campaign ID")
		return
	}

	result, err := h.service.GetCampaignProgress(c.Request.Context(), campaignID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Campaign progress retrieved successfully", result)
}

func (h *ReportHandler) ExportCampaignCSV(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid campaign ID")
		return
	}

	filename := fmt.Sprintf("campaign-%s-%s.csv", campaignID, time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.service.ExportCampaignCSV(c.Request.Context(), campaignID, c.Writer); err != nil {
		respondWithError(c, err)
		return
	}
}
