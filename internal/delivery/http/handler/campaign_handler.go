package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"asset-verification-portal/internal/usecase/campaign"
	"asset-verification-portal/pkg/utils"
)

type CampaignHandler struct {
	service *campaign.Service
}

func NewCampaignHandler(service *campaign.Service) *CampaignHandler {
	return &CampaignHandler{service: service}
}

func (h *CampaignHandler) RegisterRoutes(router *gin.RouterGroup) {
	campaigns := router.Group("/campaigns")
	{
		campaigns.GET("", h.ListCampaigns)
		campaigns.GET("/statistics", h.GetStatistics)
		campaigns.GET("/:id", h.GetCampaign)
	}
}

func (h *CampaignHandler) RegisterManagerRoutes(router *gin.RouterGroup) {
	campaigns := router.Group("/campaigns")
	{
		campaigns.POST("", h.CreateCampaign)
		campaigns.PUT("/:id", h.UpdateCampaign)
		campaigns.DELETE("/:id", h.DeleteCampaign)
		campaigns.POST("/:id/launch", h.LaunchCampaign)
		campaigns.POST("/:id/reminders", h.SendReminders)
		campaigns.POST("/:id/complete", h.CompleteCampaign)
		campaigns.POST("/:id/recompute-counts", h.RecomputeCounts)
		campaigns.GET("/:id/tokens", h.ListCampaignTokens)
	}
}

func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	var req campaign.CreateCampaignRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	createdBy := c.MustGet("email").(string)

	result, err := h.service.Create(c.Request.Context(), createdBy, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Campaign created successfully", result)
}

func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid campaign ID")
		return
	}

	result, err := h.service.GetByID(c.Request.Context(), campaignID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Campaign retrieved successfully", result)
}

func (h *CampaignHandler) ListCampaigns(c *gin.Context) {
	var (
		result []*campaign.CampaignResponse
		err    error
	)

	switch {
	case c.Query("status") != "":
		result, err = h.service.ListByStatus(c.Request.Context(), c.Query("status"))
	case c.Query("created_by") != "":
		result, err = h.service.ListByCreator(c.Request.Context(), c.Query("created_by"))
	default:
		result, err = h.service.List(c.Request.Context())
	}
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Campaigns retrieved successfully", result)
}

func (h *CampaignHandler) ListCampaignTokens(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid campaign ID")
		return
	}

	result, err := h.service.ListTokens(c.Request.Context(), campaignID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Tokens retrieved successfully", result)
}

func (h *CampaignHandler) RecomputeCounts(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid campaign ID")
		return
	}

	if err := h.service.RecomputeCounts(c.Request.Context(), campaignID); err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.service.GetByID(c.Request.Context(), campaignID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Campaign counts recomputed successfully", result)
}

func (h *CampaignHandler) UpdateCampaign(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid campaign ID")
		return
	}

	var req campaign.UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Update(c.Request.Context(), campaignID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Campaign updated successfully", result)
}

func (h *CampaignHandler) DeleteCampaign(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid campaign ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), campaignID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Campaign deleted successfully", nil)
}

func (h *CampaignHandler) LaunchCampaign(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid campaign ID")
		return
	}

	result, err := h.service.Launch(c.Request.Context(), campaignID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Campaign launched successfully", result)
}

func (h *CampaignHandler) SendReminders(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid campaign ID")
		return
	}

	result, err := h.service.SendReminders(c.Request.Context(), campaignID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Reminders sent successfully", result)
}

func (h *CampaignHandler) CompleteCampaign(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid campaign ID")
		return
	}

	result, err := h.service.Complete(c.Request.Context(), campaignID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Campaign completed successfully", result)
}

func (h *CampaignHandler) GetStatistics(c *gin.Context) {
	result, err := h.service.GetStatistics(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Statistics retrieved successfully", result)
}
