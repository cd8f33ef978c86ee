package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"asset-verification-portal/internal/usecase/verification"
	"asset-verification-portal/pkg/utils"
)

type VerificationHandler struct {
	service *verification.Service
}

func NewVerificationHandler(service *verification.Service) *VerificationHandler {
	return &VerificationHandler{service: service}
}

// RegisterPublicRoutes registers the token-authenticated employee surface.
// Employees reach these from emailed links without logging in.
func (h *VerificationHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	verify := router.Group("/public/verify")
	{
		verify.GET("/:token", h.GetSession)
		verify.POST("/:token/submit", h.SubmitRecord)
		verify.POST("/:token/complete", h.CompleteSession)
		verify.POST("/ocr/extract", h.ExtractTag)
	}
}

func (h *VerificationHandler) RegisterManagerRoutes(router *gin.RouterGroup) {
	records := router.Group("/records")
	{
		records.GET("", h.ListRecords)
		records.GET("/statistics", h.GetStatistics)
		records.GET("/exceptions", h.ListExceptions)
		records.GET("/campaign/:campaign_id", h.ListRecordsByCampaign)
		records.GET("/employee/:employee_id", h.ListRecordsByEmployee)
		records.GET("/:id", h.GetRecord)
		records.POST("/:id/review", h.ReviewRecord)
		records.POST("/sweep-overdue", h.SweepOverdue)
	}
}

func (h *VerificationHandler) GetSession(c *gin.Context) {
	result, err := h.service.GetByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Verification session retrieved successfully", result)
}

func (h *VerificationHandler) SubmitRecord(c *gin.Context) {
	var req verification.SubmitRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Submit(c.Request.Context(), c.Param("token"), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Verification submitted successfully", result)
}

func (h *VerificationHandler) CompleteSession(c *gin.Context) {
	result, err := h.service.Complete(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Verification session completed successfully", result)
}

func (h *VerificationHandler) ExtractTag(c *gin.Context) {
	var req verification.ExtractTagRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	tag, err := h.service.ExtractTag(c.Request.Context(), req.Image)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Image processed successfully", gin.H{
		"extracted_tag": tag,
	})
}

func (h *VerificationHandler) ListRecords(c *gin.Context) {
	result, err := h.service.List(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Records retrieved successfully", result)
}

func (h *VerificationHandler) ListExceptions(c *gin.Context) {
	result, err := h.service.ListExceptions(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Exception records retrieved successfully", result)
}

func (h *VerificationHandler) GetRecord(c *gin.Context) {
	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid record ID")
		return
	}

	result, err := h.service.GetRecord(c.Request.Context(), recordID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Record retrieved successfully", result)
}

func (h *VerificationHandler) ListRecordsByCampaign(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("campaign_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid campaign ID")
		return
	}

	result, err := h.service.ListByCampaign(c.Request.Context(), campaignID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Records retrieved successfully", result)
}

func (h *VerificationHandler) ListRecordsByEmployee(c *gin.Context) {
	result, err := h.service.ListByEmployee(c.Request.Context(), c.Param("employee_id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Records retrieved successfully", result)
}

func (h *VerificationHandler) ReviewRecord(c *gin.Context) {
	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid record ID")
		return
	}

	var req verification.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	reviewedBy := c.MustGet("email").(string)

	result, err := h.service.Review(c.Request.Context(), recordID, reviewedBy, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Record reviewed successfully", result)
}

func (h *VerificationHandler) SweepOverdue(c *gin.Context) {
	flipped, err := h.service.SweepOverdue(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Overdue sweep completed successfully", gin.H{
		"records_marked": flipped,
	})
}

func (h *VerificationHandler) GetStatistics(c *gin.Context) {
	result, err := h.service.GetStatistics(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Statistics retrieved successfully", result)
}
