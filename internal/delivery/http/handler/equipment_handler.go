package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"asset-verification-portal/internal/usecase/equipment"
	"asset-verification-portal/pkg/utils"
)

type EquipmentHandler struct {
	service *equipment.Service
}

func NewEquipmentHandler(service *equipment.Service) *EquipmentHandler {
	return &EquipmentHandler{service: service}
}

func (h *EquipmentHandler) RegisterRoutes(router *gin.RouterGroup) {
	counts := router.Group("/equipment")
	{
		counts.GET("", h.ListEquipment)
		counts.GET("/statistics", h.GetStatistics)
		counts.GET("/category/:category", h.ListEquipmentByCategory)
		counts.GET("/:id", h.GetEquipment)
	}
}

func (h *EquipmentHandler) RegisterManagerRoutes(router *gin.RouterGroup) {
	counts := router.Group("/equipment")
	{
		counts.POST("", h.CreateEquipment)
		counts.PUT("/:id", h.UpdateEquipment)
		counts.DELETE("/:id", h.DeleteEquipment)
		counts.POST("/:id/archive", h.ArchiveEquipment)
		counts.POST("/:id/verification-status", h.SetVerificationStatus)
	}
}

func (h *EquipmentHandler) CreateEquipment(c *gin.Context) {
	var req equipment.CreateEquipmentRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	uploadedBy := c.MustGet("email").(string)

	result, err := h.service.Create(c.Request.Context(), uploadedBy, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Equipment count created successfully", result)
}

func (h *EquipmentHandler) GetEquipment(c *gin.Context) {
	equipmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid equipment ID")
		return
	}

	result, err := h.service.GetByID(c.Request.Context(), equipmentID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Equipment count retrieved successfully", result)
}

func (h *EquipmentHandler) UpdateEquipment(c *gin.Context) {
	equipmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid equipment ID")
		return
	}

	var req equipment.UpdateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Update(c.Request.Context(), equipmentID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Equipment count updated successfully", result)
}

func (h *EquipmentHandler) DeleteEquipment(c *gin.Context) {
	equipmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid equipment ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), equipmentID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Equipment count deleted successfully", nil)
}

func (h *EquipmentHandler) ArchiveEquipment(c *gin.Context) {
	equipmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid equipment ID")
		return
	}

	result, err := h.service.Archive(c.Request.Context(), equipmentID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Equipment count archived successfully", result)
}

func (h *EquipmentHandler) SetVerificationStatus(c *gin.Context) {
	equipmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid equipment ID")
		return
	}

	var req equipment.SetVerificationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.SetVerificationStatus(c.Request.Context(), equipmentID, req.VerificationStatus)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Verification status updated successfully", result)
}

func (h *EquipmentHandler) ListEquipment(c *gin.Context) {
	var (
		result []*equipment.EquipmentResponse
		err    error
	)

	switch {
	case c.Query("uploaded_by") != "":
		result, err = h.service.ListByUploader(c.Request.Context(), c.Query("uploaded_by"))
	case c.Query("location") != "":
		result, err = h.service.ListByLocation(c.Request.Context(), c.Query("location"))
	default:
		result, err = h.service.List(c.Request.Context())
	}
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Equipment counts retrieved successfully", result)
}

func (h *EquipmentHandler) ListEquipmentByCategory(c *gin.Context) {
	result, err := h.service.ListByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Equipment counts retrieved successfully", result)
}

func (h *EquipmentHandler) GetStatistics(c *gin.Context) {
	result, err := h.service.GetStatistics(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Statistics retrieved successfully", result)
}
