package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"asset-verification-portal/internal/usecase/peripheral"
	"asset-verification-portal/pkg/utils"
)

type PeripheralHandler struct {
	service *peripheral.Service
}

func NewPeripheralHandler(service *peripheral.Service) *PeripheralHandler {
	return &PeripheralHandler{service: service}
}

func (h *PeripheralHandler) RegisterRoutes(router *gin.RouterGroup) {
	peripherals := router.Group("/peripherals")
	{
		peripherals.GET("", h.ListPeripherals)
		peripherals.GET("/statistics", h.GetStatistics)
		peripherals.GET("/type/:type", h.ListPeripheralsByType)
		peripherals.GET("/stock/:type", h.GetStock)
		peripherals.GET("/employee/:employee_id", h.ListPeripheralsByEmployee)
		peripherals.GET("/:id", h.GetPeripheral)
	}
}

func (h *PeripheralHandler) RegisterManagerRoutes(router *gin.RouterGroup) {
	peripherals := router.Group("/peripherals")
	{
		peripherals.POST("", h.CreatePeripherals)
		peripherals.DELETE("/:id", h.DeletePeripheral)
		peripherals.POST("/assign", h.AssignPeripheral)
		peripherals.POST("/verify", h.VerifyPeripherals)
		peripherals.POST("/:id/return", h.ReturnPeripheral)
	}
}

func (h *PeripheralHandler) CreatePeripherals(c *gin.Context) {
	var req peripheral.CreatePeripheralRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Peripherals created successfully", result)
}

func (h *PeripheralHandler) GetPeripheral(c *gin.Context) {
	peripheralID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid peripheral ID")
		return
	}

	result, err := h.service.GetByID(c.Request.Context(), peripheralID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Peripheral retrieved successfully", result)
}

func (h *PeripheralHandler) DeletePeripheral(c *gin.Context) {
	peripheralID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid peripheral ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), peripheralID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Peripheral deleted successfully", nil)
}

func (h *PeripheralHandler) AssignPeripheral(c *gin.Context) {
	var req peripheral.AssignPeripheralRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Assign(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Peripheral assigned successfully", result)
}

func (h *PeripheralHandler) ReturnPeripheral(c *gin.Context) {
	peripheralID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid peripheral ID")
		return
	}

	result, err := h.service.ReturnToStock(c.Request.Context(), peripheralID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Peripheral returned to stock successfully", result)
}

func (h *PeripheralHandler) VerifyPeripherals(c *gin.Context) {
	var req peripheral.VerifyPeripheralsRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.Verify(c.Request.Context(), &req); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Peripherals verified successfully", nil)
}

func (h *PeripheralHandler) GetStock(c *gin.Context) {
	count, err := h.service.StockFor(c.Request.Context(), c.Param("type"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Stock retrieved successfully", gin.H{
		"type":    c.Param("type"),
		"instock": count,
	})
}

func (h *PeripheralHandler) ListPeripherals(c *gin.Context) {
	result, err := h.service.List(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Peripherals retrieved successfully", result)
}

func (h *PeripheralHandler) ListPeripheralsByType(c *gin.Context) {
	result, err := h.service.ListByType(c.Request.Context(), c.Param("type"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Peripherals retrieved successfully", result)
}

func (h *PeripheralHandler) ListPeripheralsByEmployee(c *gin.Context) {
	result, err := h.service.ListByEmployee(c.Request.Context(), c.Param("employee_id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Peripherals retrieved successfully", result)
}

func (h *PeripheralHandler) GetStatistics(c *gin.Context) {
	result, err := h.service.GetStatistics(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Statistics retrieved successfully", result)
}
