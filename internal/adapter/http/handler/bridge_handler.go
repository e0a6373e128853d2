package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"rosca-bridge/internal/adapter/http/dto"
	"rosca-bridge/internal/core/domain"
	"rosca-bridge/internal/core/ports"
	"rosca-bridge/pkg/apperror"
	"rosca-bridge/pkg/response"
)

const defaultMaxBatch = 50

// BridgeHandler handles the read-path endpoints.
type BridgeHandler struct {
	eligibility ports.EligibilityService
	batch       ports.BatchEligibilityService
	maxBatch    int
}

// NewBridgeHandler creates a new BridgeHandler.
func NewBridgeHandler(eligibility ports.EligibilityService, batch ports.BatchEligibilityService, maxBatch int) *BridgeHandler {
	if maxBatch <= 0 {
		maxBatch = defaultMaxBatch
	}
	return &BridgeHandler{eligibility: eligibility, batch: batch, maxBatch: maxBatch}
}

// GetKYCStatus handles GET /api/v1/bridge/kyc/:address.
func (h *BridgeHandler) GetKYCStatus(c *gin.Context) {
	address := c.Param("address")
	if !domain.IsValidAddress(address) {
		response.Error(c, apperror.ErrInvalidAddress(address))
		return
	}
	response.OK(c, h.eligibility.CheckKYCStatus(c.Request.Context(), address))
}

// ValidateEligibility handles POST /api/v1/bridge/validate-eligibility.
func (h *BridgeHandler) ValidateEligibility(c *gin.Context) {
	var req dto.EligibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.eligibility.ValidateEligibility(c.Request.Context(), req.UserAddress, *req.CircleID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// BatchValidate handles POST /api/v1/bridge/batch-validate.
func (h *BridgeHandler) BatchValidate(c *gin.Context) {
	var req dto.BatchEligibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.TrimStruct(&req)

	if len(req.UserAddresses) > h.maxBatch {
		response.Error(c, apperror.Validation(fmt.Sprintf("at most %d addresses per batch", h.maxBatch)))
		return
	}

	results := h.batch.BatchCheckEligibility(c.Request.Context(), req.UserAddresses, *req.CircleID)
	response.OK(c, dto.BatchEligibilityResponse{CircleID: *req.CircleID, Results: results})
}

// GetStats handles GET /api/v1/bridge/stats.
func (h *BridgeHandler) GetStats(c *gin.Context) {
	response.OK(c, h.eligibility.GetPlatformStats(c.Request.Context()))
}
