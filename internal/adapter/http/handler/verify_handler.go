package handler

import (
	"github.com/gin-gonic/gin"

	"rosca-bridge/internal/adapter/http/dto"
	"rosca-bridge/internal/core/domain"
	"rosca-bridge/internal/core/ports"
	"rosca-bridge/pkg/apperror"
	"rosca-bridge/pkg/response"
)

// VerifyHandler handles proof verification.
type VerifyHandler struct {
	verification ports.VerificationService
}

// NewVerifyHandler creates a new VerifyHandler.
func NewVerifyHandler(verification ports.VerificationService) *VerifyHandler {
	return &VerifyHandler{verification: verification}
}

// Verify handles POST /api/v1/self/verify.
func (h *VerifyHandler) Verify(c *gin.Context) {
	var req dto.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	outcome, err := h.verification.VerifyAndRecord(c.Request.Context(), domain.VerifyRequest{
		AttestationID:   string(req.AttestationID),
		Proof:           req.Proof,
		PublicSignals:   req.PublicSignals,
		UserContextData: req.UserContextData,
		UserAddress:     req.UserAddress,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, outcome)
}
