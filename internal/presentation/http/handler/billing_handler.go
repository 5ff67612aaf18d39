package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/pascallapointe/HairBill-sub000/internal/application/service"
	"github.com/pascallapointe/HairBill-sub000/internal/presentation/http/dto/request"
	"github.com/pascallapointe/HairBill-sub000/internal/presentation/http/dto/response"
)

// BillingHandler handles tax computation previews
type BillingHandler struct {
	billingService  *service.BillingService
	settingsService *service.SettingsService
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(billingService *service.BillingService, settingsService *service.SettingsService) *BillingHandler {
	return &BillingHandler{
		billingService:  billingService,
		settingsService: settingsService,
	}
}

// Compute returns the amount breakdown for a set of line items without
// saving anything. The UI calls this on every cart change. When the
// request carries no regime, the current shop settings apply.
func (h *BillingHandler) Compute(c *gin.Context) {
	var req request.ComputeAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	regime := req.Regime
	if regime == nil {
		settings, err := h.settingsService.GetSettings(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		regime = &settings.Regime
	}

	amount := h.billingService.ComputeAmount(request.LineItemsToEntities(req.LineItems), regime)

	response.OK(c, "Amount computed successfully", gin.H{
		"amount": amount,
		"regime": regime,
	})
}
