package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pascallapointe/HairBill-sub000/internal/application/service"
	"github.com/pascallapointe/HairBill-sub000/internal/domain/entity"
	"github.com/pascallapointe/HairBill-sub000/internal/presentation/http/dto/request"
	"github.com/pascallapointe/HairBill-sub000/internal/presentation/http/dto/response"
	"github.com/pascallapointe/HairBill-sub000/pkg/pagination"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Create handles invoice creation
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), &service.CreateInvoiceInput{
		ClientID:      req.ClientID,
		ClientName:    req.ClientName,
		ClientPhone:   req.ClientPhone,
		LineItems:     request.LineItemsToEntities(req.LineItems),
		Tip:           req.Tip,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", gin.H{"invoice": invoice})
}

// Get handles fetching a single invoice
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", gin.H{"invoice": invoice})
}

// List handles listing invoices, newest first, with a date cursor
func (h *InvoiceHandler) List(c *gin.Context) {
	params := pagination.DefaultCursorParams()
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}
	params.Validate()

	invoices, hasMore, err := h.invoiceService.ListInvoices(c.Request.Context(), params.After, params.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	page := pagination.NewCursorPage(invoices, params.Limit, hasMore, func(inv entity.Invoice) int64 {
		return inv.Date
	})
	response.SuccessWithCursor(c, 200, "Invoices retrieved successfully", page)
}

// Search handles cross-field prefix search over invoice number, client
// name and client phone
func (h *InvoiceHandler) Search(c *gin.Context) {
	term := c.Query("q")
	if term == "" {
		response.BadRequest(c, "Search term is required")
		return
	}

	params := pagination.DefaultCursorParams()
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}
	params.Validate()

	invoices, hasMore, err := h.invoiceService.Search(c.Request.Context(), term, params.After, params.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	page := pagination.NewCursorPage(invoices, params.Limit, hasMore, func(inv entity.Invoice) int64 {
		return inv.Date
	})
	response.SuccessWithCursor(c, 200, "Search results retrieved successfully", page)
}

// Update handles editing an invoice
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req request.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), id, &service.UpdateInvoiceInput{
		ClientID:      req.ClientID,
		ClientName:    req.ClientName,
		ClientPhone:   req.ClientPhone,
		LineItems:     request.LineItemsToEntities(req.LineItems),
		Tip:           req.Tip,
		PaymentMethod: req.PaymentMethod,
		Note:          req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice updated successfully", gin.H{"invoice": invoice})
}

// Delete handles soft-deleting an invoice
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req request.DeleteInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), id, req.Note); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice deleted successfully", nil)
}

// Restore handles reinstating a soft-deleted invoice
func (h *InvoiceHandler) Restore(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.RestoreInvoice(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice restored successfully", nil)
}
