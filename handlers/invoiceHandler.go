package handlers

import (
	"strconv"

	"github.com/bittarwork/hospital-management-system-sub001/models"
	"github.com/bittarwork/hospital-management-system-sub001/services"
	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	service *services.InvoiceService
}

func NewInvoiceHandler(service *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req models.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	invoice, err := h.service.Create(c, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(201, invoice)
}

func (h *InvoiceHandler) GetInvoiceByNumber(c *gin.Context) {
	invoiceNumber := c.Param("invoice_number")
	invoice, err := h.service.GetByNumber(c, invoiceNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, invoice)
}

func (h *InvoiceHandler) GetAllInvoices(c *gin.Context) {
	invoices, err := h.service.GetAll(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, invoices)
}

func (h *InvoiceHandler) GetInvoicesByPatient(c *gin.Context) {
	patientID := c.Param("patient_id")
	invoices, err := h.service.GetByPatient(c, patientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, invoices)
}

func (h *InvoiceHandler) RecalculateInvoice(c *gin.Context) {
	invoiceNumber := c.Param("invoice_number")
	invoice, err := h.service.Recalculate(c, invoiceNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, invoice)
}

func (h *InvoiceHandler) AddPayment(c *gin.Context) {
	invoiceNumber := c.Param("invoice_number")
	var req models.AddPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	invoice, err := h.service.AddPayment(c, invoiceNumber, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(201, invoice)
}

func (h *InvoiceHandler) MarkInvoiceAsPaid(c *gin.Context) {
	invoiceNumber := c.Param("invoice_number")
	var req models.MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	invoice, err := h.service.MarkAsPaid(c, invoiceNumber, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, invoice)
}

func (h *InvoiceHandler) VoidInvoice(c *gin.Context) {
	invoiceNumber := c.Param("invoice_number")
	var req models.VoidInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	invoice, err := h.service.Void(c, invoiceNumber, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, invoice)
}

func (h *InvoiceHandler) DuplicateInvoice(c *gin.Context) {
	invoiceNumber := c.Param("invoice_number")
	invoice, err := h.service.Duplicate(c, invoiceNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(201, invoice)
}

func (h *InvoiceHandler) GenerateFromAppointment(c *gin.Context) {
	appointmentID, err := strconv.ParseUint(c.Param("appointment_id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid appointment id"})
		return
	}
	draft, err := h.service.GenerateFromAppointment(c, uint(appointmentID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, draft)
}
