package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItemInput is the caller-supplied shape of one line item.
type InvoiceItemInput struct {
	ItemType       LineItemType    `json:"item_type"`
	ItemName       string          `json:"item_name"`
	Description    string          `json:"description"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
}

// CreateInvoiceRequest is the payload for creating an invoice.
type CreateInvoiceRequest struct {
	PatientID          string             `json:"patient_id"`
	DoctorID           string             `json:"doctor_id"`
	AppointmentID      *uint              `json:"appointment_id,omitempty"`
	Items              []InvoiceItemInput `json:"items"`
	DiscountType       DiscountType       `json:"discount_type"`
	DiscountValue      decimal.Decimal    `json:"discount_value"`
	TaxRate            decimal.Decimal    `json:"tax_rate"`
	IssueDate          *time.Time         `json:"issue_date,omitempty"`
	DueDate            time.Time          `json:"due_date"`
	ServicePeriodStart *time.Time         `json:"service_period_start,omitempty"`
	ServicePeriodEnd   *time.Time         `json:"service_period_end,omitempty"`
	Status             InvoiceStatus      `json:"status,omitempty"`
	Notes              string             `json:"notes"`
}

// ToInvoice builds an unnumbered invoice from the request and derives its
// totals. Defaults: issue date "now", status draft.
func (req *CreateInvoiceRequest) ToInvoice(now time.Time) *Invoice {
	issue := now
	if req.IssueDate != nil {
		issue = *req.IssueDate
	}
	status := req.Status
	if status == "" {
		status = InvoiceStatusDraft
	}
	discountType := req.DiscountType
	if discountType == "" {
		discountType = DiscountNone
	}
	inv := &Invoice{
		PatientID:          req.PatientID,
		DoctorID:           req.DoctorID,
		AppointmentID:      req.AppointmentID,
		IssueDate:          issue,
		DueDate:            req.DueDate,
		ServicePeriodStart: req.ServicePeriodStart,
		ServicePeriodEnd:   req.ServicePeriodEnd,
		DiscountType:       discountType,
		DiscountValue:      req.DiscountValue,
		TaxRate:            req.TaxRate,
		Status:             status,
		Notes:              req.Notes,
	}
	for _, in := range req.Items {
		inv.Items = append(inv.Items, InvoiceItem{
			ItemType:       in.ItemType,
			ItemName:       in.ItemName,
			Description:    in.Description,
			Quantity:       in.Quantity,
			UnitPrice:      in.UnitPrice,
			DiscountAmount: in.DiscountAmount,
		})
	}
	inv.Recalculate()
	inv.RefreshPaymentStatus(now)
	return inv
}

// AddPaymentRequest is the payload for appending a payment to the ledger.
type AddPaymentRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	PaymentDate   *time.Time      `json:"payment_date,omitempty"`
	TransactionID string          `json:"transaction_id,omitempty"`
	ReceivedBy    string          `json:"received_by,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// MarkPaidRequest settles the remaining balance in one payment.
type MarkPaidRequest struct {
	PaymentMethod PaymentMethod `json:"payment_method"`
	ReceivedBy    string        `json:"received_by,omitempty"`
	Notes         string        `json:"notes,omitempty"`
}

// VoidInvoiceRequest carries the mandatory void reason.
type VoidInvoiceRequest struct {
	Reason string `json:"reason"`
}
