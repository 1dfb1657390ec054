package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Invoice lifecycle status.
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusIssued    InvoiceStatus = "issued"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
	InvoiceStatusVoid      InvoiceStatus = "void"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusIssued, InvoiceStatusSent, InvoiceStatusCancelled, InvoiceStatusVoid:
		return true
	}
	return false
}

// Payment status derived from the ledger and the due date.
type PaymentStatus string

const (
	PaymentStatusUnpaid        PaymentStatus = "unpaid"
	PaymentStatusPartiallyPaid PaymentStatus = "partially_paid"
	PaymentStatusPaid          PaymentStatus = "paid"
	PaymentStatusOverdue       PaymentStatus = "overdue"
	PaymentStatusRefunded      PaymentStatus = "refunded"
)

type DiscountType string

const (
	DiscountNone        DiscountType = "none"
	DiscountPercentage  DiscountType = "percentage"
	DiscountFixedAmount DiscountType = "fixed_amount"
)

func (d DiscountType) Valid() bool {
	switch d {
	case DiscountNone, DiscountPercentage, DiscountFixedAmount:
		return true
	}
	return false
}

type LineItemType string

const (
	LineItemConsultation     LineItemType = "consultation"
	LineItemMedicalProcedure LineItemType = "medical_procedure"
	LineItemLaboratoryTest   LineItemType = "laboratory_test"
	LineItemDiagnosticTest   LineItemType = "diagnostic_test"
	LineItemFacilityFee      LineItemType = "facility_fee"
	LineItemOther            LineItemType = "other"
)

func (t LineItemType) Valid() bool {
	switch t {
	case LineItemConsultation, LineItemMedicalProcedure, LineItemLaboratoryTest,
		LineItemDiagnosticTest, LineItemFacilityFee, LineItemOther:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodDebitCard    PaymentMethod = "debit_card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCheck        PaymentMethod = "check"
	PaymentMethodInsurance    PaymentMethod = "insurance"
	PaymentMethodOnline       PaymentMethod = "online"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCreditCard, PaymentMethodDebitCard,
		PaymentMethodBankTransfer, PaymentMethodCheck, PaymentMethodInsurance, PaymentMethodOnline:
		return true
	}
	return false
}

// Invoice model. The aggregate root for billing: header fields plus the
// ordered line items and the append-only payment ledger. All monetary fields
// are held as fixed-point decimals rounded to two places.
type Invoice struct {
	InvoiceNumber      string          `gorm:"primaryKey;column:invoice_number" json:"invoice_number"`
	PatientID          string          `gorm:"column:patient_id;not null;index" json:"patient_id"`
	DoctorID           string          `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	AppointmentID      *uint           `gorm:"column:appointment_id;index" json:"appointment_id,omitempty"`
	IssueDate          time.Time       `gorm:"column:issue_date;not null" json:"issue_date"`
	DueDate            time.Time       `gorm:"column:due_date;not null;index" json:"due_date"`
	ServicePeriodStart *time.Time      `gorm:"column:service_period_start" json:"service_period_start,omitempty"`
	ServicePeriodEnd   *time.Time      `gorm:"column:service_period_end" json:"service_period_end,omitempty"`
	Subtotal           decimal.Decimal `gorm:"column:subtotal;type:numeric(12,2)" json:"subtotal"`
	DiscountType       DiscountType    `gorm:"column:discount_type;check:discount_type IN ('none', 'percentage', 'fixed_amount');not null" json:"discount_type"`
	DiscountValue      decimal.Decimal `gorm:"column:discount_value;type:numeric(12,2)" json:"discount_value"`
	DiscountAmount     decimal.Decimal `gorm:"column:discount_amount;type:numeric(12,2)" json:"discount_amount"`
	TaxRate            decimal.Decimal `gorm:"column:tax_rate;type:numeric(5,2)" json:"tax_rate"`
	TaxAmount          decimal.Decimal `gorm:"column:tax_amount;type:numeric(12,2)" json:"tax_amount"`
	TotalAmount        decimal.Decimal `gorm:"column:total_amount;type:numeric(12,2)" json:"total_amount"`
	AmountPaid         decimal.Decimal `gorm:"column:amount_paid;type:numeric(12,2)" json:"amount_paid"`
	RemainingBalance   decimal.Decimal `gorm:"column:remaining_balance;type:numeric(12,2)" json:"remaining_balance"`
	Status             InvoiceStatus   `gorm:"column:status;check:status IN ('draft', 'issued', 'sent', 'cancelled', 'void');not null" json:"status"`
	PaymentStatus      PaymentStatus   `gorm:"column:payment_status;check:payment_status IN ('unpaid', 'partially_paid', 'paid', 'overdue', 'refunded');not null" json:"payment_status"`
	Notes              string          `gorm:"column:notes" json:"notes"`
	VoidReason         string          `gorm:"column:void_reason" json:"void_reason,omitempty"`
	VoidedAt           *time.Time      `gorm:"column:voided_at" json:"voided_at,omitempty"`
	CreatedAt          time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	Items              []InvoiceItem   `gorm:"foreignKey:InvoiceNumber;references:InvoiceNumber" json:"items"`
	Payments           []Payment       `gorm:"foreignKey:InvoiceNumber;references:InvoiceNumber" json:"payments"`
	Patient            Patient         `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	Doctor             Doctor          `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
}

func (Invoice) TableName() string {
	return "invoice"
}

// InvoiceItem model. One billable service or product on an invoice; order is
// insertion order.
type InvoiceItem struct {
	ID             uint            `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	InvoiceNumber  string          `gorm:"column:invoice_number;not null;index" json:"invoice_number"`
	ItemType       LineItemType    `gorm:"column:item_type;check:item_type IN ('consultation', 'medical_procedure', 'laboratory_test', 'diagnostic_test', 'facility_fee', 'other');not null" json:"item_type"`
	ItemName       string          `gorm:"column:item_name;not null" json:"item_name"`
	Description    string          `gorm:"column:description" json:"description"`
	Quantity       int             `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice      decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2)" json:"unit_price"`
	DiscountAmount decimal.Decimal `gorm:"column:discount_amount;type:numeric(12,2)" json:"discount_amount"`
	TotalPrice     decimal.Decimal `gorm:"column:total_price;type:numeric(12,2)" json:"total_price"`
}

func (InvoiceItem) TableName() string {
	return "invoice_item"
}

// LineTotal returns quantity × unit price − line discount, rounded to two
// decimal places.
func (it *InvoiceItem) LineTotal() decimal.Decimal {
	gross := it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
	return gross.Sub(it.DiscountAmount).Round(2)
}

// Payment model. One entry in an invoice's ledger. Entries are immutable once
// appended; corrections are new entries.
type Payment struct {
	ID            uint            `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	InvoiceNumber string          `gorm:"column:invoice_number;not null;index" json:"invoice_number"`
	Amount        decimal.Decimal `gorm:"column:amount;type:numeric(12,2);not null" json:"amount"`
	PaymentMethod PaymentMethod   `gorm:"column:payment_method;check:payment_method IN ('cash', 'credit_card', 'debit_card', 'bank_transfer', 'check', 'insurance', 'online');not null" json:"payment_method"`
	PaymentDate   time.Time       `gorm:"column:payment_date;not null;index" json:"payment_date"`
	TransactionID string          `gorm:"column:transaction_id" json:"transaction_id,omitempty"`
	ReceivedBy    string          `gorm:"column:received_by" json:"received_by,omitempty"`
	Notes         string          `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Payment) TableName() string {
	return "payment"
}

var oneHundred = decimal.NewFromInt(100)

// Recalculate derives subtotal, discount, tax and total from the current line
// items. Each stage is rounded to two decimals independently so the stored
// values match a line-by-line breakdown. An empty item list yields all zeros.
func (inv *Invoice) Recalculate() {
	subtotal := decimal.Zero
	for i := range inv.Items {
		item := &inv.Items[i]
		item.TotalPrice = item.LineTotal()
		subtotal = subtotal.Add(item.TotalPrice)
	}
	subtotal = subtotal.Round(2)

	var discount decimal.Decimal
	switch inv.DiscountType {
	case DiscountPercentage:
		discount = subtotal.Mul(inv.DiscountValue).Div(oneHundred)
	case DiscountFixedAmount:
		discount = inv.DiscountValue
		if discount.GreaterThan(subtotal) {
			discount = subtotal
		}
	default:
		discount = decimal.Zero
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	discount = discount.Round(2)

	taxable := subtotal.Sub(discount)
	tax := taxable.Mul(inv.TaxRate).Div(oneHundred).Round(2)

	inv.Subtotal = subtotal
	inv.DiscountAmount = discount
	inv.TaxAmount = tax
	inv.TotalAmount = taxable.Add(tax).Round(2)
	inv.RemainingBalance = inv.TotalAmount.Sub(inv.AmountPaid)
}

// RefreshPaymentStatus derives the payment status from the ledger totals and
// the due date.
func (inv *Invoice) RefreshPaymentStatus(now time.Time) {
	switch {
	case inv.TotalAmount.IsPositive() && inv.RemainingBalance.IsZero():
		inv.PaymentStatus = PaymentStatusPaid
	case inv.AmountPaid.IsPositive():
		inv.PaymentStatus = PaymentStatusPartiallyPaid
	default:
		if !inv.DueDate.IsZero() && now.After(inv.DueDate) {
			inv.PaymentStatus = PaymentStatusOverdue
		} else {
			inv.PaymentStatus = PaymentStatusUnpaid
		}
	}
}

// ApplyPayment validates and appends a payment to the ledger, then recomputes
// the paid totals and payment status. The invoice is left untouched when an
// error is returned.
func (inv *Invoice) ApplyPayment(p Payment, now time.Time) error {
	if inv.Status == InvoiceStatusVoid || inv.Status == InvoiceStatusCancelled {
		return &InvalidStateError{
			Subject:   "invoice " + inv.InvoiceNumber,
			Status:    string(inv.Status),
			Operation: "add a payment to",
		}
	}
	if !p.PaymentMethod.Valid() {
		return NewValidationError("payment_method", fmt.Sprintf("unknown payment method %q", p.PaymentMethod))
	}
	p.Amount = p.Amount.Round(2)
	if !p.Amount.IsPositive() {
		return NewValidationError("amount", "payment amount must be greater than zero")
	}
	if p.Amount.GreaterThan(inv.RemainingBalance) {
		return NewValidationError("amount", fmt.Sprintf(
			"payment of %s exceeds remaining balance %s on invoice %s",
			p.Amount.StringFixed(2), inv.RemainingBalance.StringFixed(2), inv.InvoiceNumber))
	}
	if p.PaymentDate.IsZero() {
		p.PaymentDate = now
	}
	p.InvoiceNumber = inv.InvoiceNumber

	inv.Payments = append(inv.Payments, p)
	inv.AmountPaid = inv.AmountPaid.Add(p.Amount).Round(2)
	inv.RemainingBalance = inv.TotalAmount.Sub(inv.AmountPaid)
	inv.RefreshPaymentStatus(now)
	return nil
}

// MarkAsPaid settles the invoice with a single payment covering the full
// remaining balance.
func (inv *Invoice) MarkAsPaid(method PaymentMethod, receivedBy, notes string, now time.Time) error {
	if !inv.RemainingBalance.IsPositive() {
		return &InvalidStateError{
			Subject:   "invoice " + inv.InvoiceNumber,
			Status:    string(inv.PaymentStatus),
			Operation: "mark as paid",
		}
	}
	return inv.ApplyPayment(Payment{
		Amount:        inv.RemainingBalance,
		PaymentMethod: method,
		PaymentDate:   now,
		ReceivedBy:    receivedBy,
		Notes:         notes,
	}, now)
}

// Void marks the invoice void. The payment ledger is preserved as an audit
// trail and further payment mutations are rejected. A fully paid invoice
// cannot be voided.
func (inv *Invoice) Void(reason string, now time.Time) error {
	if reason == "" {
		return NewValidationError("reason", "void reason is required")
	}
	if inv.Status == InvoiceStatusVoid {
		return &InvalidStateError{
			Subject:   "invoice " + inv.InvoiceNumber,
			Status:    string(inv.Status),
			Operation: "void",
		}
	}
	if inv.PaymentStatus == PaymentStatusPaid {
		return &InvalidStateError{
			Subject:   "invoice " + inv.InvoiceNumber,
			Status:    string(inv.PaymentStatus),
			Operation: "void",
		}
	}
	inv.Status = InvoiceStatusVoid
	inv.VoidReason = reason
	inv.VoidedAt = &now
	return nil
}

// Duplicate returns a fresh draft copying the line items and the discount and
// tax policy. Dates are reset, the ledger starts empty and the caller assigns
// the new invoice number.
func (inv *Invoice) Duplicate(now time.Time, dueIn time.Duration) *Invoice {
	dup := &Invoice{
		PatientID:     inv.PatientID,
		DoctorID:      inv.DoctorID,
		IssueDate:     now,
		DueDate:       now.Add(dueIn),
		DiscountType:  inv.DiscountType,
		DiscountValue: inv.DiscountValue,
		TaxRate:       inv.TaxRate,
		Status:        InvoiceStatusDraft,
		PaymentStatus: PaymentStatusUnpaid,
		Notes:         inv.Notes,
	}
	for _, it := range inv.Items {
		dup.Items = append(dup.Items, InvoiceItem{
			ItemType:       it.ItemType,
			ItemName:       it.ItemName,
			Description:    it.Description,
			Quantity:       it.Quantity,
			UnitPrice:      it.UnitPrice,
			DiscountAmount: it.DiscountAmount,
		})
	}
	dup.Recalculate()
	return dup
}
