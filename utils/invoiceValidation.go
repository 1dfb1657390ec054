package utils

import (
	"fmt"

	"github.com/bittarwork/hospital-management-system-sub001/models"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// ValidateCreateInvoice validates an invoice creation request. Negative
// amounts are rejected outright, never clamped.
func ValidateCreateInvoice(req models.CreateInvoiceRequest) error {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.PatientID, validation.Required),
		validation.Field(&req.DoctorID, validation.Required),
		validation.Field(&req.DueDate, validation.Required),
		validation.Field(&req.DiscountType,
			validation.In(models.DiscountNone, models.DiscountPercentage, models.DiscountFixedAmount)),
		validation.Field(&req.DiscountValue, validation.By(nonNegativeDecimal)),
		validation.Field(&req.TaxRate, validation.By(nonNegativeDecimal)),
	)
	if err != nil {
		return models.NewValidationError("", err.Error())
	}
	if req.DiscountType == models.DiscountPercentage && req.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
		return models.NewValidationError("discount_value", "percentage discount cannot exceed 100")
	}
	if req.Status != "" && !req.Status.Valid() {
		return models.NewValidationError("status", fmt.Sprintf("unknown invoice status %q", req.Status))
	}
	for i, item := range req.Items {
		if err := ValidateInvoiceItem(item); err != nil {
			return models.NewValidationError(fmt.Sprintf("items[%d]", i), err.Error())
		}
	}
	return nil
}

// ValidateInvoiceItem validates a single line-item input.
func ValidateInvoiceItem(item models.InvoiceItemInput) error {
	err := validation.ValidateStruct(&item,
		validation.Field(&item.ItemType, validation.Required,
			validation.In(models.LineItemConsultation, models.LineItemMedicalProcedure,
				models.LineItemLaboratoryTest, models.LineItemDiagnosticTest,
				models.LineItemFacilityFee, models.LineItemOther)),
		validation.Field(&item.ItemName, validation.Required, validation.Length(1, 200)),
		validation.Field(&item.Quantity, validation.Required, validation.Min(1)),
		validation.Field(&item.UnitPrice, validation.By(nonNegativeDecimal)),
		validation.Field(&item.DiscountAmount, validation.By(nonNegativeDecimal)),
	)
	if err != nil {
		return models.NewValidationError("", err.Error())
	}
	lineGross := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
	if item.DiscountAmount.GreaterThan(lineGross) {
		return models.NewValidationError("discount_amount", "line discount cannot exceed quantity × unit price")
	}
	return nil
}

// ValidateAddPayment validates a payment request before it reaches the
// ledger. The balance check itself happens under the invoice lock.
func ValidateAddPayment(req models.AddPaymentRequest) error {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.PaymentMethod, validation.Required,
			validation.In(models.PaymentMethodCash, models.PaymentMethodCreditCard,
				models.PaymentMethodDebitCard, models.PaymentMethodBankTransfer,
				models.PaymentMethodCheck, models.PaymentMethodInsurance, models.PaymentMethodOnline)),
	)
	if err != nil {
		return models.NewValidationError("", err.Error())
	}
	if !req.Amount.IsPositive() {
		return models.NewValidationError("amount", "payment amount must be greater than zero")
	}
	return nil
}

// ValidateMarkPaid validates a settle-in-full request.
func ValidateMarkPaid(req models.MarkPaidRequest) error {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.PaymentMethod, validation.Required,
			validation.In(models.PaymentMethodCash, models.PaymentMethodCreditCard,
				models.PaymentMethodDebitCard, models.PaymentMethodBankTransfer,
				models.PaymentMethodCheck, models.PaymentMethodInsurance, models.PaymentMethodOnline)),
	)
	if err != nil {
		return models.NewValidationError("", err.Error())
	}
	return nil
}

// ValidateVoidInvoice requires a reason for the audit trail.
func ValidateVoidInvoice(req models.VoidInvoiceRequest) error {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.Reason, validation.Required, validation.Length(3, 500)),
	)
	if err != nil {
		return models.NewValidationError("reason", err.Error())
	}
	return nil
}

func nonNegativeDecimal(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if !ok {
		return fmt.Errorf("must be a decimal amount")
	}
	if d.IsNegative() {
		return fmt.Errorf("must not be negative")
	}
	return nil
}
