package utils

import (
	"testing"
	"time"

	"github.com/bittarwork/hospital-management-system-sub001/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateRequest() models.CreateInvoiceRequest {
	return models.CreateInvoiceRequest{
		PatientID:    "P-001",
		DoctorID:     "D-001",
		DueDate:      time.Now().Add(30 * 24 * time.Hour),
		DiscountType: models.DiscountNone,
		TaxRate:      decimal.NewFromInt(15),
		Items: []models.InvoiceItemInput{{
			ItemType:  models.LineItemConsultation,
			ItemName:  "General Consultation",
			Quantity:  1,
			UnitPrice: decimal.NewFromInt(200),
		}},
	}
}

func TestValidateCreateInvoiceAccepts(t *testing.T) {
	assert.NoError(t, ValidateCreateInvoice(validCreateRequest()))
}

func TestValidateCreateInvoiceMissingParties(t *testing.T) {
	var validationErr *models.ValidationError

	req := validCreateRequest()
	req.PatientID = ""
	require.ErrorAs(t, ValidateCreateInvoice(req), &validationErr)

	req = validCreateRequest()
	req.DoctorID = ""
	require.ErrorAs(t, ValidateCreateInvoice(req), &validationErr)
}

func TestValidateCreateInvoiceNegativeTaxRate(t *testing.T) {
	req := validCreateRequest()
	req.TaxRate = decimal.NewFromInt(-5)

	var validationErr *models.ValidationError
	require.ErrorAs(t, ValidateCreateInvoice(req), &validationErr)
}

func TestValidateCreateInvoicePercentageOverHundred(t *testing.T) {
	req := validCreateRequest()
	req.DiscountType = models.DiscountPercentage
	req.DiscountValue = decimal.NewFromInt(120)

	var validationErr *models.ValidationError
	require.ErrorAs(t, ValidateCreateInvoice(req), &validationErr)
	assert.Equal(t, "discount_value", validationErr.Field)
}

func TestValidateCreateInvoiceBadItem(t *testing.T) {
	var validationErr *models.ValidationError

	req := validCreateRequest()
	req.Items[0].Quantity = 0
	require.ErrorAs(t, ValidateCreateInvoice(req), &validationErr)

	req = validCreateRequest()
	req.Items[0].UnitPrice = decimal.NewFromInt(-10)
	require.ErrorAs(t, ValidateCreateInvoice(req), &validationErr)
}

func TestValidateInvoiceItemDiscountCap(t *testing.T) {
	item := models.InvoiceItemInput{
		ItemType:       models.LineItemLaboratoryTest,
		ItemName:       "Lab Panel",
		Quantity:       2,
		UnitPrice:      decimal.NewFromInt(50),
		DiscountAmount: decimal.NewFromInt(150),
	}

	var validationErr *models.ValidationError
	require.ErrorAs(t, ValidateInvoiceItem(item), &validationErr)
	assert.Equal(t, "discount_amount", validationErr.Field)

	item.DiscountAmount = decimal.NewFromInt(100)
	assert.NoError(t, ValidateInvoiceItem(item))
}

func TestValidateInvoiceItemUnknownType(t *testing.T) {
	item := models.InvoiceItemInput{
		ItemType:  "massage",
		ItemName:  "Massage",
		Quantity:  1,
		UnitPrice: decimal.NewFromInt(80),
	}

	var validationErr *models.ValidationError
	require.ErrorAs(t, ValidateInvoiceItem(item), &validationErr)
}

func TestValidateAddPayment(t *testing.T) {
	var validationErr *models.ValidationError

	req := models.AddPaymentRequest{Amount: decimal.NewFromInt(100), PaymentMethod: models.PaymentMethodCash}
	assert.NoError(t, ValidateAddPayment(req))

	req.Amount = decimal.Zero
	require.ErrorAs(t, ValidateAddPayment(req), &validationErr)
	assert.Equal(t, "amount", validationErr.Field)

	req = models.AddPaymentRequest{Amount: decimal.NewFromInt(100), PaymentMethod: "barter"}
	require.ErrorAs(t, ValidateAddPayment(req), &validationErr)
}

func TestValidateVoidInvoice(t *testing.T) {
	assert.NoError(t, ValidateVoidInvoice(models.VoidInvoiceRequest{Reason: "entered in error"}))

	var validationErr *models.ValidationError
	require.ErrorAs(t, ValidateVoidInvoice(models.VoidInvoiceRequest{}), &validationErr)
}
