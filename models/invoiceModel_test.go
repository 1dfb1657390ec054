package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInvoice(t *testing.T, items []InvoiceItem, discountType DiscountType, discountValue, taxRate int64) *Invoice {
	t.Helper()
	now := time.Now()
	inv := &Invoice{
		InvoiceNumber: "INV-000001",
		PatientID:     "P-001",
		DoctorID:      "D-001",
		IssueDate:     now,
		DueDate:       now.Add(30 * 24 * time.Hour),
		DiscountType:  discountType,
		DiscountValue: decimal.NewFromInt(discountValue),
		TaxRate:       decimal.NewFromInt(taxRate),
		Status:        InvoiceStatusDraft,
		Items:         items,
	}
	inv.Recalculate()
	inv.RefreshPaymentStatus(now)
	return inv
}

func singleItem(quantity int, unitPrice, discount int64) []InvoiceItem {
	return []InvoiceItem{{
		ItemType:       LineItemConsultation,
		ItemName:       "General Consultation",
		Quantity:       quantity,
		UnitPrice:      decimal.NewFromInt(unitPrice),
		DiscountAmount: decimal.NewFromInt(discount),
	}}
}

func TestRecalculateNoDiscount(t *testing.T) {
	inv := newTestInvoice(t, singleItem(1, 200, 0), DiscountNone, 0, 15)

	assert.Equal(t, "200.00", inv.Subtotal.StringFixed(2))
	assert.Equal(t, "0.00", inv.DiscountAmount.StringFixed(2))
	assert.Equal(t, "30.00", inv.TaxAmount.StringFixed(2))
	assert.Equal(t, "230.00", inv.TotalAmount.StringFixed(2))
	assert.Equal(t, "230.00", inv.RemainingBalance.StringFixed(2))
	assert.Equal(t, PaymentStatusUnpaid, inv.PaymentStatus)
}

func TestRecalculatePercentageDiscount(t *testing.T) {
	inv := newTestInvoice(t, singleItem(1, 200, 0), DiscountPercentage, 80, 15)

	assert.Equal(t, "200.00", inv.Subtotal.StringFixed(2))
	assert.Equal(t, "160.00", inv.DiscountAmount.StringFixed(2))
	assert.Equal(t, "6.00", inv.TaxAmount.StringFixed(2))
	assert.Equal(t, "46.00", inv.TotalAmount.StringFixed(2))
}

func TestRecalculateFixedDiscountCappedAtSubtotal(t *testing.T) {
	inv := newTestInvoice(t, singleItem(1, 100, 0), DiscountFixedAmount, 250, 10)

	assert.Equal(t, "100.00", inv.Subtotal.StringFixed(2))
	assert.Equal(t, "100.00", inv.DiscountAmount.StringFixed(2))
	assert.Equal(t, "0.00", inv.TaxAmount.StringFixed(2))
	assert.Equal(t, "0.00", inv.TotalAmount.StringFixed(2))
}

func TestRecalculateEmptyItems(t *testing.T) {
	inv := newTestInvoice(t, nil, DiscountNone, 0, 15)

	assert.True(t, inv.Subtotal.IsZero())
	assert.True(t, inv.DiscountAmount.IsZero())
	assert.True(t, inv.TaxAmount.IsZero())
	assert.True(t, inv.TotalAmount.IsZero())
}

func TestRecalculateRoundsEachStage(t *testing.T) {
	items := []InvoiceItem{{
		ItemType:  LineItemLaboratoryTest,
		ItemName:  "Lab Panel",
		Quantity:  3,
		UnitPrice: decimal.RequireFromString("33.335"),
	}}
	inv := newTestInvoice(t, items, DiscountNone, 0, 15)

	// 3 × 33.335 = 100.005, rounded half-up per stage.
	assert.Equal(t, "100.01", inv.Items[0].TotalPrice.StringFixed(2))
	assert.Equal(t, "100.01", inv.Subtotal.StringFixed(2))
	assert.Equal(t, "15.00", inv.TaxAmount.StringFixed(2))
	assert.Equal(t, "115.01", inv.TotalAmount.StringFixed(2))
}

func TestRecalculateIsIdempotent(t *testing.T) {
	inv := newTestInvoice(t, singleItem(2, 150, 20), DiscountPercentage, 10, 15)

	subtotal := inv.Subtotal
	total := inv.TotalAmount
	inv.Recalculate()
	inv.Recalculate()

	assert.True(t, inv.Subtotal.Equal(subtotal))
	assert.True(t, inv.TotalAmount.Equal(total))
}

func TestApplyPaymentFullSettlement(t *testing.T) {
	inv := newTestInvoice(t, singleItem(1, 200, 0), DiscountNone, 0, 15)
	now := time.Now()

	err := inv.ApplyPayment(Payment{Amount: decimal.NewFromInt(230), PaymentMethod: PaymentMethodCash}, now)
	require.NoError(t, err)

	assert.Equal(t, "0.00", inv.RemainingBalance.StringFixed(2))
	assert.Equal(t, PaymentStatusPaid, inv.PaymentStatus)
	assert.Len(t, inv.Payments, 1)
}

func TestApplyPaymentPartial(t *testing.T) {
	inv := newTestInvoice(t, singleItem(1, 200, 0), DiscountNone, 0, 15)
	now := time.Now()

	err := inv.ApplyPayment(Payment{Amount: decimal.NewFromInt(100), PaymentMethod: PaymentMethodCreditCard}, now)
	require.NoError(t, err)

	assert.Equal(t, "130.00", inv.RemainingBalance.StringFixed(2))
	assert.Equal(t, PaymentStatusPartiallyPaid, inv.PaymentStatus)
	assert.True(t, inv.AmountPaid.Add(inv.RemainingBalance).Equal(inv.TotalAmount))
}

func TestApplyPaymentOverpaymentRejectedWithoutMutation(t *testing.T) {
	inv := newTestInvoice(t, singleItem(1, 200, 0), DiscountNone, 0, 15)
	now := time.Now()

	err := inv.ApplyPayment(Payment{Amount: decimal.NewFromInt(300), PaymentMethod: PaymentMethodCash}, now)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "amount", validationErr.Field)
	assert.True(t, inv.AmountPaid.IsZero())
	assert.Empty(t, inv.Payments)
	assert.Equal(t, PaymentStatusUnpaid, inv.PaymentStatus)
}

func TestApplyPaymentRejectsNonPositiveAmounts(t *testing.T) {
	inv := newTestInvoice(t, singleItem(1, 200, 0), DiscountNone, 0, 15)
	now := time.Now()

	var validationErr *ValidationError
	err := inv.ApplyPayment(Payment{Amount: decimal.Zero, PaymentMethod: PaymentMethodCash}, now)
	require.ErrorAs(t, err, &validationErr)

	err = inv.ApplyPayment(Payment{Amount: decimal.NewFromInt(-50), PaymentMethod: PaymentMethodCash}, now)
	require.ErrorAs(t, err, &validationErr)
	assert.Empty(t, inv.Payments)
}

func TestApplyPaymentRejectsUnknownMethod(t *testing.T) {
	inv := newTestInvoice(t, singleItem(1, 200, 0), DiscountNone, 0, 15)

	err := inv.ApplyPayment(Payment{Amount: decimal.NewFromInt(10), PaymentMethod: "barter"}, time.Now())

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "payment_method", validationErr.Field)
}

func TestAmountPaidIsMonotonic(t *testing.T) {
	inv := newTestInvoice(t, singleItem(1, 200, 0), DiscountNone, 0, 15)
	now := time.Now()

	previous := inv.AmountPaid
	for _, amount := range []int64{50, 80, 100} {
		err := inv.ApplyPayment(Payment{Amount: decimal.NewFromInt(amount), PaymentMethod: PaymentMethodCash}, now)
		require.NoError(t, err)
		assert.True(t, inv.AmountPaid.GreaterThanOrEqual(previous))
		assert.True(t, inv.AmountPaid.Add(inv.RemainingBalance).Equal(inv.TotalAmount))
		previous = inv.AmountPaid
	}
	assert.Equal(t, PaymentStatusPaid, inv.PaymentStatus)
}

func TestRefreshPaymentStatusOverdue(t *testing.T) {
	inv := newTestInvoice(t, singleItem(1, 200, 0), DiscountNone, 0, 15)
	inv.DueDate = time.Now().Add(-24 * time.Hour)

	inv.RefreshPaymentStatus(time.Now())

	assert.Equal(t, PaymentStatusOverdue, inv.PaymentStatus)
}

func TestMarkAsPaidSettlesRemainingBalance(t *testing.T) {
	inv := newTestInvoice(t, singleItem(1, 200, 0), DiscountNone, 0, 15)
	now := time.Now()

	err := inv.ApplyPayment(Payment{Amount: decimal.NewFromInt(30), PaymentMethod: PaymentMethodCash}, now)
	require.NoError(t, err)
	err = inv.MarkAsPaid(PaymentMethodBankTransfer, "front desk", "", now)
	require.NoError(t, err)

	assert.Equal(t, PaymentStatusPaid, inv.PaymentStatus)
	assert.True(t, inv.RemainingBalance.IsZero())
	require.Len(t, inv.Payments, 2)
	assert.Equal(t, "200.00", inv.Payments[1].Amount.StringFixed(2))
}

func TestMarkAsPaidOnSettledInvoice(t *testing.T) {
	inv := newTestInvoice(t, singleItem(1, 200, 0), DiscountNone, 0, 15)
	now := time.Now()
	require.NoError(t, inv.MarkAsPaid(PaymentMethodCash, "", "", now))

	err := inv.MarkAsPaid(PaymentMethodCash, "", "", now)

	var stateErr *InvalidStateError
	require.ErrorAs(t, err, &stateErr)
}

func TestVoidDraftInvoiceFreezesPayments(t *testing.T) {
	inv := newTestInvoice(t, singleItem(1, 200, 0), DiscountNone, 0, 15)
	now := time.Now()

	err := inv.Void("entered in error", now)
	require.NoError(t, err)

	assert.Equal(t, InvoiceStatusVoid, inv.Status)
	assert.Equal(t, "entered in error", inv.VoidReason)
	assert.NotNil(t, inv.VoidedAt)
	assert.Empty(t, inv.Payments)

	err = inv.ApplyPayment(Payment{Amount: decimal.NewFromInt(10), PaymentMethod: PaymentMethodCash}, now)
	var stateErr *InvalidStateError
	require.ErrorAs(t, err, &stateErr)
}

func TestVoidPreservesLedger(t *testing.T) {
	inv := newTestInvoice(t, singleItem(1, 200, 0), DiscountNone, 0, 15)
	now := time.Now()
	require.NoError(t, inv.ApplyPayment(Payment{Amount: decimal.NewFromInt(100), PaymentMethod: PaymentMethodCash}, now))

	require.NoError(t, inv.Void("billing dispute", now))

	assert.Len(t, inv.Payments, 1)
	assert.Equal(t, "100.00", inv.AmountPaid.StringFixed(2))
}

func TestVoidRejectedOnPaidOrVoidInvoice(t *testing.T) {
	now := time.Now()
	var stateErr *InvalidStateError

	paid := newTestInvoice(t, singleItem(1, 200, 0), DiscountNone, 0, 15)
	require.NoError(t, paid.MarkAsPaid(PaymentMethodCash, "", "", now))
	require.ErrorAs(t, paid.Void("too late", now), &stateErr)

	voided := newTestInvoice(t, singleItem(1, 200, 0), DiscountNone, 0, 15)
	require.NoError(t, voided.Void("first", now))
	require.ErrorAs(t, voided.Void("second", now), &stateErr)
}

func TestVoidRequiresReason(t *testing.T) {
	inv := newTestInvoice(t, singleItem(1, 200, 0), DiscountNone, 0, 15)

	err := inv.Void("", time.Now())

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, InvoiceStatusDraft, inv.Status)
}

func TestDuplicateResetsLedgerAndDates(t *testing.T) {
	inv := newTestInvoice(t, singleItem(2, 150, 10), DiscountPercentage, 10, 15)
	now := time.Now()
	require.NoError(t, inv.ApplyPayment(Payment{Amount: decimal.NewFromInt(50), PaymentMethod: PaymentMethodCash}, now))

	dup := inv.Duplicate(now, 30*24*time.Hour)

	assert.Empty(t, dup.InvoiceNumber)
	assert.Equal(t, InvoiceStatusDraft, dup.Status)
	assert.Equal(t, PaymentStatusUnpaid, dup.PaymentStatus)
	assert.Empty(t, dup.Payments)
	assert.True(t, dup.AmountPaid.IsZero())
	assert.Equal(t, now, dup.IssueDate)
	require.Len(t, dup.Items, 1)
	assert.Zero(t, dup.Items[0].ID)
	assert.True(t, dup.Items[0].UnitPrice.Equal(inv.Items[0].UnitPrice))
	assert.Equal(t, inv.DiscountType, dup.DiscountType)
	assert.True(t, dup.TotalAmount.Equal(inv.TotalAmount))
	assert.True(t, dup.RemainingBalance.Equal(dup.TotalAmount))
}
