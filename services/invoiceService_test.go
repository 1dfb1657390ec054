package services

import (
	"testing"
	"time"

	"github.com/bittarwork/hospital-management-system-sub001/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLineItemsKnownTypes(t *testing.T) {
	items := DefaultLineItems(models.AppointmentEmergency)
	require.Len(t, items, 2)
	assert.Equal(t, models.LineItemConsultation, items[0].ItemType)
	assert.Equal(t, models.LineItemFacilityFee, items[1].ItemType)

	items = DefaultLineItems(models.AppointmentScreening)
	require.Len(t, items, 1)
	assert.Equal(t, models.LineItemLaboratoryTest, items[0].ItemType)
}

func TestDefaultLineItemsFallsBackToConsultation(t *testing.T) {
	items := DefaultLineItems("house_call")
	require.Len(t, items, 1)
	assert.Equal(t, models.LineItemConsultation, items[0].ItemType)
	assert.Equal(t, "General Consultation", items[0].ItemName)
}

func TestDefaultLineItemsReturnsCopies(t *testing.T) {
	items := DefaultLineItems(models.AppointmentConsultation)
	items[0].ItemName = "changed"

	fresh := DefaultLineItems(models.AppointmentConsultation)
	assert.Equal(t, "General Consultation", fresh[0].ItemName)
}

func TestNewDraftFromAppointmentWithInsurance(t *testing.T) {
	now := time.Now()
	appointment := &models.Appointment{
		ID:        42,
		PatientID: "P-001",
		DoctorID:  "D-001",
		Type:      models.AppointmentProcedure,
		Status:    models.AppointmentCompleted,
	}
	patient := &models.Patient{
		ID:                       "P-001",
		InsuranceProvider:        "MedCare Insurance",
		InsuranceCoveragePercent: decimal.NewFromInt(80),
	}

	draft := NewDraftFromAppointment(appointment, patient, now)

	assert.Equal(t, models.InvoiceStatusDraft, draft.Status)
	assert.Equal(t, models.PaymentStatusUnpaid, draft.PaymentStatus)
	require.NotNil(t, draft.AppointmentID)
	assert.Equal(t, uint(42), *draft.AppointmentID)
	assert.Equal(t, models.DiscountPercentage, draft.DiscountType)
	assert.Equal(t, "80.00", draft.DiscountValue.StringFixed(2))
	require.Len(t, draft.Items, 2)

	// 500 + 150, 80% covered, no tax configured on the draft.
	assert.Equal(t, "650.00", draft.Subtotal.StringFixed(2))
	assert.Equal(t, "520.00", draft.DiscountAmount.StringFixed(2))
	assert.Equal(t, "130.00", draft.TotalAmount.StringFixed(2))
}

func TestNewDraftFromAppointmentWithoutInsurance(t *testing.T) {
	now := time.Now()
	appointment := &models.Appointment{
		ID:        7,
		PatientID: "P-002",
		DoctorID:  "D-001",
		Type:      models.AppointmentConsultation,
		Status:    models.AppointmentCompleted,
	}
	patient := &models.Patient{ID: "P-002"}

	draft := NewDraftFromAppointment(appointment, patient, now)

	assert.Equal(t, models.DiscountNone, draft.DiscountType)
	assert.Equal(t, "150.00", draft.TotalAmount.StringFixed(2))
	assert.Equal(t, now, draft.IssueDate)
	assert.True(t, draft.DueDate.After(now))
}
