package services

import (
	"context"
	"log"
	"time"

	"github.com/bittarwork/hospital-management-system-sub001/config"
	"github.com/bittarwork/hospital-management-system-sub001/models"
	"github.com/bittarwork/hospital-management-system-sub001/repositories"
	"github.com/bittarwork/hospital-management-system-sub001/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// lineItemTemplates maps an appointment type to the default billable items
// pre-populated on a generated invoice. Unknown types fall back to the
// consultation template.
var lineItemTemplates = map[models.AppointmentType][]models.InvoiceItem{
	models.AppointmentConsultation: {
		{ItemType: models.LineItemConsultation, ItemName: "General Consultation", Quantity: 1, UnitPrice: decimal.NewFromInt(150)},
	},
	models.AppointmentFollowUp: {
		{ItemType: models.LineItemConsultation, ItemName: "Follow-up Consultation", Quantity: 1, UnitPrice: decimal.NewFromInt(100)},
	},
	models.AppointmentEmergency: {
		{ItemType: models.LineItemConsultation, ItemName: "Emergency Consultation", Quantity: 1, UnitPrice: decimal.NewFromInt(250)},
		{ItemType: models.LineItemFacilityFee, ItemName: "Emergency Room Fee", Quantity: 1, UnitPrice: decimal.NewFromInt(100)},
	},
	models.AppointmentProcedure: {
		{ItemType: models.LineItemMedicalProcedure, ItemName: "Medical Procedure", Quantity: 1, UnitPrice: decimal.NewFromInt(500)},
		{ItemType: models.LineItemFacilityFee, ItemName: "Operating Room Fee", Quantity: 1, UnitPrice: decimal.NewFromInt(150)},
	},
	models.AppointmentDiagnostic: {
		{ItemType: models.LineItemDiagnosticTest, ItemName: "Diagnostic Imaging", Quantity: 1, UnitPrice: decimal.NewFromInt(200)},
	},
	models.AppointmentScreening: {
		{ItemType: models.LineItemLaboratoryTest, ItemName: "Screening Panel", Quantity: 1, UnitPrice: decimal.NewFromInt(120)},
	},
	models.AppointmentRoutineCheckup: {
		{ItemType: models.LineItemConsultation, ItemName: "Routine Checkup", Quantity: 1, UnitPrice: decimal.NewFromInt(120)},
		{ItemType: models.LineItemLaboratoryTest, ItemName: "Basic Lab Panel", Quantity: 1, UnitPrice: decimal.NewFromInt(80)},
	},
}

// DefaultLineItems returns a copy of the line-item templates for the given
// appointment type.
func DefaultLineItems(appointmentType models.AppointmentType) []models.InvoiceItem {
	templates, ok := lineItemTemplates[appointmentType]
	if !ok {
		templates = lineItemTemplates[models.AppointmentConsultation]
	}
	items := make([]models.InvoiceItem, len(templates))
	copy(items, templates)
	return items
}

// NewDraftFromAppointment builds an unsaved draft invoice for a completed
// appointment. The discount defaults to the patient's insurance coverage
// percentage when one is on record; everything remains editable before the
// caller persists it.
func NewDraftFromAppointment(appointment *models.Appointment, patient *models.Patient, now time.Time) *models.Invoice {
	appointmentID := appointment.ID
	invoice := &models.Invoice{
		PatientID:     appointment.PatientID,
		DoctorID:      appointment.DoctorID,
		AppointmentID: &appointmentID,
		IssueDate:     now,
		DueDate:       now.Add(repositories.DefaultPaymentTerm),
		DiscountType:  models.DiscountNone,
		Status:        models.InvoiceStatusDraft,
		PaymentStatus: models.PaymentStatusUnpaid,
		Items:         DefaultLineItems(appointment.Type),
	}
	if patient != nil && patient.InsuranceCoveragePercent.IsPositive() {
		invoice.DiscountType = models.DiscountPercentage
		invoice.DiscountValue = patient.InsuranceCoveragePercent
	}
	invoice.Recalculate()
	return invoice
}

type InvoiceService struct {
	repository   *repositories.InvoiceRepository
	appointments *repositories.AppointmentRepository
	patients     *repositories.PatientRepository
	smtp         config.SMTPConfig
}

func NewInvoiceService(repository *repositories.InvoiceRepository, appointments *repositories.AppointmentRepository, patients *repositories.PatientRepository, smtp config.SMTPConfig) *InvoiceService {
	return &InvoiceService{
		repository:   repository,
		appointments: appointments,
		patients:     patients,
		smtp:         smtp,
	}
}

func (s *InvoiceService) Create(ctx context.Context, req models.CreateInvoiceRequest) (*models.Invoice, error) {
	if err := utils.ValidateCreateInvoice(req); err != nil {
		return nil, err
	}
	invoice := req.ToInvoice(time.Now())
	if err := s.repository.Create(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *InvoiceService) GetByNumber(ctx context.Context, invoiceNumber string) (*models.Invoice, error) {
	return s.repository.GetByNumber(ctx, invoiceNumber)
}

func (s *InvoiceService) GetAll(ctx context.Context) ([]models.Invoice, error) {
	return s.repository.GetAll(ctx)
}

func (s *InvoiceService) GetByPatient(ctx context.Context, patientID string) ([]models.Invoice, error) {
	return s.repository.GetByPatient(ctx, patientID)
}

func (s *InvoiceService) Recalculate(ctx context.Context, invoiceNumber string) (*models.Invoice, error) {
	return s.repository.Recalculate(ctx, invoiceNumber)
}

// AddPayment appends a payment to the invoice ledger and sends a receipt to
// the patient when an email address is on record. Receipt delivery is best
// effort and never fails the payment.
func (s *InvoiceService) AddPayment(ctx context.Context, invoiceNumber string, req models.AddPaymentRequest) (*models.Invoice, error) {
	if err := utils.ValidateAddPayment(req); err != nil {
		return nil, err
	}
	payment := models.Payment{
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		TransactionID: req.TransactionID,
		ReceivedBy:    req.ReceivedBy,
		Notes:         req.Notes,
	}
	if req.PaymentDate != nil {
		payment.PaymentDate = *req.PaymentDate
	}
	if payment.TransactionID == "" {
		payment.TransactionID = uuid.New().String()
	}

	invoice, err := s.repository.AddPayment(ctx, invoiceNumber, payment)
	if err != nil {
		return nil, err
	}
	s.sendReceipt(invoice)
	return invoice, nil
}

func (s *InvoiceService) MarkAsPaid(ctx context.Context, invoiceNumber string, req models.MarkPaidRequest) (*models.Invoice, error) {
	if err := utils.ValidateMarkPaid(req); err != nil {
		return nil, err
	}
	invoice, err := s.repository.MarkAsPaid(ctx, invoiceNumber, req.PaymentMethod, req.ReceivedBy, req.Notes)
	if err != nil {
		return nil, err
	}
	s.sendReceipt(invoice)
	return invoice, nil
}

func (s *InvoiceService) Void(ctx context.Context, invoiceNumber string, req models.VoidInvoiceRequest) (*models.Invoice, error) {
	if err := utils.ValidateVoidInvoice(req); err != nil {
		return nil, err
	}
	return s.repository.Void(ctx, invoiceNumber, req.Reason)
}

func (s *InvoiceService) Duplicate(ctx context.Context, invoiceNumber string) (*models.Invoice, error) {
	return s.repository.Duplicate(ctx, invoiceNumber)
}

// GenerateFromAppointment returns an unsaved draft invoice pre-populated from
// a completed appointment. The caller reviews and persists it through Create.
func (s *InvoiceService) GenerateFromAppointment(ctx context.Context, appointmentID uint) (*models.Invoice, error) {
	appointment, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment.Status != models.AppointmentCompleted {
		return nil, &models.InvalidStateError{
			Subject:   "appointment",
			Status:    string(appointment.Status),
			Operation: "generate an invoice from",
		}
	}
	patient, err := s.patients.GetByID(ctx, appointment.PatientID)
	if err != nil {
		return nil, err
	}
	return NewDraftFromAppointment(appointment, patient, time.Now()), nil
}

func (s *InvoiceService) sendReceipt(invoice *models.Invoice) {
	if len(invoice.Payments) == 0 {
		return
	}
	latest := invoice.Payments[len(invoice.Payments)-1]
	if err := utils.SendPaymentReceipt(s.smtp, invoice.Patient.Email, invoice, latest); err != nil {
		log.Printf("Failed to send payment receipt for invoice %s: %v", invoice.InvoiceNumber, err)
	}
}
