package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bittarwork/hospital-management-system-sub001/cache"
	"github.com/bittarwork/hospital-management-system-sub001/database"
	"github.com/bittarwork/hospital-management-system-sub001/models"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	InvoiceCacheExpiry = 7 * 24 * time.Hour

	// DefaultPaymentTerm is how long after issue (or duplication) an
	// invoice falls due when the caller does not say otherwise.
	DefaultPaymentTerm = 30 * 24 * time.Hour
)

type InvoiceRepository struct {
	cache *cache.Cache
}

func NewInvoiceRepository(cache *cache.Cache) *InvoiceRepository {
	return &InvoiceRepository{cache: cache}
}

// lockInvoice serializes mutations per invoice through a Redis lock. The
// returned release function must be deferred by the caller.
func (r *InvoiceRepository) lockInvoice(ctx context.Context, invoiceNumber string) (func(), error) {
	lockKey := fmt.Sprintf("invoice_lock:%s", invoiceNumber)
	lockValue := uuid.New().String()
	maxRetries := 3
	retryDelay := 2 * time.Second
	var locked bool
	var err error
	for i := 0; i < maxRetries; i++ {
		locked, err = database.NewLock(ctx, lockKey, lockValue, 10*time.Second)
		if err == nil && locked {
			break
		}
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}
	if !locked {
		return nil, fmt.Errorf("failed to acquire lock after retries: %w", err)
	}
	release := func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}
	return release, nil
}

// loadInvoice reads the invoice with its items and ledger straight from the
// database, bypassing the cache. Mutations must always start from this read.
func (r *InvoiceRepository) loadInvoice(ctx context.Context, invoiceNumber string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := database.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Patient", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, first_name, last_name, email")
		}).
		Preload("Doctor", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, first_name, last_name")
		}).
		First(&invoice, "invoice_number = ?", invoiceNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.NotFoundError{Entity: "invoice", ID: invoiceNumber}
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return &invoice, nil
}

// NextInvoiceNumber draws the next number from the database sequence.
func (r *InvoiceRepository) NextInvoiceNumber(ctx context.Context) (string, error) {
	var next string
	err := database.DB.WithContext(ctx).
		Raw("SELECT 'INV-' || LPAD(nextval('invoice_number_seq')::TEXT, 6, '0')").Scan(&next).Error
	if err != nil {
		return "", fmt.Errorf("failed to obtain next invoice number: %w", err)
	}
	return next, nil
}

// Create verifies the referenced parties, assigns an invoice number, derives
// the totals and persists the invoice with its line items.
func (r *InvoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	if err := r.checkReferences(ctx, invoice); err != nil {
		return err
	}

	next, err := r.NextInvoiceNumber(ctx)
	if err != nil {
		return err
	}
	invoice.InvoiceNumber = next

	now := time.Now()
	if invoice.DueDate.IsZero() {
		invoice.DueDate = invoice.IssueDate.Add(DefaultPaymentTerm)
	}
	invoice.Recalculate()
	invoice.RefreshPaymentStatus(now)

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(invoice).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	r.invalidate(ctx, invoice.InvoiceNumber, invoice.PatientID)
	return nil
}

// checkReferences resolves patient, doctor and the optional appointment id.
func (r *InvoiceRepository) checkReferences(ctx context.Context, invoice *models.Invoice) error {
	var patient models.Patient
	if err := database.DB.WithContext(ctx).First(&patient, "id = ?", invoice.PatientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.NotFoundError{Entity: "patient", ID: invoice.PatientID}
		}
		return fmt.Errorf("failed to find patient: %w", err)
	}
	var doctor models.Doctor
	if err := database.DB.WithContext(ctx).First(&doctor, "id = ?", invoice.DoctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.NotFoundError{Entity: "doctor", ID: invoice.DoctorID}
		}
		return fmt.Errorf("failed to find doctor: %w", err)
	}
	if invoice.AppointmentID != nil {
		var appointment models.Appointment
		if err := database.DB.WithContext(ctx).First(&appointment, "id = ?", *invoice.AppointmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &models.NotFoundError{Entity: "appointment", ID: fmt.Sprint(*invoice.AppointmentID)}
			}
			return fmt.Errorf("failed to find appointment: %w", err)
		}
	}
	return nil
}

func (r *InvoiceRepository) GetByNumber(ctx context.Context, invoiceNumber string) (*models.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getInvoiceCacheKey(invoiceNumber)
	cachedInvoice, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var invoice models.Invoice
		if err := json.Unmarshal([]byte(cachedInvoice), &invoice); err == nil {
			return &invoice, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get invoice from cache: %v", err)
	}

	invoice, err := r.loadInvoice(ctx, invoiceNumber)
	if err != nil {
		return nil, err
	}

	invoiceJSON, err := json.Marshal(invoice)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal invoice: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, invoiceJSON, InvoiceCacheExpiry); err != nil {
		log.Printf("Failed to set invoice in cache: %v", err)
	}

	return invoice, nil
}

func (r *InvoiceRepository) GetAll(ctx context.Context) ([]models.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := "invoices_cache"
	cachedInvoices, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var invoices []models.Invoice
		if err := json.Unmarshal([]byte(cachedInvoices), &invoices); err == nil {
			return invoices, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get invoices from cache: %v", err)
	}

	var invoices []models.Invoice
	err = database.DB.WithContext(ctx).
		Preload("Patient", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, first_name, last_name")
		}).
		Preload("Doctor", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, first_name, last_name")
		}).
		Order("created_at DESC").
		Find(&invoices).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all invoices: %w", err)
	}

	invoicesJSON, err := json.Marshal(invoices)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal invoices: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, invoicesJSON, InvoiceCacheExpiry); err != nil {
		log.Printf("Failed to set invoices in cache: %v", err)
	}

	return invoices, nil
}

func (r *InvoiceRepository) GetByPatient(ctx context.Context, patientID string) ([]models.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var invoices []models.Invoice
	err := database.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&invoices).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get invoices for patient %s: %w", patientID, err)
	}
	return invoices, nil
}

// mutate runs op against a freshly loaded invoice under the per-invoice lock,
// then persists the header fields, any recomputed line totals and any newly
// appended ledger entries in one transaction. When op fails nothing is
// written.
func (r *InvoiceRepository) mutate(ctx context.Context, invoiceNumber string, op func(*models.Invoice) error) (*models.Invoice, error) {
	release, err := r.lockInvoice(ctx, invoiceNumber)
	if err != nil {
		return nil, err
	}
	defer release()

	invoice, err := r.loadInvoice(ctx, invoiceNumber)
	if err != nil {
		return nil, err
	}

	ledgerLen := len(invoice.Payments)
	if err := op(invoice); err != nil {
		return nil, err
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		for i := ledgerLen; i < len(invoice.Payments); i++ {
			if err := tx.Create(&invoice.Payments[i]).Error; err != nil {
				return fmt.Errorf("failed to record payment: %w", err)
			}
		}
		for i := range invoice.Items {
			item := &invoice.Items[i]
			if item.ID == 0 {
				continue
			}
			if err := tx.Model(&models.InvoiceItem{}).Where("id = ?", item.ID).
				Update("total_price", item.TotalPrice).Error; err != nil {
				return fmt.Errorf("failed to update line item: %w", err)
			}
		}
		updates := map[string]interface{}{
			"subtotal":          invoice.Subtotal,
			"discount_amount":   invoice.DiscountAmount,
			"tax_amount":        invoice.TaxAmount,
			"total_amount":      invoice.TotalAmount,
			"amount_paid":       invoice.AmountPaid,
			"remaining_balance": invoice.RemainingBalance,
			"status":            invoice.Status,
			"payment_status":    invoice.PaymentStatus,
			"void_reason":       invoice.VoidReason,
			"voided_at":         invoice.VoidedAt,
		}
		if err := tx.Model(&models.Invoice{}).Where("invoice_number = ?", invoiceNumber).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update invoice: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.invalidate(ctx, invoice.InvoiceNumber, invoice.PatientID)
	return invoice, nil
}

// AddPayment appends a payment to the invoice's ledger.
func (r *InvoiceRepository) AddPayment(ctx context.Context, invoiceNumber string, payment models.Payment) (*models.Invoice, error) {
	return r.mutate(ctx, invoiceNumber, func(invoice *models.Invoice) error {
		return invoice.ApplyPayment(payment, time.Now())
	})
}

// MarkAsPaid settles the remaining balance in a single payment.
func (r *InvoiceRepository) MarkAsPaid(ctx context.Context, invoiceNumber string, method models.PaymentMethod, receivedBy, notes string) (*models.Invoice, error) {
	return r.mutate(ctx, invoiceNumber, func(invoice *models.Invoice) error {
		return invoice.MarkAsPaid(method, receivedBy, notes, time.Now())
	})
}

// Void marks the invoice void, keeping its ledger.
func (r *InvoiceRepository) Void(ctx context.Context, invoiceNumber string, reason string) (*models.Invoice, error) {
	return r.mutate(ctx, invoiceNumber, func(invoice *models.Invoice) error {
		return invoice.Void(reason, time.Now())
	})
}

// Recalculate re-derives the totals from the stored line items.
func (r *InvoiceRepository) Recalculate(ctx context.Context, invoiceNumber string) (*models.Invoice, error) {
	return r.mutate(ctx, invoiceNumber, func(invoice *models.Invoice) error {
		invoice.Recalculate()
		invoice.RefreshPaymentStatus(time.Now())
		return nil
	})
}

// Duplicate creates a fresh draft copy of the invoice with a new number and
// an empty ledger.
func (r *InvoiceRepository) Duplicate(ctx context.Context, invoiceNumber string) (*models.Invoice, error) {
	original, err := r.loadInvoice(ctx, invoiceNumber)
	if err != nil {
		return nil, err
	}

	dup := original.Duplicate(time.Now(), DefaultPaymentTerm)
	next, err := r.NextInvoiceNumber(ctx)
	if err != nil {
		return nil, err
	}
	dup.InvoiceNumber = next

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(dup).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to duplicate invoice: %w", err)
	}
	r.invalidate(ctx, dup.InvoiceNumber, dup.PatientID)
	return dup, nil
}

// invalidate drops the cached copies touched by a write.
func (r *InvoiceRepository) invalidate(ctx context.Context, invoiceNumber, patientID string) {
	if err := r.cache.Delete(ctx, r.getInvoiceCacheKey(invoiceNumber)); err != nil {
		log.Printf("Failed to delete invoice cache: %v", err)
	}
	if err := r.cache.DeleteAll(ctx, "invoices_cache"); err != nil {
		log.Printf("Failed to delete all invoices cache: %v", err)
	}
	if err := r.cache.Delete(ctx, r.getPatientCacheKey(patientID)); err != nil {
		log.Printf("Failed to delete patient cache: %v", err)
	}
	if err := r.cache.DeleteAll(ctx, "patients_cache"); err != nil {
		log.Printf("Failed to delete all patients cache: %v", err)
	}
}

func (r *InvoiceRepository) getInvoiceCacheKey(invoiceNumber string) string {
	return fmt.Sprintf("invoice_cache:%s", invoiceNumber)
}

func (r *InvoiceRepository) getPatientCacheKey(patientID string) string {
	return fmt.Sprintf("patient_cache:%s", patientID)
}
