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
	"gorm.io/gorm"
)

const (
	AppointmentCacheExpiry = 7 * 24 * time.Hour
)

type AppointmentRepository struct {
	cache *cache.Cache
}

func NewAppointmentRepository(cache *cache.Cache) *AppointmentRepository {
	return &AppointmentRepository{cache: cache}
}

func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	if appointment.Status == "" {
		appointment.Status = models.AppointmentScheduled
	}
	if !appointment.Status.Valid() {
		return models.NewValidationError("status", fmt.Sprintf("unknown appointment status %q", appointment.Status))
	}
	if err := database.DB.WithContext(ctx).Create(appointment).Error; err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	r.invalidate(ctx, appointment.ID, appointment.PatientID)
	return nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getAppointmentCacheKey(id)
	cachedAppointment, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var appointment models.Appointment
		if err := json.Unmarshal([]byte(cachedAppointment), &appointment); err == nil {
			return &appointment, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get appointment from cache: %v", err)
	}

	var appointment models.Appointment
	err = database.DB.WithContext(ctx).
		Preload("Patient", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, first_name, last_name, email, insurance_provider, insurance_coverage_percent")
		}).
		Preload("Doctor", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, first_name, last_name, consultation_fee")
		}).
		First(&appointment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.NotFoundError{Entity: "appointment", ID: fmt.Sprint(id)}
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	appointmentJSON, err := json.Marshal(appointment)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal appointment: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, appointmentJSON, AppointmentCacheExpiry); err != nil {
		log.Printf("Failed to set appointment in cache: %v", err)
	}

	return &appointment, nil
}

func (r *AppointmentRepository) GetByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appointments []models.Appointment
	err := database.DB.WithContext(ctx).
		Preload("Doctor", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, first_name, last_name")
		}).
		Where("patient_id = ?", patientID).
		Order("date_time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get appointments for patient %s: %w", patientID, err)
	}
	return appointments, nil
}

func (r *AppointmentRepository) GetAll(ctx context.Context) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := "appointments_cache"
	cachedAppointments, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var appointments []models.Appointment
		if err := json.Unmarshal([]byte(cachedAppointments), &appointments); err == nil {
			return appointments, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get appointments from cache: %v", err)
	}

	var appointments []models.Appointment
	err = database.DB.WithContext(ctx).
		Preload("Patient", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, first_name, last_name")
		}).
		Preload("Doctor", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, first_name, last_name")
		}).
		Order("date_time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all appointments: %w", err)
	}

	appointmentsJSON, err := json.Marshal(appointments)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal appointments: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, appointmentsJSON, AppointmentCacheExpiry); err != nil {
		log.Printf("Failed to set appointments in cache: %v", err)
	}

	return appointments, nil
}

func (r *AppointmentRepository) Update(ctx context.Context, appointment *models.Appointment) error {
	if !appointment.Status.Valid() {
		return models.NewValidationError("status", fmt.Sprintf("unknown appointment status %q", appointment.Status))
	}
	var existing models.Appointment
	if err := database.DB.WithContext(ctx).First(&existing, "id = ?", appointment.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.NotFoundError{Entity: "appointment", ID: fmt.Sprint(appointment.ID)}
		}
		return fmt.Errorf("failed to find appointment: %w", err)
	}
	if err := database.DB.WithContext(ctx).Save(appointment).Error; err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}
	r.invalidate(ctx, appointment.ID, appointment.PatientID)
	return nil
}

func (r *AppointmentRepository) Delete(ctx context.Context, id uint) error {
	var appointment models.Appointment
	if err := database.DB.WithContext(ctx).First(&appointment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.NotFoundError{Entity: "appointment", ID: fmt.Sprint(id)}
		}
		return fmt.Errorf("failed to find appointment: %w", err)
	}
	if err := database.DB.WithContext(ctx).Delete(&models.Appointment{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	r.invalidate(ctx, id, appointment.PatientID)
	return nil
}

func (r *AppointmentRepository) invalidate(ctx context.Context, id uint, patientID string) {
	if err := r.cache.Delete(ctx, r.getAppointmentCacheKey(id)); err != nil {
		log.Printf("Failed to delete appointment cache: %v", err)
	}
	if err := r.cache.DeleteAll(ctx, "appointments_cache"); err != nil {
		log.Printf("Failed to delete all appointments cache: %v", err)
	}
	if err := r.cache.Delete(ctx, fmt.Sprintf("patient_cache:%s", patientID)); err != nil {
		log.Printf("Failed to delete patient cache: %v", err)
	}
}

func (r *AppointmentRepository) getAppointmentCacheKey(id uint) string {
	return fmt.Sprintf("appointment_cache:%d", id)
}
