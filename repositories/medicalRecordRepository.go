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
	MedicalRecordCacheExpiry = 7 * 24 * time.Hour
)

type MedicalRecordRepository struct {
	cache *cache.Cache
}

func NewMedicalRecordRepository(cache *cache.Cache) *MedicalRecordRepository {
	return &MedicalRecordRepository{cache: cache}
}

func (r *MedicalRecordRepository) Create(ctx context.Context, record *models.MedicalRecord) error {
	if record.RecordDate.IsZero() {
		record.RecordDate = time.Now()
	}
	if err := database.DB.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create medical record: %w", err)
	}
	r.invalidate(ctx, record.PatientID)
	return nil
}

func (r *MedicalRecordRepository) GetByID(ctx context.Context, id uint) (*models.MedicalRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var record models.MedicalRecord
	err := database.DB.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.NotFoundError{Entity: "medical record", ID: fmt.Sprint(id)}
		}
		return nil, fmt.Errorf("failed to get medical record: %w", err)
	}
	return &record, nil
}

func (r *MedicalRecordRepository) GetByPatient(ctx context.Context, patientID string) ([]models.MedicalRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getPatientRecordsCacheKey(patientID)
	cachedRecords, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var records []models.MedicalRecord
		if err := json.Unmarshal([]byte(cachedRecords), &records); err == nil {
			return records, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get medical records from cache: %v", err)
	}

	var records []models.MedicalRecord
	err = database.DB.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("record_date DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get medical records for patient %s: %w", patientID, err)
	}

	recordsJSON, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal medical records: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, recordsJSON, MedicalRecordCacheExpiry); err != nil {
		log.Printf("Failed to set medical records in cache: %v", err)
	}

	return records, nil
}

func (r *MedicalRecordRepository) Update(ctx context.Context, record *models.MedicalRecord) error {
	var existing models.MedicalRecord
	if err := database.DB.WithContext(ctx).First(&existing, "id = ?", record.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.NotFoundError{Entity: "medical record", ID: fmt.Sprint(record.ID)}
		}
		return fmt.Errorf("failed to find medical record: %w", err)
	}
	if err := database.DB.WithContext(ctx).Save(record).Error; err != nil {
		return fmt.Errorf("failed to update medical record: %w", err)
	}
	r.invalidate(ctx, record.PatientID)
	return nil
}

func (r *MedicalRecordRepository) Delete(ctx context.Context, id uint) error {
	var record models.MedicalRecord
	if err := database.DB.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.NotFoundError{Entity: "medical record", ID: fmt.Sprint(id)}
		}
		return fmt.Errorf("failed to find medical record: %w", err)
	}
	if err := database.DB.WithContext(ctx).Delete(&models.MedicalRecord{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete medical record: %w", err)
	}
	r.invalidate(ctx, record.PatientID)
	return nil
}

func (r *MedicalRecordRepository) invalidate(ctx context.Context, patientID string) {
	if err := r.cache.Delete(ctx, r.getPatientRecordsCacheKey(patientID)); err != nil {
		log.Printf("Failed to delete medical records cache: %v", err)
	}
}

func (r *MedicalRecordRepository) getPatientRecordsCacheKey(patientID string) string {
	return fmt.Sprintf("medical_records_cache:%s", patientID)
}
