package database

import (
	"fmt"
	"log"
	"time"

	"github.com/bittarwork/hospital-management-system-sub001/config"
	"github.com/bittarwork/hospital-management-system-sub001/models"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var seedFirstNames = []string{"Amira", "Omar", "Lina", "Karim", "Sara", "Hadi", "Nour", "Tarek", "Maya", "Ziad"}
var seedLastNames = []string{"Haddad", "Khalil", "Nassar", "Saab", "Aoun", "Fares", "Mansour", "Ghanem", "Sleiman", "Rahme"}
var seedSpecializations = []string{"General Medicine", "Cardiology", "Pediatrics", "Orthopedics", "Dermatology", "Neurology"}

// SeedDemoData populates demo doctors and patients when enabled. Records are
// created with deterministic ids so reruns are idempotent.
func SeedDemoData(cfg config.SeedConfig) error {
	if !cfg.Enabled {
		return nil
	}

	for i := 0; i < cfg.Doctors; i++ {
		doctor := models.Doctor{
			ID:              fmt.Sprintf("D-%03d", i+1),
			FirstName:       seedFirstNames[i%len(seedFirstNames)],
			LastName:        seedLastNames[i%len(seedLastNames)],
			Specialization:  seedSpecializations[i%len(seedSpecializations)],
			ConsultationFee: decimal.NewFromInt(int64(100 + 25*(i%5))),
		}
		if err := DB.FirstOrCreate(&doctor, models.Doctor{ID: doctor.ID}).Error; err != nil {
			return errors.Wrapf(err, "failed to seed doctor %s", doctor.ID)
		}
	}

	for i := 0; i < cfg.Patients; i++ {
		patient := models.Patient{
			ID:          fmt.Sprintf("P-%03d", i+1),
			FirstName:   seedFirstNames[(i+3)%len(seedFirstNames)],
			LastName:    seedLastNames[(i+5)%len(seedLastNames)],
			Sex:         []string{"Male", "Female"}[i%2],
			DateOfBirth: time.Date(1960+i%40, time.Month(1+i%12), 1+i%28, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
		}
		// Every third patient carries insurance with an 80% coverage rate.
		if i%3 == 0 {
			patient.InsuranceProvider = "MedCare Insurance"
			patient.InsurancePolicyNumber = fmt.Sprintf("POL-%05d", i+1)
			patient.InsuranceCoveragePercent = decimal.NewFromInt(80)
		}
		if err := DB.FirstOrCreate(&patient, models.Patient{ID: patient.ID}).Error; err != nil {
			return errors.Wrapf(err, "failed to seed patient %s", patient.ID)
		}
	}

	log.Printf("Demo data seeded: %d doctors, %d patients", cfg.Doctors, cfg.Patients)
	return nil
}
