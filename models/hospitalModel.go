package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Doctor model
type Doctor struct {
	ID              string          `gorm:"primaryKey;column:id" json:"id"`
	FirstName       string          `gorm:"column:first_name;not null" json:"first_name"`
	LastName        string          `gorm:"column:last_name;not null;index" json:"last_name"`
	Specialization  string          `gorm:"column:specialization" json:"specialization"`
	Phone           string          `gorm:"column:phone" json:"phone"`
	Email           string          `gorm:"column:email" json:"email"`
	ConsultationFee decimal.Decimal `gorm:"column:consultation_fee;type:numeric(12,2)" json:"consultation_fee"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Appointments    []Appointment   `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
	Invoices        []Invoice       `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
}

func (Doctor) TableName() string {
	return "doctor"
}

// Patient model
type Patient struct {
	ID                       string          `gorm:"primaryKey;column:id" json:"id"`
	FirstName                string          `gorm:"column:first_name;not null" json:"first_name"`
	MiddleName               string          `gorm:"column:middle_name" json:"middle_name"`
	LastName                 string          `gorm:"column:last_name;not null;index" json:"last_name"`
	Sex                      string          `gorm:"column:sex;check:sex IN ('Male', 'Female', 'Other');not null" json:"sex"`
	DateOfBirth              string          `gorm:"column:date_of_birth;not null;index" json:"date_of_birth"`
	Phone                    string          `gorm:"column:phone" json:"phone"`
	Email                    string          `gorm:"column:email" json:"email"`
	Address                  string          `gorm:"column:address" json:"address"`
	InsuranceProvider        string          `gorm:"column:insurance_provider" json:"insurance_provider"`
	InsurancePolicyNumber    string          `gorm:"column:insurance_policy_number" json:"insurance_policy_number"`
	InsuranceCoveragePercent decimal.Decimal `gorm:"column:insurance_coverage_percent;type:numeric(5,2)" json:"insurance_coverage_percent"`
	CreatedAt                time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Appointments             []Appointment   `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	MedicalRecords           []MedicalRecord `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	Invoices                 []Invoice       `gorm:"foreignKey:PatientID;references:ID" json:"-"`
}

func (Patient) TableName() string {
	return "patient"
}

// Appointment types mirror the services the hospital bills for.
type AppointmentType string

const (
	AppointmentConsultation   AppointmentType = "consultation"
	AppointmentFollowUp       AppointmentType = "follow_up"
	AppointmentEmergency      AppointmentType = "emergency"
	AppointmentProcedure      AppointmentType = "procedure"
	AppointmentDiagnostic     AppointmentType = "diagnostic"
	AppointmentScreening      AppointmentType = "screening"
	AppointmentRoutineCheckup AppointmentType = "routine_checkup"
)

type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentNoShow    AppointmentStatus = "no_show"
)

// Appointment model
type Appointment struct {
	ID        uint              `gorm:"primaryKey;autoIncrement;column:id;index" json:"id"`
	PatientID string            `gorm:"column:patient_id;not null;index" json:"patient_id"`
	DoctorID  string            `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	DateTime  time.Time         `gorm:"column:date_time;not null;index" json:"date_time"`
	Type      AppointmentType   `gorm:"column:type;check:type IN ('consultation', 'follow_up', 'emergency', 'procedure', 'diagnostic', 'screening', 'routine_checkup');not null" json:"type"`
	Status    AppointmentStatus `gorm:"column:status;check:status IN ('scheduled', 'completed', 'cancelled', 'no_show');not null" json:"status"`
	Reason    string            `gorm:"column:reason" json:"reason"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Patient   Patient           `gorm:"foreignKey:PatientID;references:ID" json:"patient"`
	Doctor    Doctor            `gorm:"foreignKey:DoctorID;references:ID" json:"doctor"`
}

func (Appointment) TableName() string {
	return "appointment"
}

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentScheduled, AppointmentCompleted, AppointmentCancelled, AppointmentNoShow:
		return true
	}
	return false
}

// MedicalRecord model
type MedicalRecord struct {
	ID            uint      `gorm:"primaryKey;autoIncrement;column:id;index" json:"id"`
	PatientID     string    `gorm:"column:patient_id;not null;index" json:"patient_id"`
	DoctorID      string    `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	AppointmentID *uint     `gorm:"column:appointment_id;index" json:"appointment_id,omitempty"`
	Diagnosis     string    `gorm:"column:diagnosis;not null" json:"diagnosis"`
	Treatment     string    `gorm:"column:treatment" json:"treatment"`
	Prescriptions string    `gorm:"column:prescriptions" json:"prescriptions"`
	RecordDate    time.Time `gorm:"column:record_date;not null;index" json:"record_date"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Patient       Patient   `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	Doctor        Doctor    `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
}

func (MedicalRecord) TableName() string {
	return "medical_record"
}
