package controllers

import (
	"github.com/bittarwork/hospital-management-system-sub001/handlers"
	"github.com/gin-gonic/gin"
)

// SetupHospitalRoutes registers the routes for patients, doctors,
// appointments, medical records and billing.
func SetupHospitalRoutes(router *gin.Engine, patientHandler *handlers.PatientHandler, doctorHandler *handlers.DoctorHandler, appointmentHandler *handlers.AppointmentHandler, medicalRecordHandler *handlers.MedicalRecordHandler, invoiceHandler *handlers.InvoiceHandler) {
	// Define the routes directly on the router
	router.POST("/doctors", doctorHandler.CreateDoctor)
	router.GET("/doctors/:id", doctorHandler.GetDoctorByID)
	router.PUT("/doctors/:id", doctorHandler.UpdateDoctor)
	router.DELETE("/doctors/:id", doctorHandler.DeleteDoctor)
	router.GET("/doctors", doctorHandler.GetAllDoctors)

	router.POST("/patients", patientHandler.CreatePatient)
	router.GET("/patients/:patient_id", patientHandler.GetPatientByID)
	router.PUT("/patients/:patient_id", patientHandler.UpdatePatient)
	router.DELETE("/patients/:patient_id", patientHandler.DeletePatient)
	router.GET("/patients", patientHandler.GetAllPatients)

	router.GET("/appointments", appointmentHandler.GetAllAppointments)
	router.POST("/patients/:patient_id/appointments", appointmentHandler.CreateAppointment)
	router.GET("/patients/:patient_id/appointments", appointmentHandler.GetAllAppointments)
	router.GET("/patients/:patient_id/appointments/:appointment_id", appointmentHandler.GetAppointmentByID)
	router.PUT("/patients/:patient_id/appointments/:appointment_id", appointmentHandler.UpdateAppointment)
	router.DELETE("/patients/:patient_id/appointments/:appointment_id", appointmentHandler.DeleteAppointment)

	router.POST("/patients/:patient_id/medical_records", medicalRecordHandler.CreateMedicalRecord)
	router.GET("/patients/:patient_id/medical_records", medicalRecordHandler.GetMedicalRecordsByPatient)
	router.GET("/patients/:patient_id/medical_records/:record_id", medicalRecordHandler.GetMedicalRecordByID)
	router.PUT("/patients/:patient_id/medical_records/:record_id", medicalRecordHandler.UpdateMedicalRecord)
	router.DELETE("/patients/:patient_id/medical_records/:record_id", medicalRecordHandler.DeleteMedicalRecord)

	router.POST("/invoices", invoiceHandler.CreateInvoice)
	router.GET("/invoices", invoiceHandler.GetAllInvoices)
	router.GET("/invoices/:invoice_number", invoiceHandler.GetInvoiceByNumber)
	router.POST("/invoices/:invoice_number/recalculate", invoiceHandler.RecalculateInvoice)
	router.POST("/invoices/:invoice_number/payments", invoiceHandler.AddPayment)
	router.POST("/invoices/:invoice_number/mark_paid", invoiceHandler.MarkInvoiceAsPaid)
	router.POST("/invoices/:invoice_number/void", invoiceHandler.VoidInvoice)
	router.POST("/invoices/:invoice_number/duplicate", invoiceHandler.DuplicateInvoice)
	router.GET("/patients/:patient_id/invoices", invoiceHandler.GetInvoicesByPatient)
	router.POST("/appointments/:appointment_id/invoice", invoiceHandler.GenerateFromAppointment)
}
