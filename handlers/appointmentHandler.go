package handlers

import (
	"strconv"

	"github.com/bittarwork/hospital-management-system-sub001/models"
	"github.com/bittarwork/hospital-management-system-sub001/services"
	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	service *services.AppointmentService
}

func NewAppointmentHandler(service *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var appointment models.Appointment
	if err := c.ShouldBindJSON(&appointment); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	appointment.PatientID = c.Param("patient_id")
	if err := h.service.Create(c, &appointment); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(201, appointment)
}

func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("appointment_id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid appointment id"})
		return
	}
	appointment, err := h.service.GetByID(c, uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, appointment)
}

func (h *AppointmentHandler) GetAllAppointments(c *gin.Context) {
	if patientID := c.Param("patient_id"); patientID != "" {
		appointments, err := h.service.GetByPatient(c, patientID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, appointments)
		return
	}
	appointments, err := h.service.GetAll(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, appointments)
}

func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("appointment_id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid appointment id"})
		return
	}
	var appointment models.Appointment
	if err := c.ShouldBindJSON(&appointment); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	appointment.ID = uint(id)
	appointment.PatientID = c.Param("patient_id")
	if err := h.service.Update(c, &appointment); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, appointment)
}

func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("appointment_id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid appointment id"})
		return
	}
	if err := h.service.Delete(c, uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(204, gin.H{"message": "Appointment deleted"})
}
