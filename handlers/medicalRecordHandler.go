package handlers

import (
	"strconv"

	"github.com/bittarwork/hospital-management-system-sub001/models"
	"github.com/bittarwork/hospital-management-system-sub001/services"
	"github.com/gin-gonic/gin"
)

type MedicalRecordHandler struct {
	service *services.MedicalRecordService
}

func NewMedicalRecordHandler(service *services.MedicalRecordService) *MedicalRecordHandler {
	return &MedicalRecordHandler{service: service}
}

func (h *MedicalRecordHandler) CreateMedicalRecord(c *gin.Context) {
	var record models.MedicalRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	record.PatientID = c.Param("patient_id")
	if err := h.service.Create(c, &record); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(201, record)
}

func (h *MedicalRecordHandler) GetMedicalRecordByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("record_id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid medical record id"})
		return
	}
	record, err := h.service.GetByID(c, uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, record)
}

func (h *MedicalRecordHandler) GetMedicalRecordsByPatient(c *gin.Context) {
	patientID := c.Param("patient_id")
	records, err := h.service.GetByPatient(c, patientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, records)
}

func (h *MedicalRecordHandler) UpdateMedicalRecord(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("record_id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid medical record id"})
		return
	}
	var record models.MedicalRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	record.ID = uint(id)
	record.PatientID = c.Param("patient_id")
	if err := h.service.Update(c, &record); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, record)
}

func (h *MedicalRecordHandler) DeleteMedicalRecord(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("record_id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid medical record id"})
		return
	}
	if err := h.service.Delete(c, uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(204, gin.H{"message": "Medical record deleted"})
}
