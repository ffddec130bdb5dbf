package handlers

import (
	"net/http"

	"healthguard/services/medication"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MedicationHandler exposes prescription management endpoints.
type MedicationHandler struct {
	Medications medication.MedicationService
}

// Create records a prescription for one of the doctor's patients.
func (h *MedicationHandler) Create(c *gin.Context) {
	logger := getLogger(c)

	var req medication.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid medication request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	req.DoctorID = accountID(c)

	med, err := h.Medications.Create(req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, med)
}

// List returns medications for the authenticated subject. Doctors can narrow
// to one patient with the patientId query parameter.
func (h *MedicationHandler) List(c *gin.Context) {
	logger := getLogger(c)

	kind, _ := c.Get("accountKind")
	patientID := c.Query("patientId")
	doctorID := ""
	if kind == "doctor" {
		doctorID = accountID(c)
	} else {
		patientID = accountID(c)
	}

	meds, err := h.Medications.List(patientID, doctorID)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"medications": meds})
}

// Update applies a partial edit to one of the doctor's prescriptions.
func (h *MedicationHandler) Update(c *gin.Context) {
	logger := getLogger(c)

	var req medication.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid medication update request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	updated, err := h.Medications.Update(accountID(c), c.Param("id"), req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes one of the doctor's prescriptions.
func (h *MedicationHandler) Delete(c *gin.Context) {
	logger := getLogger(c)

	if err := h.Medications.Delete(accountID(c), c.Param("id")); err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Medication deleted"})
}
