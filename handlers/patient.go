package handlers

import (
	"net/http"

	"healthguard/services/patient"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PatientHandler exposes doctor-facing patient management endpoints.
type PatientHandler struct {
	Patients patient.PatientService
}

// Create onboards a new patient under the authenticated doctor.
func (h *PatientHandler) Create(c *gin.Context) {
	logger := getLogger(c)

	var req patient.OnboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid patient request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	req.DoctorID = accountID(c)

	result, err := h.Patients.Onboard(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// List returns the authenticated doctor's patients.
func (h *PatientHandler) List(c *gin.Context) {
	logger := getLogger(c)

	patients, err := h.Patients.ListByDoctor(accountID(c))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"patients": patients})
}

// Get returns one of the authenticated doctor's patients.
func (h *PatientHandler) Get(c *gin.Context) {
	logger := getLogger(c)

	p, err := h.Patients.Get(accountID(c), c.Param("id"))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Update applies a partial edit to one of the doctor's patients.
func (h *PatientHandler) Update(c *gin.Context) {
	logger := getLogger(c)

	var req patient.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid patient update request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	updated, err := h.Patients.Update(accountID(c), c.Param("id"), req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes one of the doctor's patients.
func (h *PatientHandler) Delete(c *gin.Context) {
	logger := getLogger(c)

	if err := h.Patients.Delete(accountID(c), c.Param("id")); err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Patient deleted"})
}
