package handlers

import (
	"net/http"

	"healthguard/services/appointment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppointmentHandler exposes visit scheduling endpoints.
type AppointmentHandler struct {
	Appointments appointment.AppointmentService
}

// Create schedules a visit for one of the doctor's patients.
func (h *AppointmentHandler) Create(c *gin.Context) {
	logger := getLogger(c)

	var req appointment.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid appointment request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	req.DoctorID = accountID(c)

	appt, err := h.Appointments.Create(req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// List returns appointments for the authenticated subject. Doctors see their
// schedule in date order; patients see their own visits, newest first.
func (h *AppointmentHandler) List(c *gin.Context) {
	logger := getLogger(c)

	kind, _ := c.Get("accountKind")
	var err error
	var appts interface{}
	if kind == "doctor" {
		appts, err = h.Appointments.ListByDoctor(accountID(c))
	} else {
		appts, err = h.Appointments.ListByPatient(accountID(c))
	}
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// Update applies a partial edit to one of the doctor's appointments.
func (h *AppointmentHandler) Update(c *gin.Context) {
	logger := getLogger(c)

	var req appointment.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid appointment update request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	updated, err := h.Appointments.Update(accountID(c), c.Param("id"), req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes one of the doctor's appointments.
func (h *AppointmentHandler) Delete(c *gin.Context) {
	logger := getLogger(c)

	if err := h.Appointments.Delete(accountID(c), c.Param("id")); err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted"})
}
