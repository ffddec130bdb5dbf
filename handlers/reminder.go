package handlers

import (
	"fmt"
	"net/http"

	"healthguard/models"
	"healthguard/services/reminder"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReminderHandler exposes reminder schedule management endpoints.
type ReminderHandler struct {
	Reminders reminder.ReminderService
}

func creationMessage(schedule *models.ReminderSchedule, emailSent bool) string {
	if !emailSent {
		return fmt.Sprintf("Reminder logged (email failed) for %s", schedule.PatientEmail)
	}
	if schedule.Frequency == models.FrequencyOnce {
		return fmt.Sprintf("Reminder sent to %s", schedule.PatientEmail)
	}
	return fmt.Sprintf("Reminder scheduled & first email sent to %s", schedule.PatientEmail)
}

// Create schedules a reminder and attempts the first send synchronously.
func (h *ReminderHandler) Create(c *gin.Context) {
	logger := getLogger(c)

	var req reminder.CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid reminder request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	req.DoctorID = accountID(c)

	schedule, emailSent, err := h.Reminders.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"reminder":  schedule,
		"emailSent": emailSent,
		"message":   creationMessage(schedule, emailSent),
	})
}

// List returns the authenticated doctor's reminder schedules.
func (h *ReminderHandler) List(c *gin.Context) {
	logger := getLogger(c)

	schedules, err := h.Reminders.ListByDoctor(accountID(c))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reminders": schedules})
}

// Update applies a partial edit to one of the doctor's schedules.
func (h *ReminderHandler) Update(c *gin.Context) {
	logger := getLogger(c)

	var req reminder.UpdateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid reminder update request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	updated, err := h.Reminders.Update(accountID(c), c.Param("id"), req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes one of the doctor's schedules.
func (h *ReminderHandler) Delete(c *gin.Context) {
	logger := getLogger(c)

	if err := h.Reminders.Delete(accountID(c), c.Param("id")); err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reminder deleted"})
}
