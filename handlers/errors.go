package handlers

import (
	"errors"
	"net/http"

	appointmentRepo "healthguard/database/repository/appointment"
	medicationRepo "healthguard/database/repository/medication"
	patientRepo "healthguard/database/repository/patient"
	reminderRepo "healthguard/database/repository/reminder"
	reportRepo "healthguard/database/repository/report"
	"healthguard/services/appointment"
	"healthguard/services/auth"
	"healthguard/services/medication"
	"healthguard/services/patient"
	"healthguard/services/reminder"
	"healthguard/services/report"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError translates a service error into an HTTP response. Unknown
// errors become a 500 with a generic message; details stay in the logs.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	switch e := err.(type) {
	case auth.AuthError:
		c.JSON(http.StatusUnauthorized, gin.H{"error": e.Message, "code": e.Code})
		return
	case auth.ValidationError, patient.ValidationError, reminder.ValidationError,
		appointment.ValidationError, medication.ValidationError, report.ValidationError:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "invalid_request"})
		return
	case auth.ConflictError, patient.ConflictError:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "conflict"})
		return
	case patient.NotOwnerError, reminder.NotOwnerError, appointment.NotOwnerError,
		medication.NotOwnerError, report.NotOwnerError:
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error(), "code": "forbidden"})
		return
	}

	if errors.Is(err, patientRepo.ErrNotFound) ||
		errors.Is(err, reminderRepo.ErrNotFound) ||
		errors.Is(err, appointmentRepo.ErrNotFound) ||
		errors.Is(err, medicationRepo.ErrNotFound) ||
		errors.Is(err, reportRepo.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "code": "not_found"})
		return
	}

	logger.Error("Unhandled service error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "code": "internal"})
}

// accountID returns the authenticated subject's ID set by the auth middleware.
func accountID(c *gin.Context) string {
	if v, ok := c.Get("accountID"); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
