package handlers

import (
	"net/http"

	"healthguard/services/dashboard"

	"github.com/gin-gonic/gin"
)

// DashboardHandler exposes aggregate views.
type DashboardHandler struct {
	Dashboard dashboard.DashboardService
}

// Patient returns the patient home screen aggregate. Patients can only see
// their own; doctors can view any of their patients'.
func (h *DashboardHandler) Patient(c *gin.Context) {
	logger := getLogger(c)

	requestedID := c.Param("id")
	kind, _ := c.Get("accountKind")
	if kind != "doctor" && requestedID != accountID(c) {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "You can only view your own dashboard",
			"code":  "forbidden",
		})
		return
	}

	view, err := h.Dashboard.PatientDashboard(requestedID)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	if kind == "doctor" && view.Patient.DoctorID != accountID(c) {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "This patient is not under your care",
			"code":  "forbidden",
		})
		return
	}
	c.JSON(http.StatusOK, view)
}
