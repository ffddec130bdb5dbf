package handlers

import (
	"net/http"

	"healthguard/services/report"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReportHandler exposes health report endpoints.
type ReportHandler struct {
	Reports report.ReportService
}

// Create records a diagnostic report for one of the doctor's patients.
func (h *ReportHandler) Create(c *gin.Context) {
	logger := getLogger(c)

	var req report.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid report request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	req.DoctorID = accountID(c)

	rep, err := h.Reports.Create(req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, rep)
}

// List returns reports for the authenticated subject. Doctors pass the
// patientId query parameter; patients see their own.
func (h *ReportHandler) List(c *gin.Context) {
	logger := getLogger(c)

	kind, _ := c.Get("accountKind")
	patientID := c.Query("patientId")
	if kind != "doctor" {
		patientID = accountID(c)
	}
	if patientID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "patientId is required", "code": "invalid_request"})
		return
	}

	reports, err := h.Reports.ListByPatient(patientID)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// Delete removes a report uploaded by the doctor.
func (h *ReportHandler) Delete(c *gin.Context) {
	logger := getLogger(c)

	if err := h.Reports.Delete(accountID(c), c.Param("id")); err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Report deleted"})
}
