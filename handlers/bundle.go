package handlers

// HandlerBundle groups all endpoint handlers into one struct so route
// registration takes a single dependency.
type HandlerBundle struct {
	Auth         *AuthHandler
	Patients     *PatientHandler
	Reminders    *ReminderHandler
	Appointments *AppointmentHandler
	Medications  *MedicationHandler
	Reports      *ReportHandler
	Feedback     *FeedbackHandler
	Dashboard    *DashboardHandler
}
