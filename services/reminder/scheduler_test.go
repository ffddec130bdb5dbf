package reminder

import (
	"context"
	"sync"
	"testing"
	"time"

	reminderRepo "healthguard/database/repository/reminder"
	"healthguard/models"
	"healthguard/services/mailer"

	"go.mongodb.org/mongo-driver/bson"
)

// ---------- Fakes ----------

type fakeMailer struct {
	mu      sync.Mutex
	sends   []mailer.Email
	failAll bool
	failTo  map[string]bool
}

func (f *fakeMailer) Send(_ context.Context, msg mailer.Email) mailer.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sends = append(f.sends, msg)
	if f.failAll || f.failTo[msg.To] {
		return mailer.Result{Success: false, Error: "email delivery failed: status 500"}
	}
	return mailer.Result{Success: true, MessageID: "msg-1"}
}

func (f *fakeMailer) sendCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sends)
}

type fakeReminderRepo struct {
	mu      sync.Mutex
	byID    map[string]*models.ReminderSchedule
	patches []bson.M
}

func newFakeReminderRepo() *fakeReminderRepo {
	return &fakeReminderRepo{byID: make(map[string]*models.ReminderSchedule)}
}

func (r *fakeReminderRepo) Create(s *models.ReminderSchedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.CreatedAt = time.Now()
	if s.Status == "" {
		s.Status = models.ReminderActive
	}
	cp := *s
	r.byID[s.ID] = &cp
	return nil
}

func (r *fakeReminderRepo) GetByID(id string) (*models.ReminderSchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeReminderRepo) ListByDoctor(doctorID string) ([]models.ReminderSchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ReminderSchedule
	for _, s := range r.byID {
		if s.DoctorID == doctorID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeReminderRepo) ListActive() ([]models.ReminderSchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ReminderSchedule
	for _, s := range r.byID {
		if s.Status == models.ReminderActive {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeReminderRepo) UpdateSetDocument(id string, patch bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok {
		return reminderRepo.ErrNotFound
	}
	r.patches = append(r.patches, patch)
	for k, v := range patch {
		switch k {
		case "subject":
			s.Subject = v.(string)
		case "message":
			s.Message = v.(string)
		case "frequency":
			s.Frequency = v.(string)
		case "interval":
			s.Interval = v.(int)
		case "scheduled_time":
			s.ScheduledTime = v.(string)
		case "status":
			s.Status = v.(string)
		case "fail_count":
			s.FailCount = v.(int)
		}
	}
	return nil
}

func (r *fakeReminderRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return reminderRepo.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeReminderRepo) MarkFired(id string, prevLastSent *time.Time, firedAt time.Time, completed bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok {
		return reminderRepo.ErrNotFound
	}
	// Same optimistic check the Mongo implementation performs via its filter.
	switch {
	case prevLastSent == nil && s.LastSent != nil:
		return reminderRepo.ErrFireConflict
	case prevLastSent != nil && (s.LastSent == nil || !s.LastSent.Equal(*prevLastSent)):
		return reminderRepo.ErrFireConflict
	}
	t := firedAt
	s.LastSent = &t
	s.FailCount = 0
	if completed {
		s.Status = models.ReminderCompleted
	}
	return nil
}

func (r *fakeReminderRepo) RecordFailure(id string, pauseAt int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok {
		return 0, reminderRepo.ErrNotFound
	}
	s.FailCount++
	if pauseAt > 0 && s.FailCount >= pauseAt && s.Status == models.ReminderActive {
		s.Status = models.ReminderPaused
	}
	return s.FailCount, nil
}

// ---------- Helpers ----------

func newTestService(repo *fakeReminderRepo, m *fakeMailer, now time.Time) *DefaultReminderService {
	return &DefaultReminderService{
		Repo:        repo,
		Mailer:      m,
		Now:         func() time.Time { return now },
		MaxFailures: 5,
	}
}

func seedSchedule(repo *fakeReminderRepo, id, frequency string, interval int, lastSent *time.Time) {
	repo.byID[id] = &models.ReminderSchedule{
		ID:           id,
		DoctorID:     "doc-1",
		PatientID:    "pat-1",
		PatientEmail: "patient@example.com",
		PatientName:  "Jane Roe",
		Subject:      "Take Medicine",
		Message:      "Paracetamol after lunch.",
		Frequency:    frequency,
		Interval:     interval,
		Status:       models.ReminderActive,
		LastSent:     lastSent,
		CreatedAt:    time.Now(),
	}
}

// ---------- Due-check ----------

func TestDue_NeverFiredIsAlwaysDue(t *testing.T) {
	now := time.Now()
	for _, freq := range []string{models.FrequencyOnce, models.FrequencyHourly, models.FrequencyDaily, models.FrequencyCustomDays} {
		s := &models.ReminderSchedule{Frequency: freq, Interval: 2}
		if !due(s, now) {
			t.Errorf("frequency %s with nil lastSent should be due", freq)
		}
	}
}

func TestDue_Boundaries(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		ts := now.Add(-d)
		return &ts
	}

	cases := []struct {
		name      string
		frequency string
		interval  int
		lastSent  *time.Time
		want      bool
	}{
		{"once already fired", models.FrequencyOnce, 1, at(time.Minute), false},
		{"hourly(2) just past boundary", models.FrequencyHourly, 2, at(2*time.Hour + time.Second), true},
		{"hourly(2) exactly at boundary", models.FrequencyHourly, 2, at(2 * time.Hour), true},
		{"hourly(2) before boundary", models.FrequencyHourly, 2, at(time.Hour + 59*time.Minute), false},
		{"daily after 24h", models.FrequencyDaily, 1, at(25 * time.Hour), true},
		{"daily before 24h", models.FrequencyDaily, 1, at(23 * time.Hour), false},
		{"custom-days(3) after 3 days", models.FrequencyCustomDays, 3, at(73 * time.Hour), true},
		{"custom-days(3) before 3 days", models.FrequencyCustomDays, 3, at(71 * time.Hour), false},
		{"zero interval treated as 1", models.FrequencyHourly, 0, at(61 * time.Minute), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := &models.ReminderSchedule{Frequency: tc.frequency, Interval: tc.interval, LastSent: tc.lastSent}
			if got := due(s, now); got != tc.want {
				t.Errorf("due() = %v, want %v", got, tc.want)
			}
		})
	}
}

// ---------- Create ----------

func TestCreate_OnceHealthyTransport(t *testing.T) {
	repo := newFakeReminderRepo()
	m := &fakeMailer{}
	now := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	svc := newTestService(repo, m, now)

	created, emailSent, err := svc.Create(context.Background(), CreateReminderRequest{
		DoctorID:     "doc-1",
		PatientID:    "pat-1",
		PatientEmail: "patient@example.com",
		PatientName:  "Jane Roe",
		Subject:      "Take Medicine",
		Message:      "Paracetamol after lunch.",
		Frequency:    models.FrequencyOnce,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !emailSent {
		t.Error("expected emailSent=true with a healthy transport")
	}
	if created.Status != models.ReminderCompleted {
		t.Errorf("once schedule should complete after first firing, got status %q", created.Status)
	}
	if created.LastSent == nil || !created.LastSent.Equal(now) {
		t.Errorf("lastSent should equal creation time, got %v", created.LastSent)
	}
	if m.sendCount() != 1 {
		t.Errorf("expected exactly one send, got %d", m.sendCount())
	}
}

func TestCreate_DailyFailingTransport(t *testing.T) {
	repo := newFakeReminderRepo()
	m := &fakeMailer{failAll: true}
	now := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	svc := newTestService(repo, m, now)

	created, emailSent, err := svc.Create(context.Background(), CreateReminderRequest{
		DoctorID:     "doc-1",
		PatientEmail: "patient@example.com",
		Subject:      "Take Medicine",
		Message:      "Every morning.",
		Frequency:    models.FrequencyDaily,
	})
	if err != nil {
		t.Fatalf("creation must succeed even when delivery fails, got: %v", err)
	}
	if emailSent {
		t.Error("expected emailSent=false with a failing transport")
	}
	if created.Status != models.ReminderActive {
		t.Errorf("schedule should remain active, got %q", created.Status)
	}
	if created.LastSent != nil {
		t.Errorf("lastSent must remain nil after a failed send, got %v", created.LastSent)
	}

	// Unchanged state means still due: the next evaluation attempts again.
	outcome, err := svc.EvaluateAndFire(context.Background(), created.ID)
	if outcome != OutcomeFailed {
		t.Errorf("expected OutcomeFailed on retry, got %v (err=%v)", outcome, err)
	}
	if m.sendCount() != 2 {
		t.Errorf("expected a second send attempt, got %d total", m.sendCount())
	}
	after, _ := repo.GetByID(created.ID)
	if after.LastSent != nil {
		t.Error("lastSent advanced despite failed delivery")
	}
}

func TestCreate_ThenListRoundTrip(t *testing.T) {
	repo := newFakeReminderRepo()
	m := &fakeMailer{}
	now := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	svc := newTestService(repo, m, now)

	created, _, err := svc.Create(context.Background(), CreateReminderRequest{
		DoctorID:     "doc-1",
		PatientID:    "pat-1",
		PatientEmail: "patient@example.com",
		PatientName:  "Jane Roe",
		Subject:      "Take Medicine",
		Message:      "Paracetamol after lunch.",
		Frequency:    models.FrequencyHourly,
		Interval:     2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	listed, err := svc.ListByDoctor("doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected one schedule, got %d", len(listed))
	}
	got := listed[0]
	if got.ID != created.ID || got.Subject != "Take Medicine" ||
		got.Frequency != models.FrequencyHourly || got.Interval != 2 {
		t.Errorf("listed schedule does not match created one: %+v", got)
	}

	other, err := svc.ListByDoctor("doc-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("foreign doctor must not see the schedule, got %d", len(other))
	}
}

func TestCreate_Validation(t *testing.T) {
	repo := newFakeReminderRepo()
	m := &fakeMailer{}
	svc := newTestService(repo, m, time.Now())

	cases := []CreateReminderRequest{
		{PatientEmail: "p@x.dev", Subject: "s", Message: "m"},                          // no doctor
		{DoctorID: "doc-1", Subject: "s", Message: "m"},                                // no email
		{DoctorID: "doc-1", PatientEmail: "p@x.dev", Message: "m"},                     // no subject
		{DoctorID: "doc-1", PatientEmail: "p@x.dev", Subject: "s"},                     // no message
		{DoctorID: "doc-1", PatientEmail: "p@x.dev", Subject: "s", Message: "m", Frequency: "weekly"}, // bad cadence
	}
	for i, req := range cases {
		if _, _, err := svc.Create(context.Background(), req); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
	if len(repo.byID) != 0 {
		t.Error("validation failures must not persist anything")
	}
	if m.sendCount() != 0 {
		t.Error("validation failures must not attempt delivery")
	}
}

// ---------- EvaluateAndFire ----------

func TestEvaluateAndFire_SkipsPausedAndNotDue(t *testing.T) {
	repo := newFakeReminderRepo()
	m := &fakeMailer{}
	now := time.Now()
	svc := newTestService(repo, m, now)

	recent := now.Add(-10 * time.Minute)
	seedSchedule(repo, "r-paused", models.FrequencyDaily, 1, nil)
	repo.byID["r-paused"].Status = models.ReminderPaused
	seedSchedule(repo, "r-fresh", models.FrequencyDaily, 1, &recent)

	for _, id := range []string{"r-paused", "r-fresh"} {
		outcome, err := svc.EvaluateAndFire(context.Background(), id)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", id, err)
		}
		if outcome != OutcomeSkipped {
			t.Errorf("%s: expected OutcomeSkipped, got %v", id, outcome)
		}
	}
	if m.sendCount() != 0 {
		t.Errorf("no sends expected, got %d", m.sendCount())
	}
}

func TestEvaluateAndFire_RecurringAdvancesLastSent(t *testing.T) {
	repo := newFakeReminderRepo()
	m := &fakeMailer{}
	now := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	svc := newTestService(repo, m, now)

	old := now.Add(-3 * time.Hour)
	seedSchedule(repo, "r-1", models.FrequencyHourly, 2, &old)

	outcome, err := svc.EvaluateAndFire(context.Background(), "r-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != OutcomeFired {
		t.Fatalf("expected OutcomeFired, got %v", outcome)
	}
	after, _ := repo.GetByID("r-1")
	if after.Status != models.ReminderActive {
		t.Errorf("recurring schedule must stay active, got %q", after.Status)
	}
	if after.LastSent == nil || !after.LastSent.Equal(now) {
		t.Errorf("lastSent not advanced to now, got %v", after.LastSent)
	}
}

func TestEvaluateAndFire_MissingRecipient(t *testing.T) {
	repo := newFakeReminderRepo()
	m := &fakeMailer{}
	svc := newTestService(repo, m, time.Now())

	seedSchedule(repo, "r-1", models.FrequencyOnce, 1, nil)
	repo.byID["r-1"].PatientEmail = ""

	outcome, err := svc.EvaluateAndFire(context.Background(), "r-1")
	if outcome != OutcomeFailed {
		t.Errorf("expected OutcomeFailed, got %v", outcome)
	}
	if _, ok := err.(DeliveryError); !ok {
		t.Errorf("expected DeliveryError, got %T", err)
	}
	if m.sendCount() != 0 {
		t.Error("no transport call expected without a recipient")
	}
	after, _ := repo.GetByID("r-1")
	if after.FailCount != 1 {
		t.Errorf("missing recipient should be counted as a failure, got %d", after.FailCount)
	}
}

func TestEvaluateAndFire_AutoPauseAfterRepeatedFailures(t *testing.T) {
	repo := newFakeReminderRepo()
	m := &fakeMailer{failAll: true}
	svc := newTestService(repo, m, time.Now())
	svc.MaxFailures = 3

	seedSchedule(repo, "r-1", models.FrequencyDaily, 1, nil)

	for i := 0; i < 3; i++ {
		outcome, _ := svc.EvaluateAndFire(context.Background(), "r-1")
		if outcome != OutcomeFailed {
			t.Fatalf("attempt %d: expected OutcomeFailed, got %v", i+1, outcome)
		}
	}
	after, _ := repo.GetByID("r-1")
	if after.Status != models.ReminderPaused {
		t.Fatalf("expected auto-pause after 3 failures, got status %q", after.Status)
	}

	// Paused schedules are no longer evaluated.
	outcome, err := svc.EvaluateAndFire(context.Background(), "r-1")
	if err != nil || outcome != OutcomeSkipped {
		t.Errorf("paused schedule should be skipped, got %v (err=%v)", outcome, err)
	}
	if m.sendCount() != 3 {
		t.Errorf("expected 3 transport calls, got %d", m.sendCount())
	}
}

func TestEvaluateAndFire_ConcurrentSingleDelivery(t *testing.T) {
	repo := newFakeReminderRepo()
	m := &fakeMailer{}
	now := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	svc := newTestService(repo, m, now)

	seedSchedule(repo, "r-1", models.FrequencyDaily, 1, nil)

	const workers = 8
	var wg sync.WaitGroup
	fired := make(chan FireOutcome, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcome, _ := svc.EvaluateAndFire(context.Background(), "r-1")
			fired <- outcome
		}()
	}
	wg.Wait()
	close(fired)

	var firedCount int
	for o := range fired {
		if o == OutcomeFired {
			firedCount++
		}
	}
	if firedCount != 1 {
		t.Errorf("expected exactly one recorded delivery, got %d", firedCount)
	}
	if m.sendCount() != 1 {
		t.Errorf("expected exactly one transport call, got %d", m.sendCount())
	}
	after, _ := repo.GetByID("r-1")
	if after.LastSent == nil || !after.LastSent.Equal(now) {
		t.Errorf("lastSent advanced incorrectly: %v", after.LastSent)
	}
}

// ---------- Update / Delete ----------

func TestUpdate_OwnershipEnforced(t *testing.T) {
	repo := newFakeReminderRepo()
	svc := newTestService(repo, &fakeMailer{}, time.Now())
	seedSchedule(repo, "r-1", models.FrequencyDaily, 1, nil)

	subject := "New subject"
	if _, err := svc.Update("other-doc", "r-1", UpdateReminderRequest{Subject: &subject}); err == nil {
		t.Error("expected ownership error for a non-owning doctor")
	}
	if _, err := svc.Update("doc-1", "r-1", UpdateReminderRequest{Subject: &subject}); err != nil {
		t.Errorf("owner update failed: %v", err)
	}
}

func TestUpdate_NeverTouchesFiringFields(t *testing.T) {
	repo := newFakeReminderRepo()
	svc := newTestService(repo, &fakeMailer{}, time.Now())
	old := time.Now().Add(-time.Hour)
	seedSchedule(repo, "r-1", models.FrequencyDaily, 1, &old)

	message := "Updated message"
	paused := models.ReminderPaused
	if _, err := svc.Update("doc-1", "r-1", UpdateReminderRequest{Message: &message, Status: &paused}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, patch := range repo.patches {
		if _, ok := patch["last_sent"]; ok {
			t.Error("edit patch must never include last_sent")
		}
	}
	after, _ := repo.GetByID("r-1")
	if after.LastSent == nil || !after.LastSent.Equal(old) {
		t.Error("edit clobbered lastSent")
	}
}

func TestUpdate_CompletedCannotBeReactivated(t *testing.T) {
	repo := newFakeReminderRepo()
	svc := newTestService(repo, &fakeMailer{}, time.Now())
	seedSchedule(repo, "r-1", models.FrequencyOnce, 1, nil)
	repo.byID["r-1"].Status = models.ReminderCompleted

	active := models.ReminderActive
	if _, err := svc.Update("doc-1", "r-1", UpdateReminderRequest{Status: &active}); err == nil {
		t.Error("expected error when reactivating a completed schedule")
	}
}

func TestDelete(t *testing.T) {
	repo := newFakeReminderRepo()
	svc := newTestService(repo, &fakeMailer{}, time.Now())
	seedSchedule(repo, "r-1", models.FrequencyDaily, 1, nil)

	if err := svc.Delete("other-doc", "r-1"); err == nil {
		t.Error("expected ownership error")
	}
	if err := svc.Delete("doc-1", "r-1"); err != nil {
		t.Errorf("owner delete failed: %v", err)
	}
	if err := svc.Delete("doc-1", "r-1"); err != reminderRepo.ErrNotFound {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

// ---------- EvaluateDue ----------

func TestEvaluateDue_OneFailureDoesNotStopThePass(t *testing.T) {
	repo := newFakeReminderRepo()
	m := &fakeMailer{failTo: map[string]bool{"broken@example.com": true}}
	now := time.Now()
	svc := newTestService(repo, m, now)

	seedSchedule(repo, "r-bad", models.FrequencyDaily, 1, nil)
	repo.byID["r-bad"].PatientEmail = "broken@example.com"
	seedSchedule(repo, "r-good", models.FrequencyDaily, 1, nil)

	summary := svc.EvaluateDue(context.Background())
	if summary.Evaluated != 2 {
		t.Errorf("expected 2 evaluated, got %d", summary.Evaluated)
	}
	if summary.Fired != 1 {
		t.Errorf("expected 1 fired, got %d", summary.Fired)
	}
	if summary.Failed != 1 {
		t.Errorf("expected 1 failed, got %d", summary.Failed)
	}
	good, _ := repo.GetByID("r-good")
	if good.LastSent == nil {
		t.Error("healthy schedule was not fired")
	}
	bad, _ := repo.GetByID("r-bad")
	if bad.LastSent != nil {
		t.Error("failed schedule must not advance lastSent")
	}
}
