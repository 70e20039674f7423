package reminders

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"care-reminders/internal/adapters/storage/memory"
	"care-reminders/internal/domain/notifications"
	"care-reminders/internal/ports/storage"
)

type recordingNotifier struct {
	items []notifications.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, msg string, level notifications.Level, data map[string]any) notifications.Notification {
	nt := notifications.Notification{Message: msg, Level: level, Data: data}
	n.items = append(n.items, nt)
	return nt
}

func (n *recordingNotifier) ofType(kind string) []notifications.Notification {
	out := []notifications.Notification{}
	for _, it := range n.items {
		if it.Data["type"] == kind {
			out = append(out, it)
		}
	}
	return out
}

type failingKV struct{}

var errStorageDown = errors.New("storage down")

func (failingKV) Get(context.Context, string) ([]byte, error) { return nil, errStorageDown }
func (failingKV) Set(context.Context, string, []byte) error { return errStorageDown }
func (failingKV) Delete(context.Context, string) error { return errStorageDown }

type testEnv struct {
	svc   *Service
	repo  Repository
	kv    storage.KeyValueStore
	notes *recordingNotifier
	clock time.Time
}

func (e *testEnv) setNow(t time.Time) { e.clock = t }

func newTestEnv(t *testing.T, now time.Time, opts Options) *testEnv {
	t.Helper()

	kv := memory.NewKeyValueStore()
	return newTestEnvWithKV(t, kv, now, opts)
}

func newTestEnvWithKV(t *testing.T, kv storage.KeyValueStore, now time.Time, opts Options) *testEnv {
	t.Helper()

	opts.Location = time.UTC
	env := &testEnv{
		kv:    kv,
		repo:  NewKVRepository(kv),
		notes: &recordingNotifier{},
		clock: now,
	}
	env.svc = NewService(env.repo, env.notes, nil, opts)
	env.svc.now = func() time.Time { return env.clock }
	return env
}

var baseNow = time.Date(2025, 7, 23, 6, 0, 0, 0, time.UTC)

func TestScheduleMedicationReminder_StandardTypes(t *testing.T) {
	env := newTestEnv(t, baseNow, Options{})
	ctx := context.Background()

	created, err := env.svc.ScheduleMedicationReminder(ctx, ScheduleInput{
		MedicationName: "Aspirin",
		Dosage:         "100mg",
		ScheduleTypes:  []string{ScheduleMorning, ScheduleEvening},
		RefillDate:     baseNow.AddDate(0, 0, 30),
	})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("expected 2 reminders, got %d", len(created))
	}

	stored := env.svc.Reminders(ctx)
	if len(stored) != 2 {
		t.Fatalf("expected 2 stored reminders, got %d", len(stored))
	}
	for _, r := range stored {
		if !r.IsActive || r.MedicationName != "Aspirin" || r.ID == "" {
			t.Fatalf("unexpected reminder %#v", r)
		}
		if r.Time.Before(baseNow) {
			t.Fatalf("reminder scheduled in the past: %s", r.Time)
		}
	}

	scheduled := env.notes.ofType("medication_scheduled")
	if len(scheduled) != 1 || scheduled[0].Level != notifications.LevelSuccess {
		t.Fatalf("expected one success notification, got %#v", env.notes.items)
	}
	if !strings.Contains(scheduled[0].Message, "Aspirin") {
		t.Fatalf("unexpected message %q", scheduled[0].Message)
	}

	if defs := env.svc.Schedules(ctx); len(defs) != 1 || defs[0].ReminderCount != 2 {
		t.Fatalf("expected schedule definition recorded, got %#v", defs)
	}
}

func TestScheduleMedicationReminder_AppendsToExisting(t *testing.T) {
	env := newTestEnv(t, baseNow, Options{})
	ctx := context.Background()

	in := ScheduleInput{MedicationName: "Aspirin", Dosage: "100mg", ScheduleTypes: []string{ScheduleMorning}}
	if _, err := env.svc.ScheduleMedicationReminder(ctx, in); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if _, err := env.svc.ScheduleMedicationReminder(ctx, in); err != nil {
		t.Fatalf("schedule: %v", err)
	}

	if got := len(env.svc.Reminders(ctx)); got != 2 {
		t.Fatalf("expected reminders to accumulate, got %d", got)
	}
}

func TestScheduleMedicationReminder_CustomFrequency(t *testing.T) {
	env := newTestEnv(t, baseNow, Options{})
	ctx := context.Background()

	created, err := env.svc.ScheduleMedicationReminder(ctx, ScheduleInput{
		MedicationName:  "Ibuprofen",
		Dosage:          "200mg",
		ScheduleTypes:   []string{ScheduleOther},
		CustomFrequency: "Every 6 hours",
		RefillDate:      baseNow.AddDate(0, 0, 10),
	})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if len(created) == 0 {
		t.Fatalf("expected custom reminders")
	}
	for _, r := range created {
		if r.ScheduleType != "Custom (Every 6 hours)" {
			t.Fatalf("unexpected schedule type %q", r.ScheduleType)
		}
	}

	if got := env.notes.ofType("custom_schedule_set"); len(got) != 1 || got[0].Level != notifications.LevelInfo {
		t.Fatalf("expected custom schedule info notification, got %#v", env.notes.items)
	}
	scheduled := env.notes.ofType("medication_scheduled")
	if len(scheduled) != 1 || !strings.Contains(scheduled[0].Message, "custom schedule (Every 6 hours)") {
		t.Fatalf("unexpected scheduled notification %#v", scheduled)
	}
}

func TestScheduleMedicationReminder_UnknownTypeSkippedWhenLenient(t *testing.T) {
	env := newTestEnv(t, baseNow, Options{})

	created, err := env.svc.ScheduleMedicationReminder(context.Background(), ScheduleInput{
		MedicationName: "Aspirin",
		Dosage:         "100mg",
		ScheduleTypes:  []string{ScheduleMorning, "Bedtime"},
	})
	if err != nil {
		t.Fatalf("lenient schedule must not fail: %v", err)
	}
	if len(created) != 1 || created[0].ScheduleType != ScheduleMorning {
		t.Fatalf("expected only the Morning reminder, got %#v", created)
	}
}

func TestScheduleMedicationReminder_StrictRejects(t *testing.T) {
	env := newTestEnv(t, baseNow, Options{Policy: FrequencyPolicy{Strict: true}})
	ctx := context.Background()

	_, err := env.svc.ScheduleMedicationReminder(ctx, ScheduleInput{
		MedicationName:  "Aspirin",
		Dosage:          "100mg",
		ScheduleTypes:   []string{ScheduleMorning, ScheduleOther},
		CustomFrequency: "whenever",
	})
	if !errors.Is(err, ErrUnrecognizedSchedule) {
		t.Fatalf("expected ErrUnrecognizedSchedule, got %v", err)
	}
	if got := len(env.svc.Reminders(ctx)); got != 0 {
		t.Fatalf("strict rejection must not persist reminders, got %d", got)
	}
	if len(env.notes.items) != 0 {
		t.Fatalf("strict rejection must not notify, got %#v", env.notes.items)
	}
}

func TestScheduleMedicationReminder_RequiresName(t *testing.T) {
	env := newTestEnv(t, baseNow, Options{})
	_, err := env.svc.ScheduleMedicationReminder(context.Background(), ScheduleInput{MedicationName: "  "})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDisableReminder(t *testing.T) {
	env := newTestEnv(t, baseNow, Options{})
	ctx := context.Background()

	created, _ := env.svc.ScheduleMedicationReminder(ctx, ScheduleInput{
		MedicationName: "Aspirin",
		Dosage:         "100mg",
		ScheduleTypes:  []string{ScheduleMorning, ScheduleNight},
	})

	if err := env.svc.DisableReminder(ctx, created[0].ID); err != nil {
		t.Fatalf("disable: %v", err)
	}
	if got := len(env.svc.Reminders(ctx)); got != 2 {
		t.Fatalf("disabled reminder must be kept, got %d", got)
	}
	active := env.svc.ActiveReminders(ctx)
	if len(active) != 1 || active[0].ID != created[1].ID {
		t.Fatalf("unexpected active reminders %#v", active)
	}

	if err := env.svc.DisableReminder(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func seedReminders(t *testing.T, env *testEnv, items ...MedicationReminder) {
	t.Helper()
	if err := env.repo.SaveReminders(context.Background(), items); err != nil {
		t.Fatalf("seed reminders: %v", err)
	}
}

func reminderAt(id, name string, at time.Time) MedicationReminder {
	return MedicationReminder{
		ID:             id,
		MedicationName: name,
		Dosage:         "1 tab",
		ScheduleType:   ScheduleMorning,
		Time:           at,
		IsActive:       true,
		RefillDate:     at.AddDate(0, 1, 0),
		CreatedAt:      at.Add(-time.Hour),
	}
}

func TestCheckMedicationReminders_DueWindowBoundaries(t *testing.T) {
	now := time.Date(2025, 7, 23, 8, 10, 0, 0, time.UTC)
	env := newTestEnv(t, now, Options{})

	inactive := reminderAt("r5", "Inactive", now)
	inactive.IsActive = false

	seedReminders(t, env,
		reminderAt("r1", "Exact", now),
		reminderAt("r2", "EdgeOfWindow", now.Add(-5*time.Minute)),
		reminderAt("r3", "TooLate", now.Add(-5*time.Minute-time.Second)),
		reminderAt("r4", "Future", now.Add(time.Second)),
		inactive,
	)

	due := env.svc.CheckMedicationReminders(context.Background())
	if len(due) != 2 {
		t.Fatalf("expected 2 due reminders, got %#v", due)
	}
	if due[0].ID != "r1" || due[1].ID != "r2" {
		t.Fatalf("unexpected due reminders %s, %s", due[0].ID, due[1].ID)
	}

	warnings := env.notes.ofType("medication_reminder")
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d", len(warnings))
	}
	if warnings[0].Level != notifications.LevelWarning || warnings[0].Message != "Time to take your medication: Exact (1 tab)" {
		t.Fatalf("unexpected notification %#v", warnings[0])
	}
	if warnings[0].Data["action"] != "mark_as_taken" || warnings[0].Data["reminderId"] != "r1" {
		t.Fatalf("unexpected notification data %#v", warnings[0].Data)
	}
}

func TestCheckMedicationReminders_CustomWindow(t *testing.T) {
	now := time.Date(2025, 7, 23, 8, 10, 0, 0, time.UTC)
	env := newTestEnv(t, now, Options{DueWindow: 10 * time.Minute})

	seedReminders(t, env, reminderAt("r1", "Late", now.Add(-8*time.Minute)))
	if due := env.svc.CheckMedicationReminders(context.Background()); len(due) != 1 {
		t.Fatalf("expected reminder inside widened window, got %d", len(due))
	}
}

func TestCheckMedicationReminders_AtLeastOnceUntilTaken(t *testing.T) {
	env := newTestEnv(t, baseNow, Options{})
	ctx := context.Background()

	created, err := env.svc.ScheduleMedicationReminder(ctx, ScheduleInput{
		MedicationName: "Aspirin",
		Dosage:         "100mg",
		ScheduleTypes:  []string{ScheduleMorning},
		RefillDate:     baseNow.AddDate(0, 0, 30),
	})
	if err != nil || len(created) != 1 {
		t.Fatalf("schedule: %v %#v", err, created)
	}
	r := created[0]

	env.setNow(r.Time.Add(time.Minute))

	env.svc.CheckMedicationReminders(ctx)
	env.svc.CheckMedicationReminders(ctx)
	if got := len(env.notes.ofType("medication_reminder")); got != 2 {
		t.Fatalf("expected a warning per check while untaken, got %d", got)
	}

	if !env.svc.MarkAsTaken(ctx, r.MedicationName, r.Dosage, r.ScheduleType, time.Time{}) {
		t.Fatalf("mark as taken failed")
	}
	if due := env.svc.CheckMedicationReminders(ctx); len(due) != 0 {
		t.Fatalf("expected no due reminders after taking, got %d", len(due))
	}
	if got := len(env.notes.ofType("medication_reminder")); got != 2 {
		t.Fatalf("expected no new warnings after taking, got %d", got)
	}
	if got := env.notes.ofType("medication_taken"); len(got) != 1 || got[0].Message != "✓ Aspirin marked as taken" {
		t.Fatalf("unexpected taken notification %#v", got)
	}
}

func TestMarkAsTaken_OverwritesSameDose(t *testing.T) {
	env := newTestEnv(t, baseNow, Options{})
	ctx := context.Background()

	if env.svc.IsAlreadyTaken(ctx, "Aspirin", "100mg", ScheduleMorning, time.Time{}) {
		t.Fatalf("expected not taken before marking")
	}

	first := baseNow.Add(2 * time.Hour)
	second := baseNow.Add(3 * time.Hour)
	env.svc.MarkAsTaken(ctx, "Aspirin", "100mg", ScheduleMorning, first)
	env.svc.MarkAsTaken(ctx, "Aspirin", "100mg", ScheduleMorning, second)

	records := env.svc.TakenRecords(ctx)
	if len(records) != 1 {
		t.Fatalf("expected one record per dose per day, got %d", len(records))
	}
	if !records[0].TakenTime.Equal(second) {
		t.Fatalf("expected last write to win, got %s", records[0].TakenTime)
	}

	takenLog, err := env.repo.LoadTakenLog(ctx)
	if err != nil {
		t.Fatalf("load taken log: %v", err)
	}
	entry, ok := takenLog["Wed Jul 23 2025"]
	if !ok {
		t.Fatalf("expected day key 'Wed Jul 23 2025', got %#v", takenLog)
	}
	if _, ok := entry.Medications["Aspirin_100mg_Morning"]; !ok {
		t.Fatalf("expected composite key, got %#v", entry.Medications)
	}

	if !env.svc.IsAlreadyTaken(ctx, "Aspirin", "100mg", ScheduleMorning, time.Time{}) {
		t.Fatalf("expected taken after marking")
	}
	if env.svc.IsAlreadyTaken(ctx, "Aspirin", "200mg", ScheduleMorning, time.Time{}) {
		t.Fatalf("different dosage must not match")
	}
	if env.svc.IsAlreadyTaken(ctx, "Aspirin", "100mg", ScheduleMorning, baseNow.AddDate(0, 0, 1)) {
		t.Fatalf("taken flag must not carry to the next day")
	}
}

func TestMarkAsTaken_PreviousDayDoesNotCountToday(t *testing.T) {
	env := newTestEnv(t, baseNow, Options{})
	ctx := context.Background()

	env.svc.MarkAsTaken(ctx, "Aspirin", "100mg", ScheduleMorning, baseNow.AddDate(0, 0, -1))
	if env.svc.IsAlreadyTaken(ctx, "Aspirin", "100mg", ScheduleMorning, time.Time{}) {
		t.Fatalf("yesterday's dose must not count for today")
	}
}

func TestCheckRefillReminders(t *testing.T) {
	now := time.Date(2025, 7, 23, 12, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now, Options{})

	soon := reminderAt("r1", "Lisinopril", now)
	soon.RefillDate = now.Add(48 * time.Hour)

	overdue := reminderAt("r2", "Metformin", now)
	overdue.RefillDate = now.Add(-24 * time.Hour)

	later := reminderAt("r3", "Statin", now)
	later.RefillDate = now.AddDate(0, 0, 10)

	disabled := reminderAt("r4", "Old", now)
	disabled.RefillDate = now.AddDate(0, 0, -5)
	disabled.IsActive = false

	seedReminders(t, env, soon, overdue, later, disabled)

	got := env.svc.CheckRefillReminders(context.Background())
	if len(got) != 2 {
		t.Fatalf("expected 2 refill statuses, got %#v", got)
	}
	if got[0].ID != "r1" || got[0].DaysUntilRefill != 2 || got[0].Overdue {
		t.Fatalf("unexpected upcoming refill %#v", got[0])
	}
	if got[1].ID != "r2" || got[1].DaysUntilRefill != -1 || !got[1].Overdue {
		t.Fatalf("unexpected overdue refill %#v", got[1])
	}

	notes := env.notes.ofType("refill_reminder")
	if len(notes) != 2 {
		t.Fatalf("expected 2 refill notifications, got %d", len(notes))
	}
	if notes[0].Level != notifications.LevelWarning || notes[0].Message != "Your Lisinopril needs to be refilled in 2 day(s)" {
		t.Fatalf("unexpected warning %#v", notes[0])
	}
	if notes[1].Level != notifications.LevelError || notes[1].Message != "Your Metformin refill is overdue!" {
		t.Fatalf("unexpected error %#v", notes[1])
	}
}

func TestDaysUntil_Ceil(t *testing.T) {
	now := time.Date(2025, 7, 23, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		at   time.Time
		want int
	}{
		{now, 0},
		{now.Add(time.Hour), 1},
		{now.Add(48 * time.Hour), 2},
		{now.Add(-time.Hour), 0},
		{now.Add(-25 * time.Hour), -1},
	}
	for _, tc := range cases {
		if got := DaysUntil(tc.at, now); got != tc.want {
			t.Fatalf("DaysUntil(%s) = %d, want %d", tc.at, got, tc.want)
		}
	}
}

func TestStorageFailures_FailOpen(t *testing.T) {
	env := newTestEnvWithKV(t, failingKV{}, baseNow, Options{})
	ctx := context.Background()

	created, err := env.svc.ScheduleMedicationReminder(ctx, ScheduleInput{
		MedicationName: "Aspirin",
		Dosage:         "100mg",
		ScheduleTypes:  []string{ScheduleMorning},
	})
	if err != nil || len(created) != 1 {
		t.Fatalf("schedule must degrade silently, got %v %#v", err, created)
	}

	if got := env.svc.Reminders(ctx); len(got) != 0 {
		t.Fatalf("expected empty reminders on read failure, got %d", len(got))
	}
	if due := env.svc.CheckMedicationReminders(ctx); len(due) != 0 {
		t.Fatalf("expected no due reminders, got %d", len(due))
	}
	if refills := env.svc.CheckRefillReminders(ctx); len(refills) != 0 {
		t.Fatalf("expected no refills, got %d", len(refills))
	}
	if env.svc.MarkAsTaken(ctx, "Aspirin", "100mg", ScheduleMorning, time.Time{}) {
		t.Fatalf("mark as taken must report failure")
	}
	if env.svc.IsAlreadyTaken(ctx, "Aspirin", "100mg", ScheduleMorning, time.Time{}) {
		t.Fatalf("is already taken must be false on failure")
	}
	if env.svc.ClearTakenLog(ctx) {
		t.Fatalf("clear must report failure")
	}
}

func TestPruneTakenLog(t *testing.T) {
	now := time.Date(2025, 7, 23, 10, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now, Options{})
	ctx := context.Background()

	seed := TakenLog{}
	for _, day := range []string{"Thu Jul 10 2025", "Wed Jul 16 2025", "Wed Jul 23 2025", "not-a-date"} {
		seed[day] = TakenLogEntry{Date: day, Medications: map[string]TakenRecord{}}
	}
	if err := env.repo.SaveTakenLog(ctx, seed); err != nil {
		t.Fatalf("seed taken log: %v", err)
	}

	if removed := env.svc.PruneTakenLog(ctx, 7); removed != 1 {
		t.Fatalf("expected 1 day removed, got %d", removed)
	}

	got, _ := env.repo.LoadTakenLog(ctx)
	if _, ok := got["Thu Jul 10 2025"]; ok {
		t.Fatalf("old day must be pruned")
	}
	for _, keep := range []string{"Wed Jul 16 2025", "Wed Jul 23 2025", "not-a-date"} {
		if _, ok := got[keep]; !ok {
			t.Fatalf("expected %q to be kept", keep)
		}
	}

	if removed := env.svc.PruneTakenLog(ctx, 0); removed != 1 {
		t.Fatalf("expected zero retention to drop everything before today, got %d", removed)
	}
}

func TestClearTakenLog(t *testing.T) {
	env := newTestEnv(t, baseNow, Options{})
	ctx := context.Background()

	env.svc.MarkAsTaken(ctx, "Aspirin", "100mg", ScheduleMorning, time.Time{})
	if !env.svc.ClearTakenLog(ctx) {
		t.Fatalf("clear failed")
	}
	if got := env.svc.TakenRecords(ctx); len(got) != 0 {
		t.Fatalf("expected empty taken log, got %d", len(got))
	}
}

func TestReminderStorageLayout(t *testing.T) {
	env := newTestEnv(t, baseNow, Options{})
	ctx := context.Background()

	env.svc.ScheduleMedicationReminder(ctx, ScheduleInput{
		MedicationName: "Aspirin",
		Dosage:         "100mg",
		ScheduleTypes:  []string{ScheduleMorning},
	})

	raw, err := env.kv.Get(ctx, RemindersKey)
	if err != nil {
		t.Fatalf("get %s: %v", RemindersKey, err)
	}
	for _, field := range []string{`"medicationName":"Aspirin"`, `"scheduleType":"Morning"`, `"isActive":true`} {
		if !strings.Contains(string(raw), field) {
			t.Fatalf("expected %s in stored document %s", field, raw)
		}
	}
}
