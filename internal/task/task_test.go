package task

import (
	"errors"
	"testing"
	"time"
)

func mustDate(t *testing.T, s string) *Date {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return &d
}

func mustClock(t *testing.T, s string) *Clock {
	t.Helper()
	c, err := ParseClock(s)
	if err != nil {
		t.Fatalf("parse time %q: %v", s, err)
	}
	return &c
}

func TestNew_RequiresName(t *testing.T) {
	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := New(name, nil, nil, "")
		if err == nil {
			t.Fatalf("expected validation error for name %q", name)
		}
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected *ValidationError, got %T: %v", err, err)
		}
		if vErr.Field != "name" {
			t.Errorf("expected field 'name', got %q", vErr.Field)
		}
	}
}

func TestNew_OptionalFieldsAbsent(t *testing.T) {
	got, err := New("call dentist", nil, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Date != nil || got.Time != nil || got.Venue != "" {
		t.Errorf("expected absent optionals, got %+v", got)
	}
}

func TestNewPlaceholder(t *testing.T) {
	got, err := NewPlaceholder("someday")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Date != nil || got.Time != nil || got.Venue != "" {
		t.Errorf("placeholder should carry no schedule, got %+v", got)
	}
	if got.Overdue || got.DueSoon {
		t.Errorf("placeholder should never be overdue or due soon: %+v", got)
	}
}

func TestRecomputeDueState_PastIsOverdue(t *testing.T) {
	tk, err := New("submit report", mustDate(t, "2024-01-01"), mustClock(t, "09:00"), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	tk.RecomputeDueState(now, DefaultReminderDays)

	if !tk.Overdue {
		t.Errorf("expected overdue for past deadline")
	}
	if tk.DueSoon {
		t.Errorf("overdue task must not also be due soon")
	}
}

func TestRecomputeDueState_WithinWindowIsDueSoon(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	due := now.AddDate(0, 0, 1)
	date := Date{Year: due.Year(), Month: due.Month(), Day: due.Day()}
	clock := Clock{Hour: due.Hour(), Minute: due.Minute()}

	tk, err := New("buy groceries", &date, &clock, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tk.RecomputeDueState(now, 3)

	if !tk.DueSoon {
		t.Errorf("expected due soon one day ahead with 3-day window")
	}
	if tk.Overdue {
		t.Errorf("due soon task must not also be overdue")
	}
}

func TestRecomputeDueState_WindowBoundaryIsNotDueSoon(t *testing.T) {
	// Due exactly now+reminderDays: outside the half-open window.
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	due := now.AddDate(0, 0, 3)
	date := Date{Year: due.Year(), Month: due.Month(), Day: due.Day()}

	tk, err := New("renew passport", &date, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tk.RecomputeDueState(now, 3)

	if tk.Overdue || tk.DueSoon {
		t.Errorf("deadline at window edge should be neither flag, got %+v", tk)
	}
}

func TestRecomputeDueState_DueExactlyNowIsDueSoon(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	tk, err := New("standup", mustDate(t, "2024-06-01"), mustClock(t, "09:00"), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tk.RecomputeDueState(now, 3)

	if tk.Overdue {
		t.Errorf("a deadline of exactly now is not yet overdue")
	}
	if !tk.DueSoon {
		t.Errorf("a deadline of exactly now is due soon")
	}
}

func TestRecomputeDueState_DoneClearsFlags(t *testing.T) {
	tk, err := New("submit report", mustDate(t, "2024-01-01"), mustClock(t, "09:00"), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tk.RecomputeDueState(now, 3)
	if !tk.Overdue {
		t.Fatalf("precondition: task should be overdue")
	}

	tk.MarkDone()
	tk.RecomputeDueState(now, 3)
	if tk.Overdue || tk.DueSoon {
		t.Errorf("done task must clear both flags, got %+v", tk)
	}

	tk.MarkNotDone()
	tk.RecomputeDueState(now, 3)
	if !tk.Overdue {
		t.Errorf("reopened task should be overdue again")
	}
}

func TestRecomputeDueState_NoDateNeverFlags(t *testing.T) {
	tk, err := New("someday maybe", nil, mustClock(t, "09:00"), "anywhere")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tk.RecomputeDueState(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 3)

	if tk.Overdue || tk.DueSoon {
		t.Errorf("undated task should be neither flag, got %+v", tk)
	}
}

func TestRecomputeDueState_MissingTimeMeansMidnight(t *testing.T) {
	// Date is today with no time: midnight already passed.
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	tk, err := New("pay rent", mustDate(t, "2024-06-01"), nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tk.RecomputeDueState(now, 3)

	if !tk.Overdue {
		t.Errorf("missing time defaults to midnight, which has passed")
	}
}

type recordingNotifier struct {
	calls int
}

func (n *recordingNotifier) DueStateChanged(*Task) { n.calls++ }

func TestRecomputeDueState_NotifiesOnlyOnChange(t *testing.T) {
	tk, err := New("submit report", mustDate(t, "2024-01-01"), nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n := &recordingNotifier{}
	tk.SetNotifier(n)

	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	tk.RecomputeDueState(now, 3) // may flip to overdue
	first := n.calls

	tk.RecomputeDueState(now, 3) // no change
	if n.calls != first {
		t.Errorf("recompute without change must not notify: %d -> %d", first, n.calls)
	}

	tk.MarkDone()
	tk.RecomputeDueState(now, 3) // overdue -> cleared
	if n.calls != first+1 {
		t.Errorf("expected one more notification after done, got %d", n.calls)
	}
}

func TestClone_Isolated(t *testing.T) {
	tk, err := New("original", mustDate(t, "2024-06-01"), mustClock(t, "10:30"), "office")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := tk.Clone()
	c.Name = "changed"
	c.Date.Day = 2

	if tk.Name != "original" || tk.Date.Day != 1 {
		t.Errorf("mutating a clone leaked into the original: %+v", tk)
	}
}

func TestString(t *testing.T) {
	tk, err := New("meeting", mustDate(t, "2024-06-01"), mustClock(t, "10:30"), "room 4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "meeting; Date: 2024-06-01; Time: 10:30; Venue: room 4"
	if got := tk.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
