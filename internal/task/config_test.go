package task

import "testing"

func TestReminderDaysFromEnv(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"", DefaultReminderDays},
		{"7", 7},
		{" 5 ", 5},
		{"0", DefaultReminderDays},
		{"-2", DefaultReminderDays},
		{"soon", DefaultReminderDays},
	}
	for _, c := range cases {
		t.Setenv("REMINDER_DAYS", c.raw)
		if got := ReminderDaysFromEnv(); got != c.want {
			t.Errorf("REMINDER_DAYS=%q: got %d, want %d", c.raw, got, c.want)
		}
	}
}
