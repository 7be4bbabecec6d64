package task

import (
	"os"
	"strconv"
	"strings"
)

// ReminderDaysFromEnv resolves the due-soon lookahead window from the
// REMINDER_DAYS environment variable. Unset, unparsable or non-positive
// values fall back to DefaultReminderDays. The result is resolved once at
// startup and passed explicitly into RecomputeDueState.
func ReminderDaysFromEnv() int {
	raw := strings.TrimSpace(os.Getenv("REMINDER_DAYS"))
	if raw == "" {
		return DefaultReminderDays
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return DefaultReminderDays
	}
	return n
}
