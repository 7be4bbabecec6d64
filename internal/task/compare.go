package task

import "sort"

// Priority classes for display ordering. Lower sorts first.
const (
	classOverdue = 1
	classDueSoon = 2
	classNotDone = 3
	classDone    = 4
)

func priorityLevel(t *Task) int {
	switch {
	case t.Overdue:
		return classOverdue
	case t.DueSoon:
		return classDueSoon
	case !t.Done:
		return classNotDone
	default:
		return classDone
	}
}

// Equal reports structural equality: same name, same done flag, and the
// same possibly-absent date, time and venue. Derived flags do not take part.
func Equal(a, b *Task) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a.Name == b.Name &&
		a.Done == b.Done &&
		dateEqual(a.Date, b.Date) &&
		clockEqual(a.Time, b.Time) &&
		a.Venue == b.Venue
}

func dateEqual(a, b *Date) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Compare(*b) == 0
}

func clockEqual(a, b *Clock) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Compare(*b) == 0
}

// Compare orders tasks for display. Equal tasks compare as zero. Otherwise
// overdue sorts before due soon, before not done, before done; within a
// class ties break by date ascending (absent date last), then time
// ascending (absent time counts as midnight), then venue, then name.
func Compare(a, b *Task) int {
	if Equal(a, b) {
		return 0
	}

	pa, pb := priorityLevel(a), priorityLevel(b)
	if pa != pb {
		if pa < pb {
			return -1
		}
		return 1
	}

	if c := compareDates(a.Date, b.Date); c != 0 {
		return c
	}
	if c := compareClocks(a.Time, b.Time); c != 0 {
		return c
	}
	if a.Venue != b.Venue {
		if a.Venue < b.Venue {
			return -1
		}
		return 1
	}
	// Last resort so the order stays total: unequal tasks that tie on every
	// schedule field normally differ by name.
	if a.Name != b.Name {
		if a.Name < b.Name {
			return -1
		}
		return 1
	}
	// Stale derived flags can land a done task in the same class as its
	// not-done twin; keep the order antisymmetric anyway.
	if a.Done != b.Done {
		if !a.Done {
			return -1
		}
		return 1
	}
	if a.ID != b.ID {
		if a.ID < b.ID {
			return -1
		}
		return 1
	}
	return 0
}

func compareDates(a, b *Date) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return 1 // unscheduled sorts after scheduled
	}
	if b == nil {
		return -1
	}
	return a.Compare(*b)
}

func compareClocks(a, b *Clock) int {
	midnight := Clock{}
	if a == nil {
		a = &midnight
	}
	if b == nil {
		b = &midnight
	}
	return a.Compare(*b)
}

// SortTasks sorts ts in place into display order.
func SortTasks(ts []*Task) {
	sort.SliceStable(ts, func(i, j int) bool {
		return Compare(ts[i], ts[j]) < 0
	})
}
