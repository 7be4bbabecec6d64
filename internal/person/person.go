package person

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var ErrNameRequired = errors.New("name required")

type Person struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Predicate selects which persons appear in the filtered view.
type Predicate func(Person) bool

// PredicateShowAll includes every entry.
var PredicateShowAll Predicate = func(Person) bool { return true }

// Model owns the full person list and the filtered view the display layer
// reads. Commands narrow or reset the view by swapping the predicate.
type Model struct {
	mu      sync.Mutex
	persons []Person
	pred    Predicate
}

func NewModel() *Model {
	return &Model{pred: PredicateShowAll}
}

func (m *Model) Add(name string) (Person, error) {
	if strings.TrimSpace(name) == "" {
		return Person{}, ErrNameRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p := Person{ID: uuid.NewString(), Name: name}
	m.persons = append(m.persons, p)
	return p, nil
}

// UpdateFilteredPersonList replaces the view's predicate. A nil predicate
// resets to show-all.
func (m *Model) UpdateFilteredPersonList(pred Predicate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if pred == nil {
		pred = PredicateShowAll
	}
	m.pred = pred
}

// FilteredPersons returns the persons the current predicate admits, in
// insertion order.
func (m *Model) FilteredPersons() []Person {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Person, 0, len(m.persons))
	for _, p := range m.persons {
		if m.pred(p) {
			out = append(out, p)
		}
	}
	return out
}
