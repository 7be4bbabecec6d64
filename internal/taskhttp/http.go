package taskhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/eugenecsa/taskbook/internal/person"
	"github.com/eugenecsa/taskbook/internal/task"
)

type createTaskRequest struct {
	Name  string `json:"name"`
	Date  string `json:"date"`
	Time  string `json:"time"`
	Venue string `json:"venue"`
}

type setDoneRequest struct {
	Done bool `json:"done"`
}

type createPersonRequest struct {
	Name string `json:"name"`
}

type listPersonsResponse struct {
	Message string          `json:"message"`
	Persons []person.Person `json:"persons"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errResponse struct {
	Error   string       `json:"error"`
	Details []fieldError `json:"details,omitempty"`
}

// Config carries the knobs the handlers need beyond their repositories.
// Now defaults to time.Now; tests inject a fixed clock.
type Config struct {
	ReminderDays int
	Now          func() time.Time
}

func (c Config) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c Config) reminderDays() int {
	if c.ReminderDays > 0 {
		return c.ReminderDays
	}
	return task.DefaultReminderDays
}

func RegisterRoutes(r chi.Router, repo task.Repository, persons *person.Model, cfg Config) {
	r.Post("/tasks", createTask(repo, cfg))
	r.Get("/tasks", listTasks(repo, cfg))
	r.Patch("/tasks/{id}/done", setTaskDone(repo, cfg))
	r.Post("/persons", createPerson(persons))
	r.Get("/persons", listPersons(persons))
}

func createTask(repo task.Repository, cfg Config) http.HandlerFunc {
	const maxNameLen = 200

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		var req createTaskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errResponse{Error: "invalid_json"})
			return
		}

		vErrs := validateCreateTask(req, maxNameLen)
		var date *task.Date
		if req.Date != "" {
			if d, err := task.ParseDate(req.Date); err == nil {
				date = &d
			}
		}
		var clock *task.Clock
		if req.Time != "" {
			if c, err := task.ParseClock(req.Time); err == nil {
				clock = &c
			}
		}
		if len(vErrs) > 0 {
			writeJSON(w, http.StatusUnprocessableEntity, errResponse{
				Error:   "validation_error",
				Details: vErrs,
			})
			return
		}

		t, err := repo.Create(r.Context(), req.Name, date, clock, req.Venue)
		if err != nil {
			var vErr *task.ValidationError
			if errors.As(err, &vErr) {
				writeJSON(w, http.StatusUnprocessableEntity, errResponse{
					Error: "validation_error",
					Details: []fieldError{
						{Field: vErr.Field, Message: vErr.Message},
					},
				})
				return
			}
			writeJSON(w, http.StatusInternalServerError, errResponse{Error: "unexpected_error"})
			return
		}

		tasksCreatedTotal.Inc()
		t.RecomputeDueState(cfg.now(), cfg.reminderDays())
		writeJSON(w, http.StatusCreated, t)
	}
}

func listTasks(repo task.Repository, cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		tasks, err := repo.List(r.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errResponse{Error: "unexpected_error"})
			return
		}

		now := cfg.now()
		overdue := 0
		for _, t := range tasks {
			t.RecomputeDueState(now, cfg.reminderDays())
			if t.Overdue {
				overdue++
			}
		}
		overdueTasks.Set(float64(overdue))

		task.SortTasks(tasks)
		if tasks == nil {
			tasks = []*task.Task{}
		}
		writeJSON(w, http.StatusOK, tasks)
	}
}

func setTaskDone(repo task.Repository, cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		var req setDoneRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errResponse{Error: "invalid_json"})
			return
		}

		id := chi.URLParam(r, "id")
		t, err := repo.SetDone(r.Context(), id, req.Done)
		if err != nil {
			if errors.Is(err, task.ErrNotFound) {
				writeJSON(w, http.StatusNotFound, errResponse{Error: "not_found"})
				return
			}
			writeJSON(w, http.StatusInternalServerError, errResponse{Error: "unexpected_error"})
			return
		}

		t.RecomputeDueState(cfg.now(), cfg.reminderDays())
		writeJSON(w, http.StatusOK, t)
	}
}

func createPerson(persons *person.Model) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		var req createPersonRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errResponse{Error: "invalid_json"})
			return
		}

		p, err := persons.Add(req.Name)
		if err != nil {
			if errors.Is(err, person.ErrNameRequired) {
				writeJSON(w, http.StatusUnprocessableEntity, errResponse{
					Error: "validation_error",
					Details: []fieldError{
						{Field: "name", Message: "name is required"},
					},
				})
				return
			}
			writeJSON(w, http.StatusInternalServerError, errResponse{Error: "unexpected_error"})
			return
		}

		writeJSON(w, http.StatusCreated, p)
	}
}

func listPersons(persons *person.Model) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		res := person.ListCommand{}.Execute(persons)
		writeJSON(w, http.StatusOK, listPersonsResponse{
			Message: res.Message,
			Persons: persons.FilteredPersons(),
		})
	}
}

func validateCreateTask(req createTaskRequest, maxLen int) []fieldError {
	var errs []fieldError

	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, fieldError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if l := len(req.Name); l > maxLen {
		errs = append(errs, fieldError{
			Field:   "name",
			Message: fmt.Sprintf("name must be at most %d characters", maxLen),
		})
	}
	if req.Date != "" {
		if _, err := task.ParseDate(req.Date); err != nil {
			errs = append(errs, fieldError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}
	if req.Time != "" {
		if _, err := task.ParseClock(req.Time); err != nil {
			errs = append(errs, fieldError{
				Field:   "time",
				Message: "time must be in HH:MM format",
			})
		}
	}

	return errs
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
