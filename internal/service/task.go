package service

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"tasktracker/internal/model"
	"tasktracker/internal/repo"
)

var (
	ErrValidation = errors.New("validation error")
)

// ValidationError собирает все нарушенные правила за один проход
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation error: " + strings.Join(e.Messages, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// validDate проверяет формат YYYY-MM-DD и что дата реально существует в
// календаре: парсим и сравниваем каноничную форму с исходной строкой.
func validDate(s string) bool {
	if !dateRe.MatchString(s) {
		return false
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return false
	}
	return d.Format("2006-01-02") == s
}

type TaskService struct {
	repo repo.TaskRepository
}

func NewTaskService(repo repo.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) Create(ctx context.Context, in model.TaskInput, ownerID string) (model.Task, error) {
	changes, errs := validateTask(in, false)
	if len(errs) > 0 {
		return model.Task{}, &ValidationError{Messages: errs}
	}

	task := model.Task{
		ID:        uuid.NewString(),
		Title:     *changes.Title,
		Completed: false,
		Priority:  "medium",
		CreatedAt: time.Now().UTC(),
		OwnerID:   ownerID,
	}
	if changes.Description != nil {
		task.Description = *changes.Description
	}
	if changes.Completed != nil {
		task.Completed = *changes.Completed
	}
	if changes.Priority != nil {
		task.Priority = *changes.Priority
	}
	if changes.DueDate != nil {
		task.DueDate = changes.DueDate
	}

	return s.repo.Create(ctx, task)
}

func (s *TaskService) Get(ctx context.Context, id string) (model.Task, error) {
	return s.repo.Get(ctx, id)
}

// List валидирует сырые значения фильтров из query string и отдает
// совпадающие задачи. Владелец никогда не применяется как фильтр.
func (s *TaskService) List(ctx context.Context, completed, priority, dueDate string) ([]model.Task, error) {
	var filter model.TaskFilter
	var errs []string

	if completed != "" {
		switch strings.ToLower(completed) {
		case "true":
			v := true
			filter.Completed = &v
		case "false":
			v := false
			filter.Completed = &v
		default:
			errs = append(errs, "completed must be true or false")
		}
	}
	if priority != "" {
		filter.Priority = &priority
	}
	if dueDate != "" {
		if !validDate(dueDate) {
			errs = append(errs, "dueDate must be in YYYY-MM-DD format")
		} else {
			filter.DueDate = &dueDate
		}
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Messages: errs}
	}
	return s.repo.List(ctx, filter)
}

func (s *TaskService) Update(ctx context.Context, id string, in model.TaskInput) (model.Task, error) {
	// Неизвестный id отдает not found до проверки полей
	if _, err := s.repo.Get(ctx, id); err != nil {
		return model.Task{}, err
	}

	changes, errs := validateTask(in, true)
	if len(errs) > 0 {
		return model.Task{}, &ValidationError{Messages: errs}
	}

	return s.repo.Update(ctx, id, changes)
}

func (s *TaskService) Delete(ctx context.Context, id string) (model.Task, error) {
	return s.repo.Delete(ctx, id)
}

var priorities = []string{"low", "medium", "high"}

// validateTask проверяет payload и возвращает нормализованные изменения
// вместе со списком всех нарушений (не останавливаемся на первом).
func validateTask(in model.TaskInput, forUpdate bool) (model.TaskChanges, []string) {
	var changes model.TaskChanges
	var errs []string

	if in.Title == nil {
		if !forUpdate {
			errs = append(errs, "title is required when creating a task and must not be empty")
		}
	} else {
		var title string
		if err := json.Unmarshal(in.Title, &title); err != nil || strings.TrimSpace(title) == "" {
			if forUpdate {
				errs = append(errs, "title, if provided, must be a non-empty string")
			} else {
				errs = append(errs, "title is required when creating a task and must not be empty")
			}
		} else {
			trimmed := strings.TrimSpace(title)
			changes.Title = &trimmed
		}
	}

	if in.Description != nil {
		var desc string
		if isNull(in.Description) || json.Unmarshal(in.Description, &desc) != nil {
			errs = append(errs, "description must be a string")
		} else {
			trimmed := strings.TrimSpace(desc)
			changes.Description = &trimmed
		}
	}

	if in.Completed != nil {
		var completed bool
		if isNull(in.Completed) || json.Unmarshal(in.Completed, &completed) != nil {
			errs = append(errs, "completed must be a boolean")
		} else {
			changes.Completed = &completed
		}
	}

	if in.Priority != nil {
		var priority string
		ok := !isNull(in.Priority) && json.Unmarshal(in.Priority, &priority) == nil
		if ok {
			ok = false
			for _, p := range priorities {
				if priority == p {
					ok = true
					break
				}
			}
		}
		if !ok {
			errs = append(errs, "priority must be one of: "+strings.Join(priorities, ", "))
		} else {
			changes.Priority = &priority
		}
	}

	if in.DueDate != nil {
		var due string
		if isNull(in.DueDate) || json.Unmarshal(in.DueDate, &due) != nil || !validDate(due) {
			errs = append(errs, "dueDate must be in YYYY-MM-DD format and a valid date")
		} else {
			changes.DueDate = &due
		}
	}

	return changes, errs
}

func isNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}
