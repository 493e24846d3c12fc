package repo

import (
	"context"
	"errors"
	"sync"

	"tasktracker/internal/model"
)

var (
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("conflict")
)

// TaskRepo хранит задачи в памяти процесса. Map по id плюс slice
// для сохранения порядка вставки при листинге.
type TaskRepo struct {
	mu    sync.Mutex
	tasks map[string]model.Task
	order []string
}

func NewTaskRepo() *TaskRepo { // Конструктор
	return &TaskRepo{
		tasks: make(map[string]model.Task),
	}
}

func (r *TaskRepo) Create(_ context.Context, t model.Task) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[t.ID]; ok {
		return model.Task{}, ErrorConflict
	}
	r.tasks[t.ID] = t
	r.order = append(r.order, t.ID)
	return t, nil
}

func (r *TaskRepo) Get(_ context.Context, id string) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return model.Task{}, ErrorNotFound
	}
	return t, nil
}

func (r *TaskRepo) List(_ context.Context, filter model.TaskFilter) ([]model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks := make([]model.Task, 0, len(r.order))
	for _, id := range r.order {
		t := r.tasks[id]
		if filter.Completed != nil && t.Completed != *filter.Completed {
			continue
		}
		if filter.Priority != nil && t.Priority != *filter.Priority {
			continue
		}
		if filter.DueDate != nil && (t.DueDate == nil || *t.DueDate != *filter.DueDate) {
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (r *TaskRepo) Update(_ context.Context, id string, changes model.TaskChanges) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return model.Task{}, ErrorNotFound
	}

	if changes.Title != nil {
		t.Title = *changes.Title
	}
	if changes.Description != nil {
		t.Description = *changes.Description
	}
	if changes.Completed != nil {
		t.Completed = *changes.Completed
	}
	if changes.Priority != nil {
		t.Priority = *changes.Priority
	}
	if changes.DueDate != nil {
		t.DueDate = changes.DueDate
	}

	r.tasks[id] = t
	return t, nil
}

func (r *TaskRepo) Delete(_ context.Context, id string) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return model.Task{}, ErrorNotFound
	}
	delete(r.tasks, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return t, nil
}
