package repo

import (
	"context"
	"sync"

	"tasktracker/internal/model"
)

// UserRepo хранит пользователей в памяти. Линейный поиск по id и email.
type UserRepo struct {
	mu    sync.Mutex
	users []model.User
}

func NewUserRepo() *UserRepo {
	return &UserRepo{}
}

func (r *UserRepo) Create(_ context.Context, u model.User) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == u.Email {
			return model.User{}, ErrorConflict
		}
	}
	r.users = append(r.users, u)
	return u, nil
}

func (r *UserRepo) Get(_ context.Context, id string) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, ErrorNotFound
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, ErrorNotFound
}
