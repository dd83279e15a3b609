package memory

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
	userRepo "github.com/m04kA/SMC-CoworkingBooking/internal/infra/storage/user"
)

// UserRepository пользователи в памяти
type UserRepository struct {
	s *Store
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Username == user.Username {
			return nil, userRepo.ErrUsernameTaken
		}
	}

	user.CreatedAt = r.s.now()
	r.s.users[user.ID] = *user

	return user, nil
}

func (r *UserRepository) GetByID(_ context.Context, id domain.UserID) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return &user, nil
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, user := range r.s.users {
		if user.Username == username {
			user := user
			return &user, nil
		}
	}
	return nil, userRepo.ErrUserNotFound
}

func (r *UserRepository) List(_ context.Context) ([]*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := make([]*domain.User, 0, len(r.s.users))
	for _, user := range r.s.users {
		user := user
		users = append(users, &user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })

	return users, nil
}

func (r *UserRepository) Delete(_ context.Context, id domain.UserID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return userRepo.ErrUserNotFound
	}
	delete(r.s.users, id)

	return nil
}
