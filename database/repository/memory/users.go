// Package memory holds mutex-guarded in-process repositories. They back
// DATABASE_URL=memory:// and the service tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	userRepo "ehealth/database/repository/user"
	"ehealth/models"
)

type UserRepo struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[string]models.User)}
}

var _ userRepo.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return userRepo.ErrDuplicateEmail
		}
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Availability == nil {
		user.Availability = []models.AvailabilityWindow{}
	}
	r.users[user.ID] = cloneUser(*user)
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	out := cloneUser(u)
	return &out, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			out := cloneUser(u)
			return &out, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) GetByIDs(_ context.Context, ids []string) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.User{}
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *UserRepo) filter(keep func(models.User) bool) []models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.User{}
	for _, u := range r.users {
		if keep(u) {
			out = append(out, cloneUser(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (r *UserRepo) GetAll(_ context.Context) ([]models.User, error) {
	return r.filter(func(models.User) bool { return true }), nil
}

func (r *UserRepo) GetByRole(_ context.Context, role string) ([]models.User, error) {
	return r.filter(func(u models.User) bool { return u.Role == role }), nil
}

func (r *UserRepo) GetRecent(_ context.Context, limit int64) ([]models.User, error) {
	all := r.filter(func(models.User) bool { return true })
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if int64(len(all)) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *UserRepo) GetCreatedBetween(_ context.Context, start, end time.Time) ([]models.User, error) {
	out := r.filter(func(u models.User) bool {
		return !u.CreatedAt.Before(start) && !u.CreatedAt.After(end)
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *UserRepo) Count(_ context.Context, f userRepo.CountFilter) (int64, error) {
	n := len(r.filter(func(u models.User) bool {
		return (f.Role == "" || u.Role == f.Role) && (f.Status == "" || u.Status == f.Status)
	}))
	return int64(n), nil
}

func (r *UserRepo) update(id string, apply func(*models.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user with id %s not found", id)
	}
	apply(&u)
	u.UpdatedAt = time.Now()
	r.users[id] = u
	return nil
}

func (r *UserRepo) UpdateProfile(_ context.Context, id, name string, profile models.Profile) error {
	return r.update(id, func(u *models.User) {
		u.Name = name
		u.Profile = profile
	})
}

func (r *UserRepo) UpdateStatus(_ context.Context, id, status string) error {
	return r.update(id, func(u *models.User) { u.Status = status })
}

func (r *UserRepo) UpdateTokenHash(_ context.Context, id, tokenHash string) error {
	return r.update(id, func(u *models.User) { u.TokenHash = tokenHash })
}

func (r *UserRepo) SetAvailability(_ context.Context, id string, windows []models.AvailabilityWindow) error {
	return r.update(id, func(u *models.User) { u.Availability = cloneWindows(windows) })
}

func cloneUser(u models.User) models.User {
	u.Availability = cloneWindows(u.Availability)
	return u
}

func cloneWindows(in []models.AvailabilityWindow) []models.AvailabilityWindow {
	out := make([]models.AvailabilityWindow, len(in))
	for i, w := range in {
		out[i] = models.AvailabilityWindow{Day: w.Day, Slots: append([]models.TimeRange{}, w.Slots...)}
	}
	return out
}
