package services

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/taskmaster/internal/common"
	"github.com/dmitrijs2005/taskmaster/internal/dbx"
	"github.com/dmitrijs2005/taskmaster/internal/server/auth"
	"github.com/dmitrijs2005/taskmaster/internal/server/models"
	"github.com/dmitrijs2005/taskmaster/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskmaster/internal/server/repositories/users"
)

var errBoom = errors.New("boom")

var testHasherParams = auth.Argon2Params{Time: 1, Memory: 64, Threads: 1, KeyLen: 16}

// --- users ---

type fakeUsersRepo struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
	seq     int

	createErr error
	getErr    error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byEmail: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, common.ErrDuplicateEmail
	}
	f.seq++
	u.ID = "u-" + strconv.Itoa(f.seq)
	u.CreatedAt = time.Now().UTC()
	cp := *u
	f.byEmail[u.Email] = &cp
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsersRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

// --- tasks ---

type fakeTasksRepo struct {
	mu    sync.Mutex
	rows  map[string]*models.Task
	order []string
	seq   int

	lastSkip, lastLimit int
	updateErr           error
}

func newFakeTasksRepo() *fakeTasksRepo {
	return &fakeTasksRepo{rows: map[string]*models.Task{}}
}

func (f *fakeTasksRepo) Create(_ context.Context, t *models.Task) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	t.ID = "t-" + strconv.Itoa(f.seq)
	t.CreatedAt = time.Now().UTC()
	cp := *t
	f.rows[t.ID] = &cp
	f.order = append(f.order, t.ID)
	return t, nil
}

func (f *fakeTasksRepo) Get(_ context.Context, id string) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTasksRepo) ListByOwner(_ context.Context, ownerID string, skip, limit int) ([]*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastSkip, f.lastLimit = skip, limit

	out := make([]*models.Task, 0)
	for _, id := range f.order {
		t, ok := f.rows[id]
		if !ok || t.OwnerID != ownerID {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	if skip >= len(out) {
		return []*models.Task{}, nil
	}
	out = out[skip:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeTasksRepo) Update(_ context.Context, t *models.Task) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	row, ok := f.rows[t.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	row.Title = t.Title
	row.Description = t.Description
	cp := *row
	return &cp, nil
}

func (f *fakeTasksRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeTasksRepo) ids() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.rows))
	for id := range f.rows {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// --- manager ---

type fakeRepoManager struct {
	u *fakeUsersRepo
	t *fakeTasksRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{u: newFakeUsersRepo(), t: newFakeTasksRepo()}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository             { return m.u }
func (m *fakeRepoManager) Tasks(dbx.DBTX) tasks.Repository             { return m.t }
