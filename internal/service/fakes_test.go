package service

import (
	"context"
	"sync"
	"time"

	"github.com/and161185/nutrilog/internal/errs"
	"github.com/and161185/nutrilog/internal/model"
	"github.com/and161185/nutrilog/internal/repository"
	"github.com/gofrs/uuid/v5"
)

type fakeUsers struct {
	mu      sync.Mutex
	byEmail map[string]*model.User

	createErr error
	getErr    error
}

var _ repository.UserRepository = (*fakeUsers)(nil)

func newFakeUsers() *fakeUsers { return &fakeUsers{byEmail: map[string]*model.User{}} }

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if _, exists := f.byEmail[u.Email]; exists {
		return errs.ErrAlreadyExists
	}
	u.CreatedAt = time.Now()
	cpy := *u
	f.byEmail[u.Email] = &cpy
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byEmail {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *u
	return &c, nil
}

// fakeTokens is an in-memory ledger with the same single-use rotation semantics as Postgres.
type fakeTokens struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]model.RefreshToken
}

var _ repository.RefreshTokenRepository = (*fakeTokens)(nil)

func newFakeTokens() *fakeTokens { return &fakeTokens{rows: map[int64]model.RefreshToken{}} }

func (f *fakeTokens) insertLocked(userID uuid.UUID, hash string, exp time.Time) (*model.RefreshToken, error) {
	for _, r := range f.rows {
		if r.TokenHash == hash {
			return nil, errs.ErrAlreadyExists
		}
	}
	f.nextID++
	t := model.RefreshToken{ID: f.nextID, UserID: userID, TokenHash: hash, ExpiresAt: exp, CreatedAt: time.Now()}
	f.rows[t.ID] = t
	return &t, nil
}

func (f *fakeTokens) Record(_ context.Context, userID uuid.UUID, hash string, exp time.Time) (*model.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.insertLocked(userID, hash, exp)
}

func (f *fakeTokens) Lookup(_ context.Context, hash string) (*model.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.TokenHash == hash {
			c := r
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeTokens) Revoke(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, id)
	return nil
}

func (f *fakeTokens) RevokeByHash(_ context.Context, userID uuid.UUID, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, r := range f.rows {
		if r.TokenHash == hash && r.UserID == userID {
			delete(f.rows, id)
		}
	}
	return nil
}

func (f *fakeTokens) RevokeAllExpiredFor(_ context.Context, userID uuid.UUID, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, r := range f.rows {
		if r.UserID == userID && r.Expired(now) {
			delete(f.rows, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeTokens) Rotate(_ context.Context, oldID int64, userID uuid.UUID, hash string, exp time.Time) (*model.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	old, ok := f.rows[oldID]
	if !ok || old.UserID != userID {
		return nil, errs.ErrInvalidToken
	}
	delete(f.rows, oldID)
	t, err := f.insertLocked(userID, hash, exp)
	if err != nil {
		f.rows[oldID] = old
		return nil, err
	}
	return t, nil
}

func (f *fakeTokens) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

type fakeFoodLog struct {
	entries []model.FoodLogEntry
	since   string
	filter  repository.FoodLogFilter
}

var _ repository.FoodLogRepository = (*fakeFoodLog)(nil)

func (f *fakeFoodLog) List(_ context.Context, _ uuid.UUID, flt repository.FoodLogFilter) ([]model.FoodLogEntry, error) {
	f.filter = flt
	return f.entries, nil
}

func (f *fakeFoodLog) ListSince(_ context.Context, _ uuid.UUID, since string) ([]model.FoodLogEntry, error) {
	f.since = since
	return f.entries, nil
}

func (f *fakeFoodLog) Create(_ context.Context, e *model.FoodLogEntry) error {
	e.ID = int64(len(f.entries) + 1)
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeFoodLog) UpdateMealType(_ context.Context, _ uuid.UUID, id int64, mealType string) (*model.FoodLogEntry, error) {
	for i := range f.entries {
		if f.entries[i].ID == id {
			f.entries[i].MealType = mealType
			c := f.entries[i]
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeFoodLog) Delete(_ context.Context, _ uuid.UUID, id int64) error {
	for i := range f.entries {
		if f.entries[i].ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return errs.ErrNotFound
}

type fakeCustomFoods struct {
	byBarcode map[string]model.CustomFood
	search    []model.CustomFood
	created   []model.CustomFood
}

var _ repository.CustomFoodRepository = (*fakeCustomFoods)(nil)

func (f *fakeCustomFoods) List(context.Context, uuid.UUID) ([]model.CustomFood, error) {
	return f.created, nil
}

func (f *fakeCustomFoods) Get(_ context.Context, _ uuid.UUID, id int64) (*model.CustomFood, error) {
	for _, c := range f.created {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeCustomFoods) FindByBarcode(_ context.Context, _ uuid.UUID, code string) (*model.CustomFood, error) {
	c, ok := f.byBarcode[code]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &c, nil
}

func (f *fakeCustomFoods) Search(_ context.Context, _ uuid.UUID, _ string, limit int) ([]model.CustomFood, error) {
	if len(f.search) > limit {
		return f.search[:limit], nil
	}
	return f.search, nil
}

func (f *fakeCustomFoods) Create(_ context.Context, c *model.CustomFood) error {
	c.ID = int64(len(f.created) + 1)
	f.created = append(f.created, *c)
	return nil
}

func (f *fakeCustomFoods) Update(_ context.Context, c *model.CustomFood) error {
	for i := range f.created {
		if f.created[i].ID == c.ID {
			f.created[i] = *c
			return nil
		}
	}
	return errs.ErrNotFound
}

func (f *fakeCustomFoods) Delete(context.Context, uuid.UUID, int64) error { return nil }

type fakeProvider struct {
	food    *model.Food
	results []model.Food

	lookups     int
	searchLimit int
}

func (p *fakeProvider) LookupByBarcode(context.Context, string) (*model.Food, bool) {
	p.lookups++
	return p.food, p.food != nil
}

func (p *fakeProvider) Search(_ context.Context, _ string, limit int) []model.Food {
	p.searchLimit = limit
	if len(p.results) > limit {
		return p.results[:limit]
	}
	return p.results
}

type fakeSettings struct {
	rows    map[uuid.UUID]model.Settings
	updates int
}

var _ repository.SettingsRepository = (*fakeSettings)(nil)

func (f *fakeSettings) Get(_ context.Context, userID uuid.UUID) (*model.Settings, error) {
	if f.rows == nil {
		f.rows = map[uuid.UUID]model.Settings{}
	}
	s, ok := f.rows[userID]
	if !ok {
		s = model.DefaultSettings(userID)
		f.rows[userID] = s
	}
	return &s, nil
}

func (f *fakeSettings) Update(_ context.Context, s *model.Settings) error {
	f.updates++
	f.rows[s.UserID] = *s
	return nil
}

type fakeRetention struct {
	cutoff string
	now    time.Time
	res    model.SweepResult
	err    error
}

func (f *fakeRetention) Sweep(_ context.Context, cutoff string, now time.Time) (model.SweepResult, error) {
	f.cutoff, f.now = cutoff, now
	return f.res, f.err
}

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }
func sptr(v string) *string   { return &v }
