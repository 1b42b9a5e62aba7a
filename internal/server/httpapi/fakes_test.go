package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/and161185/nutrilog/internal/errs"
	"github.com/and161185/nutrilog/internal/model"
	"github.com/and161185/nutrilog/internal/service"
	"github.com/and161185/nutrilog/internal/token"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"
)

type fakeAccount struct {
	user     model.User
	password string
}

// fakeAuth keeps accounts and refresh secrets in memory and signs real access tokens.
type fakeAuth struct {
	mu      sync.Mutex
	issuer  *token.Issuer
	byEmail map[string]*fakeAccount
	refresh map[string]uuid.UUID
	seq     int
	logouts []string
}

func newFakeAuth(issuer *token.Issuer) *fakeAuth {
	return &fakeAuth{issuer: issuer, byEmail: map[string]*fakeAccount{}, refresh: map[string]uuid.UUID{}}
}

func (f *fakeAuth) session(u model.User) (model.Session, error) {
	access, exp, err := f.issuer.IssueAccessToken(u.ID)
	if err != nil {
		return model.Session{}, err
	}
	f.seq++
	secret := fmt.Sprintf("refresh-%d", f.seq)
	f.refresh[secret] = u.ID
	return model.Session{User: u, Tokens: model.Tokens{AccessToken: access, RefreshToken: secret, ExpiresAt: exp}}, nil
}

func (f *fakeAuth) Register(_ context.Context, email, password, name string) (model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if email == "" {
		return model.Session{}, errs.Validation("Please provide a valid email address.")
	}
	if _, ok := f.byEmail[email]; ok {
		return model.Session{}, errs.ErrAlreadyExists
	}
	u := model.User{ID: uuid.Must(uuid.NewV4()), Email: email, Name: name, CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	f.byEmail[email] = &fakeAccount{user: u, password: password}
	return f.session(u)
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, ok := f.byEmail[email]
	if !ok || acc.password != password {
		return model.Session{}, errs.ErrUnauthorized
	}
	return f.session(acc.user)
}

func (f *fakeAuth) Refresh(_ context.Context, secret string) (model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	uid, ok := f.refresh[secret]
	if !ok {
		return model.Session{}, errs.ErrInvalidToken
	}
	delete(f.refresh, secret)
	for _, acc := range f.byEmail {
		if acc.user.ID == uid {
			return f.session(acc.user)
		}
	}
	return model.Session{}, errs.ErrInvalidToken
}

func (f *fakeAuth) Logout(_ context.Context, userID uuid.UUID, secret string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logouts = append(f.logouts, secret)
	if uid, ok := f.refresh[secret]; ok && uid == userID {
		delete(f.refresh, secret)
	}
	return nil
}

func (f *fakeAuth) Me(_ context.Context, userID uuid.UUID) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, acc := range f.byEmail {
		if acc.user.ID == userID {
			return acc.user, nil
		}
	}
	return model.User{}, errs.ErrNotFound
}

type fakeFoods struct {
	match model.FoodMatch
	err   error
	query string
	limit int
}

func (f *fakeFoods) Barcode(context.Context, uuid.UUID, string) (model.FoodMatch, error) {
	return f.match, f.err
}

func (f *fakeFoods) Search(_ context.Context, _ uuid.UUID, q string, limit int) ([]model.FoodMatch, error) {
	f.query, f.limit = q, limit
	if f.err != nil {
		return nil, f.err
	}
	return []model.FoodMatch{f.match}, nil
}

type fakeFoodLog struct {
	service.FoodLogService
	createErr error
	days      int
	date      string
	mealType  string
}

func (f *fakeFoodLog) List(_ context.Context, _ uuid.UUID, date, mealType string) ([]model.FoodLogEntry, error) {
	f.date, f.mealType = date, mealType
	return nil, nil
}

func (f *fakeFoodLog) Recent(_ context.Context, _ uuid.UUID, days int) ([]model.RecentFood, error) {
	f.days = days
	return []model.RecentFood{{Name: "Oats", Source: model.SourceCustomFood, SourceID: "7"}}, nil
}

func (f *fakeFoodLog) Create(_ context.Context, _ uuid.UUID, in service.FoodLogInput) (model.FoodLogEntry, error) {
	if f.createErr != nil {
		return model.FoodLogEntry{}, f.createErr
	}
	return model.FoodLogEntry{ID: 1, Date: in.Date, Name: in.Name}, nil
}

func (f *fakeFoodLog) Delete(context.Context, uuid.UUID, int64) error { return errs.ErrNotFound }

type fakeWater struct {
	service.WaterService
	deleted []int64
}

func (f *fakeWater) List(context.Context, uuid.UUID, string) ([]model.WaterLogEntry, int, error) {
	return nil, 0, nil
}

func (f *fakeWater) Delete(_ context.Context, _ uuid.UUID, id int64) error {
	if id != 5 {
		return errs.ErrNotFound
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeSettings struct{}

func (fakeSettings) Get(_ context.Context, userID uuid.UUID) (model.Settings, error) {
	return model.DefaultSettings(userID), nil
}

func (fakeSettings) Update(_ context.Context, userID uuid.UUID, p model.SettingsPatch) (model.Settings, error) {
	if p.Empty() {
		return model.Settings{}, service.ErrNoSettingsFields
	}
	if *p.DailyCalorieTarget < 500 {
		return model.Settings{}, errs.Validation("dailyCalorieTarget must be between 500 and 10000.")
	}
	return p.Apply(model.DefaultSettings(userID)), nil
}

type fakeMeals struct {
	service.CustomMealService
}

func (fakeMeals) ToggleFavourite(_ context.Context, _ uuid.UUID, id int64) (model.CustomMeal, error) {
	if id == 1 {
		return model.CustomMeal{ID: 1, Name: "Stew", IsFavourite: true}, nil
	}
	return model.CustomMeal{}, errs.ErrNotFound
}

type panickyFoods struct{ fakeFoods }

func (panickyFoods) Search(context.Context, uuid.UUID, string, int) ([]model.FoodMatch, error) {
	panic("boom")
}

// clock is an adjustable time source shared by the issuer and the test.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// fakeGuard blocks a pair after maxFails failures until Success or a reset.
type fakeGuard struct {
	mu       sync.Mutex
	maxFails int
	fails    map[string]int
	allowErr error
}

func newFakeGuard(maxFails int) *fakeGuard {
	return &fakeGuard{maxFails: maxFails, fails: map[string]int{}}
}

func (g *fakeGuard) Allow(_ context.Context, emailHash, ipHash string) (bool, time.Duration, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.allowErr != nil {
		return false, 0, g.allowErr
	}
	if g.fails[emailHash+ipHash] >= g.maxFails {
		return false, 90 * time.Second, nil
	}
	return true, 0, nil
}

func (g *fakeGuard) Success(_ context.Context, emailHash, ipHash string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.fails, emailHash+ipHash)
	return nil
}

func (g *fakeGuard) Failure(_ context.Context, emailHash, ipHash string) (bool, time.Duration, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fails[emailHash+ipHash]++
	return g.fails[emailHash+ipHash] >= g.maxFails, 90 * time.Second, nil
}

type testEnv struct {
	srv    *httptest.Server
	auth   *fakeAuth
	foods  *fakeFoods
	log    *fakeFoodLog
	water  *fakeWater
	clock  *clock
	issuer *token.Issuer
}

func newEnv(t *testing.T, mutate ...func(*Deps)) *testEnv {
	t.Helper()
	clk := &clock{now: time.Now()}
	iss, err := token.NewIssuer([]byte("test-signing-secret"), 15*time.Minute)
	require.NoError(t, err)
	iss.WithClock(clk.Now)

	env := &testEnv{
		auth:   newFakeAuth(iss),
		foods:  &fakeFoods{},
		log:    &fakeFoodLog{},
		water:  &fakeWater{},
		clock:  clk,
		issuer: iss,
	}
	d := Deps{
		Auth:        env.auth,
		Foods:       env.foods,
		FoodLog:     env.log,
		Water:       env.water,
		CustomMeals: fakeMeals{},
		Settings:    fakeSettings{},
		Issuer:      iss,
		CORSOrigins: []string{"http://localhost:5173"},
	}
	for _, m := range mutate {
		m(&d)
	}
	env.srv = httptest.NewServer(NewRouter(d))
	t.Cleanup(env.srv.Close)
	return env
}

// do sends a JSON request and decodes a JSON response into out when out is non-nil.
func (e *testEnv) do(t *testing.T, method, path, bearer string, body any, out any) *http.Response {
	t.Helper()
	var rdr *bytes.Reader
	switch b := body.(type) {
	case nil:
		rdr = bytes.NewReader(nil)
	case string:
		rdr = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, e.srv.URL+path, rdr)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := e.srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

// login registers a fresh account and returns its session tokens.
func (e *testEnv) login(t *testing.T) sessionBody {
	t.Helper()
	var s sessionBody
	resp := e.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": fmt.Sprintf("u%d@example.com", time.Now().UnixNano()), "password": "Passw0rd!", "name": "Ann",
	}, &s)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return s
}

type sessionBody struct {
	User struct {
		ID        string  `json:"id"`
		Email     string  `json:"email"`
		Name      string  `json:"name"`
		CreatedAt *string `json:"createdAt"`
	} `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type errorBody struct {
	Error   string   `json:"error"`
	Code    string   `json:"code"`
	Details []string `json:"details"`
}
