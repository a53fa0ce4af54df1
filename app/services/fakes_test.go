package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/shashiranjanraj/nexus/app/models"
)

type fakeUsers struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
	nextID  uint
	err     error

	// raceOnCreate makes Create lose a concurrent registration.
	raceOnCreate bool
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: map[string]*models.User{}}
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.byEmail[email], nil
}

func (f *fakeUsers) Create(_ context.Context, email, password string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if f.raceOnCreate || f.byEmail[email] != nil {
		return nil, models.ErrDuplicateEmail
	}
	f.nextID++
	u := &models.User{ID: f.nextID, Email: email, HashedPassword: "hashed:" + password, IsActive: true}
	f.byEmail[email] = u
	return u, nil
}

func (f *fakeUsers) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := f.FindByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, err
	}
	if u.HashedPassword != "hashed:"+password {
		return nil, nil
	}
	return u, nil
}

type fakeProducts struct {
	mu    sync.Mutex
	byID  map[string]models.Product
	order []string
	gets  int
	err   error
}

func newFakeProducts() *fakeProducts {
	return &fakeProducts{byID: map[string]models.Product{}}
}

func (f *fakeProducts) Create(_ context.Context, in models.ProductInput) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	p := models.NewProduct(in)
	p.ID = models.NewProductID()
	f.byID[p.ID.String()] = p
	f.order = append(f.order, p.ID.String())
	return &p, nil
}

func (f *fakeProducts) List(context.Context) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Product, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.byID[id])
	}
	return out, nil
}

func (f *fakeProducts) GetByID(_ context.Context, raw string) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.err != nil {
		return nil, f.err
	}
	if _, err := models.ParseProductID(raw); err != nil {
		return nil, err
	}
	p, ok := f.byID[raw]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &p, nil
}

type fakeIssuer struct{ err error }

func (f fakeIssuer) Issue(subject string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-for:" + subject, nil
}

type mapCache struct {
	mu   sync.Mutex
	data map[string]any
	ttl  time.Duration
}

func newMapCache() *mapCache { return &mapCache{data: map[string]any{}} }

func (m *mapCache) Get(_ context.Context, key string, dest any) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return false
	}
	*(dest.(*models.Product)) = *(v.(*models.Product))
	return true
}

func (m *mapCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.ttl = ttl
	return nil
}
