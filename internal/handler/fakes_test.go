package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mviller/propnest/internal/middleware"
	"github.com/mviller/propnest/internal/model"
	"github.com/mviller/propnest/internal/repository"
)

// In-memory store fakes backing the handler tests.

type fakeUserStore struct {
	byEmail map[string]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]model.User{}}
}

func (s *fakeUserStore) Create(_ context.Context, email, name, passwordHash, role string, phone *string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, exists := s.byEmail[email]; exists {
		return model.User{}, repository.ErrEmailExists
	}
	now := time.Now().UTC()
	u := model.User{
		ID: uuid.NewString(), Email: email, Name: name,
		PasswordHash: passwordHash, Role: role, Phone: phone,
		CreatedAt: now, UpdatedAt: now,
	}
	s.byEmail[email] = u
	return u, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	u, ok := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

type fakePropertyStore struct {
	byID map[string]model.Property
	// lastSearch records the query handed to Search for assertions.
	lastSearch repository.SearchQuery
}

func newFakePropertyStore() *fakePropertyStore {
	return &fakePropertyStore{byID: map[string]model.Property{}}
}

func (s *fakePropertyStore) Create(_ context.Context, ownerID string, p model.Property) (model.Property, error) {
	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.OwnerID = ownerID
	if p.Status == "" {
		p.Status = model.StatusAvailable
	}
	if p.Amenities == nil {
		p.Amenities = []string{}
	}
	p.CreatedAt, p.UpdatedAt = now, now
	s.byID[p.ID] = p
	return p, nil
}

func (s *fakePropertyStore) GetByID(_ context.Context, id string) (model.Property, error) {
	p, ok := s.byID[id]
	if !ok {
		return model.Property{}, repository.ErrPropertyNotFound
	}
	return p, nil
}

func (s *fakePropertyStore) Search(_ context.Context, q repository.SearchQuery) ([]model.Property, int64, error) {
	s.lastSearch = q
	out := []model.Property{}
	for _, p := range s.byID {
		if p.Status != model.StatusAvailable {
			continue
		}
		if q.Type != "" && p.Type != q.Type {
			continue
		}
		if q.MinPrice != nil && p.Price < *q.MinPrice {
			continue
		}
		if q.MaxPrice != nil && p.Price > *q.MaxPrice {
			continue
		}
		if q.Bedrooms != nil && p.Bedrooms != *q.Bedrooms {
			continue
		}
		if q.Bathrooms != nil && p.Bathrooms != *q.Bathrooms {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, int64(len(out)), nil
}

func (s *fakePropertyStore) Update(_ context.Context, id string, patch model.PropertyPatch) (model.Property, error) {
	p, ok := s.byID[id]
	if !ok {
		return model.Property{}, repository.ErrPropertyNotFound
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	p.UpdatedAt = time.Now().UTC()
	s.byID[id] = p
	return p, nil
}

func (s *fakePropertyStore) Delete(_ context.Context, id string) error {
	if _, ok := s.byID[id]; !ok {
		return repository.ErrPropertyNotFound
	}
	delete(s.byID, id)
	return nil
}

type fakeMessageStore struct {
	byProperty map[string][]model.Message
}

func newFakeMessageStore() *fakeMessageStore {
	return &fakeMessageStore{byProperty: map[string][]model.Message{}}
}

func (s *fakeMessageStore) Create(_ context.Context, senderID, propertyID, content string) (model.Message, error) {
	m := model.Message{
		ID: uuid.NewString(), Content: content,
		SenderID: senderID, PropertyID: propertyID,
		Sender:    &model.UserPart{ID: senderID, Name: "Sender"},
		CreatedAt: time.Now().UTC(),
	}
	s.byProperty[propertyID] = append(s.byProperty[propertyID], m)
	return m, nil
}

func (s *fakeMessageStore) ListByProperty(_ context.Context, propertyID string) ([]model.Message, error) {
	return s.byProperty[propertyID], nil
}

func (s *fakeMessageStore) HasSenderMessage(_ context.Context, propertyID, userID string) (bool, error) {
	for _, m := range s.byProperty[propertyID] {
		if m.SenderID == userID {
			return true, nil
		}
	}
	return false, nil
}

// newTestCtx builds an Echo context for a request, optionally
// authenticated as uid (mirroring what the cookie middleware does).
func newTestCtx(method, target, body, uid string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if uid != "" {
		c.Set(middleware.CtxUserID, uid)
	}
	return c, rec
}
