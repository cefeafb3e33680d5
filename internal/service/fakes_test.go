package service

import (
	"context"

	"github.com/abdalla1234567890/chatbot/internal/agent"
	"github.com/abdalla1234567890/chatbot/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes. They keep slices rather than maps so listing
// order stays deterministic across test runs.

type fakeUserRepo struct {
	users []*model.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.IDHash == "" {
		user.IDHash = uuid.NewString()
	}
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepo) GetByCode(_ context.Context, code string) (*model.User, error) {
	for _, u := range f.users {
		if u.Code == code {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByIDHash(_ context.Context, idHash string) (*model.User, error) {
	for _, u := range f.users {
		if u.IDHash == idHash {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByRef(ctx context.Context, ref string) (*model.User, error) {
	if u, err := f.GetByIDHash(ctx, ref); err == nil {
		return u, nil
	}
	return f.GetByCode(ctx, ref)
}

func (f *fakeUserRepo) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	for i, u := range f.users {
		if u.ID == user.ID {
			f.users[i] = user
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Delete(_ context.Context, user *model.User) error {
	for i, u := range f.users {
		if u.ID == user.ID {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) CountAdmins(_ context.Context) (int64, error) {
	var count int64
	for _, u := range f.users {
		if u.IsAdmin == 1 {
			count++
		}
	}
	return count, nil
}

type fakeLocationRepo struct {
	locations   []*model.Location
	assignments []model.UserLocation
	nextID      uint
}

func (f *fakeLocationRepo) Create(_ context.Context, location *model.Location) error {
	f.nextID++
	location.ID = f.nextID
	f.locations = append(f.locations, location)
	return nil
}

func (f *fakeLocationRepo) GetByID(_ context.Context, id uint) (*model.Location, error) {
	for _, l := range f.locations {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLocationRepo) List(_ context.Context) ([]model.Location, error) {
	out := make([]model.Location, 0, len(f.locations))
	for _, l := range f.locations {
		out = append(out, *l)
	}
	return out, nil
}

func (f *fakeLocationRepo) Delete(_ context.Context, id uint) (bool, error) {
	kept := f.assignments[:0]
	for _, a := range f.assignments {
		if a.LocationID != id {
			kept = append(kept, a)
		}
	}
	f.assignments = kept

	for i, l := range f.locations {
		if l.ID == id {
			f.locations = append(f.locations[:i], f.locations[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLocationRepo) ListForUser(_ context.Context, userID uuid.UUID) ([]model.Location, error) {
	var out []model.Location
	for _, a := range f.assignments {
		if a.UserID != userID {
			continue
		}
		for _, l := range f.locations {
			if l.ID == a.LocationID {
				out = append(out, *l)
			}
		}
	}
	return out, nil
}

func (f *fakeLocationRepo) ReplaceForUser(_ context.Context, userID uuid.UUID, locationIDs []uint) error {
	kept := f.assignments[:0]
	for _, a := range f.assignments {
		if a.UserID != userID {
			kept = append(kept, a)
		}
	}
	f.assignments = kept
	for _, id := range locationIDs {
		f.assignments = append(f.assignments, model.UserLocation{UserID: userID, LocationID: id})
	}
	return nil
}

func (f *fakeLocationRepo) AddForUser(_ context.Context, userID uuid.UUID, locationID uint) error {
	f.assignments = append(f.assignments, model.UserLocation{UserID: userID, LocationID: locationID})
	return nil
}

func (f *fakeLocationRepo) RemoveForUser(_ context.Context, userID uuid.UUID, locationID uint) (bool, error) {
	for i, a := range f.assignments {
		if a.UserID == userID && a.LocationID == locationID {
			f.assignments = append(f.assignments[:i], f.assignments[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type fakeOrderRepo struct {
	orders []*model.Order
	err    error
}

func (f *fakeOrderRepo) Create(_ context.Context, order *model.Order) error {
	if f.err != nil {
		return f.err
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	f.orders = append(f.orders, order)
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	for _, o := range f.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeOrderRepo) List(_ context.Context, page, limit int) ([]model.Order, int64, error) {
	out := make([]model.Order, 0, len(f.orders))
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

type fakeAuditRepo struct {
	entries []*model.AuditLog
}

func (f *fakeAuditRepo) Log(_ context.Context, entry *model.AuditLog) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeAuditRepo) List(_ context.Context, page, limit int) ([]model.AuditLog, int64, error) {
	out := make([]model.AuditLog, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

// fakeTxManager runs the callback directly and counts invocations; a non-nil
// err simulates a rollback.
type fakeTxManager struct {
	runs int
	err  error
}

func (f *fakeTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	f.runs++
	if err := fn(ctx); err != nil {
		return err
	}
	return f.err
}

// fakeResponder replays a canned assistant reply and records what it was
// asked with.
type fakeResponder struct {
	reply string
	err   error

	gotHistory  []string
	gotAllowed  []string
	gotCustomer agent.CustomerProfile
}

func (f *fakeResponder) Reply(_ context.Context, history []string, customer agent.CustomerProfile, allowedLocations []string) (string, error) {
	f.gotHistory = history
	f.gotCustomer = customer
	f.gotAllowed = allowedLocations
	return f.reply, f.err
}
