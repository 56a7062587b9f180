package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/pkrylov/shareit-service/internal/errs"
	"github.com/pkrylov/shareit-service/internal/model"
)

// store is a shared in-memory backing for the fake repositories. It mimics
// the ordering and filtering contracts of the SQL layer.
type store struct {
	users    map[int64]model.User
	items    map[int64]model.Item
	bookings map[int64]model.Booking
	requests map[int64]model.ItemRequest
	comments []model.Comment
	nextID   int64
}

func newStore() *store {
	return &store{
		users:    map[int64]model.User{},
		items:    map[int64]model.Item{},
		bookings: map[int64]model.Booking{},
		requests: map[int64]model.ItemRequest{},
	}
}

func (s *store) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *store) addUser(name, email string) model.User {
	u := model.User{ID: s.id(), Name: name, Email: email}
	s.users[u.ID] = u
	return u
}

func (s *store) addItem(owner model.User, name string, available bool) model.Item {
	i := model.Item{ID: s.id(), Name: name, Description: name + " description", Available: available, OwnerID: owner.ID}
	s.items[i.ID] = i
	return i
}

func (s *store) addBooking(item model.Item, booker model.User, start, end time.Time, status model.Status) model.Booking {
	b := model.Booking{
		ID:     s.id(),
		Start:  model.NewDateTime(start),
		End:    model.NewDateTime(end),
		Status: status,
		Item:   item,
		Booker: booker,
	}
	s.bookings[b.ID] = b
	return b
}

type fakeUsers struct{ s *store }

func (f *fakeUsers) Create(_ context.Context, name, email string) (model.User, error) {
	for _, u := range f.s.users {
		if u.Email == email {
			return model.User{}, errs.ErrEmailUsed
		}
	}
	return f.s.addUser(name, email), nil
}

func (f *fakeUsers) Update(_ context.Context, user model.User) (model.User, error) {
	if _, ok := f.s.users[user.ID]; !ok {
		return model.User{}, errs.ErrUserNotFound
	}
	for _, u := range f.s.users {
		if u.Email == user.Email && u.ID != user.ID {
			return model.User{}, errs.ErrEmailUsed
		}
	}
	f.s.users[user.ID] = user
	return user, nil
}

func (f *fakeUsers) Delete(_ context.Context, id int64) error {
	if _, ok := f.s.users[id]; !ok {
		return errs.ErrUserNotFound
	}
	delete(f.s.users, id)
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (model.User, error) {
	u, ok := f.s.users[id]
	if !ok {
		return model.User{}, errs.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUsers) List(_ context.Context) ([]model.User, error) {
	users := make([]model.User, 0, len(f.s.users))
	for _, u := range f.s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (f *fakeUsers) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := f.s.users[id]
	return ok, nil
}

type fakeItems struct{ s *store }

func (f *fakeItems) Create(_ context.Context, item model.Item) (model.Item, error) {
	item.ID = f.s.id()
	f.s.items[item.ID] = item
	return item, nil
}

func (f *fakeItems) Update(_ context.Context, item model.Item) (model.Item, error) {
	if _, ok := f.s.items[item.ID]; !ok {
		return model.Item{}, errs.ErrItemNotFound
	}
	f.s.items[item.ID] = item
	return item, nil
}

func (f *fakeItems) Delete(_ context.Context, id int64) error {
	if _, ok := f.s.items[id]; !ok {
		return errs.ErrItemNotFound
	}
	delete(f.s.items, id)
	return nil
}

func (f *fakeItems) GetByID(_ context.Context, id int64) (model.Item, error) {
	item, ok := f.s.items[id]
	if !ok {
		return model.Item{}, errs.ErrItemNotFound
	}
	return item, nil
}

func (f *fakeItems) ListByOwner(_ context.Context, ownerID int64, offset, limit int) ([]model.Item, error) {
	items := make([]model.Item, 0)
	for _, i := range f.s.items {
		if i.OwnerID == ownerID {
			items = append(items, i)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return window(items, offset, limit), nil
}

func (f *fakeItems) ListByRequestIDs(_ context.Context, requestIDs []int64) ([]model.Item, error) {
	ids := map[int64]bool{}
	for _, id := range requestIDs {
		ids[id] = true
	}
	items := make([]model.Item, 0)
	for _, i := range f.s.items {
		if i.RequestID != nil && ids[*i.RequestID] {
			items = append(items, i)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (f *fakeItems) Search(_ context.Context, text string, offset, limit int) ([]model.Item, error) {
	items := make([]model.Item, 0)
	for _, i := range f.s.items {
		if i.Available && (contains(i.Name, text) || contains(i.Description, text)) {
			items = append(items, i)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return window(items, offset, limit), nil
}

func (f *fakeItems) HasAnyByOwner(_ context.Context, ownerID int64) (bool, error) {
	for _, i := range f.s.items {
		if i.OwnerID == ownerID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeItems) CreateComment(_ context.Context, comment model.Comment, _ int64) (model.Comment, error) {
	comment.ID = f.s.id()
	f.s.comments = append(f.s.comments, comment)
	return comment, nil
}

func (f *fakeItems) CommentsForItem(_ context.Context, itemID int64) ([]model.Comment, error) {
	comments := make([]model.Comment, 0)
	for _, c := range f.s.comments {
		if c.ItemID == itemID {
			comments = append(comments, c)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].Created.Time.Before(comments[j].Created.Time) })
	return comments, nil
}

func (f *fakeItems) CommentsForOwner(_ context.Context, ownerID int64) ([]model.Comment, error) {
	comments := make([]model.Comment, 0)
	for _, c := range f.s.comments {
		if item, ok := f.s.items[c.ItemID]; ok && item.OwnerID == ownerID {
			comments = append(comments, c)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].Created.Time.Before(comments[j].Created.Time) })
	return comments, nil
}

type fakeBookings struct{ s *store }

func (f *fakeBookings) Create(_ context.Context, booking model.Booking) (model.Booking, error) {
	booking.ID = f.s.id()
	f.s.bookings[booking.ID] = booking
	return booking, nil
}

func (f *fakeBookings) GetByID(_ context.Context, id int64) (model.Booking, error) {
	b, ok := f.s.bookings[id]
	if !ok {
		return model.Booking{}, errs.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookings) UpdateStatus(_ context.Context, id int64, decide func(model.Booking) (model.Status, error)) (model.Booking, error) {
	b, ok := f.s.bookings[id]
	if !ok {
		return model.Booking{}, errs.ErrBookingNotFound
	}
	status, err := decide(b)
	if err != nil {
		return model.Booking{}, err
	}
	b.Status = status
	f.s.bookings[id] = b
	return b, nil
}

func (f *fakeBookings) ListByBooker(_ context.Context, bookerID int64, state model.State, now time.Time, offset, limit int) ([]model.Booking, error) {
	return f.list(func(b model.Booking) bool { return b.Booker.ID == bookerID }, state, now, offset, limit)
}

func (f *fakeBookings) ListByOwner(_ context.Context, ownerID int64, state model.State, now time.Time, offset, limit int) ([]model.Booking, error) {
	return f.list(func(b model.Booking) bool { return b.Item.OwnerID == ownerID }, state, now, offset, limit)
}

func (f *fakeBookings) list(match func(model.Booking) bool, state model.State, now time.Time, offset, limit int) ([]model.Booking, error) {
	bookings := make([]model.Booking, 0)
	for _, b := range f.s.bookings {
		if !match(b) || !matchState(b, state, now) {
			continue
		}
		bookings = append(bookings, b)
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].Start.Time.After(bookings[j].Start.Time) })
	return window(bookings, offset, limit), nil
}

func matchState(b model.Booking, state model.State, now time.Time) bool {
	switch state {
	case model.StateCurrent:
		return !b.Start.Time.After(now) && !b.End.Time.Before(now)
	case model.StatePast:
		return b.End.Time.Before(now)
	case model.StateFuture:
		return b.Start.Time.After(now)
	case model.StateWaiting:
		return b.Status == model.StatusWaiting
	case model.StateRejected:
		return b.Status == model.StatusRejected
	default:
		return true
	}
}

func (f *fakeBookings) LastForItem(_ context.Context, itemID int64, now time.Time) (*model.BookingShort, error) {
	var last *model.Booking
	for id := range f.s.bookings {
		b := f.s.bookings[id]
		if b.Item.ID != itemID || b.Status != model.StatusApproved || !b.Start.Time.Before(now) {
			continue
		}
		if last == nil || b.Start.Time.After(last.Start.Time) {
			last = &b
		}
	}
	return short(last), nil
}

func (f *fakeBookings) NextForItem(_ context.Context, itemID int64, now time.Time) (*model.BookingShort, error) {
	var next *model.Booking
	for id := range f.s.bookings {
		b := f.s.bookings[id]
		if b.Item.ID != itemID || b.Status != model.StatusApproved || !b.Start.Time.After(now) {
			continue
		}
		if next == nil || b.Start.Time.Before(next.Start.Time) {
			next = &b
		}
	}
	return short(next), nil
}

func short(b *model.Booking) *model.BookingShort {
	if b == nil {
		return nil
	}
	return &model.BookingShort{ID: b.ID, BookerID: b.Booker.ID, Start: b.Start, End: b.End, ItemID: b.Item.ID}
}

func (f *fakeBookings) ApprovedForOwner(_ context.Context, ownerID int64) ([]model.BookingShort, error) {
	bookings := make([]model.BookingShort, 0)
	for _, b := range f.s.bookings {
		if b.Item.OwnerID == ownerID && b.Status == model.StatusApproved {
			bookings = append(bookings, *short(&b))
		}
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].Start.Time.Before(bookings[j].Start.Time) })
	return bookings, nil
}

func (f *fakeBookings) HasCompleted(_ context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	for _, b := range f.s.bookings {
		if b.Booker.ID == bookerID && b.Item.ID == itemID && b.End.Time.Before(now) {
			return true, nil
		}
	}
	return false, nil
}

type fakeRequests struct{ s *store }

func (f *fakeRequests) Create(_ context.Context, request model.ItemRequest) (model.ItemRequest, error) {
	request.ID = f.s.id()
	f.s.requests[request.ID] = request
	return request, nil
}

func (f *fakeRequests) GetByID(_ context.Context, id int64) (model.ItemRequest, error) {
	r, ok := f.s.requests[id]
	if !ok {
		return model.ItemRequest{}, errs.ErrRequestNotFound
	}
	return r, nil
}

func (f *fakeRequests) ListByRequester(_ context.Context, requesterID int64, offset, limit int) ([]model.ItemRequest, error) {
	return f.list(func(r model.ItemRequest) bool { return r.RequesterID == requesterID }, offset, limit)
}

func (f *fakeRequests) ListOthers(_ context.Context, requesterID int64, offset, limit int) ([]model.ItemRequest, error) {
	return f.list(func(r model.ItemRequest) bool { return r.RequesterID != requesterID }, offset, limit)
}

func (f *fakeRequests) list(match func(model.ItemRequest) bool, offset, limit int) ([]model.ItemRequest, error) {
	requests := make([]model.ItemRequest, 0)
	for _, r := range f.s.requests {
		if match(r) {
			requests = append(requests, r)
		}
	}
	sort.Slice(requests, func(i, j int) bool { return requests[i].Created.Time.After(requests[j].Created.Time) })
	return window(requests, offset, limit), nil
}

func window[T any](in []T, offset, limit int) []T {
	if offset >= len(in) {
		return []T{}
	}
	in = in[offset:]
	if limit < len(in) {
		in = in[:limit]
	}
	return in
}

func contains(s, sub string) bool {
	return sub != "" && strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
