package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/pkrylov/shareit-service/internal/errs"
	"github.com/pkrylov/shareit-service/internal/events"
	"github.com/pkrylov/shareit-service/internal/model"
	"github.com/pkrylov/shareit-service/internal/repository"
)

// BookingService owns every booking invariant: the transport layer is a pure
// marshaller on top of it.
type BookingService struct {
	log      *zap.Logger
	bookings repository.Bookings
	items    repository.Items
	users    repository.Users
	producer *events.Producer
	now      func() time.Time
}

func NewBookingService(bookings repository.Bookings, items repository.Items, users repository.Users, producer *events.Producer, log *zap.Logger) *BookingService {
	return &BookingService{
		log:      log,
		bookings: bookings,
		items:    items,
		users:    users,
		producer: producer,
		now:      time.Now,
	}
}

func (s *BookingService) Create(ctx context.Context, bookerID int64, req model.CreateBookingRequest) (model.Booking, error) {
	booker, err := s.users.GetByID(ctx, bookerID)
	if err != nil {
		return model.Booking{}, err
	}
	item, err := s.items.GetByID(ctx, req.ItemID)
	if err != nil {
		return model.Booking{}, err
	}
	if item.OwnerID == booker.ID {
		return model.Booking{}, errors.Wrap(errs.ErrForbidden, "owner cannot book own item")
	}
	if !item.Available {
		return model.Booking{}, errors.Wrapf(errs.ErrInvalidState, "item %d is not available", item.ID)
	}
	if !req.Start.Time.Before(req.End.Time) {
		return model.Booking{}, errors.Wrap(errs.ErrValidation, "start must be before end")
	}

	booking, err := s.bookings.Create(ctx, model.Booking{
		Start:  req.Start,
		End:    req.End,
		Status: model.StatusWaiting,
		Item:   item,
		Booker: booker,
	})
	if err != nil {
		return model.Booking{}, err
	}
	s.producer.BookingChanged(booking)
	return booking, nil
}

// SetApproval decides under the repository's row lock, so two concurrent
// approvals cannot both pass the already-approved guard.
func (s *BookingService) SetApproval(ctx context.Context, ownerID, bookingID int64, approved bool) (model.Booking, error) {
	booking, err := s.bookings.UpdateStatus(ctx, bookingID, func(b model.Booking) (model.Status, error) {
		if b.Item.OwnerID != ownerID {
			return "", errors.Wrapf(errs.ErrForbidden, "user %d is not the owner", ownerID)
		}
		if !approved {
			// rejecting a rejected booking stays a no-op
			return model.StatusRejected, nil
		}
		if b.Status == model.StatusApproved {
			return "", errors.Wrap(errs.ErrInvalidState, "booking is already approved")
		}
		return model.StatusApproved, nil
	})
	if err != nil {
		return model.Booking{}, err
	}
	s.producer.BookingChanged(booking)
	return booking, nil
}

// Get hides the booking's existence from unrelated users: they see the same
// not-found as for a missing id.
func (s *BookingService) Get(ctx context.Context, userID, bookingID int64) (model.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return model.Booking{}, err
	}
	if booking.Booker.ID != userID && booking.Item.OwnerID != userID {
		return model.Booking{}, errs.ErrBookingNotFound
	}
	return booking, nil
}

func (s *BookingService) ListByBooker(ctx context.Context, bookerID int64, stateRaw string, from, size int) ([]model.Booking, error) {
	ok, err := s.users.Exists(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	state, err := model.ParseState(stateRaw)
	if err != nil {
		return nil, err
	}
	return s.bookings.ListByBooker(ctx, bookerID, state, s.now(), from, size)
}

func (s *BookingService) ListByOwner(ctx context.Context, ownerID int64, stateRaw string, from, size int) ([]model.Booking, error) {
	ok, err := s.users.Exists(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	hasItems, err := s.items.HasAnyByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !hasItems {
		return nil, errors.Wrapf(errs.ErrItemNotFound, "user %d has no items", ownerID)
	}
	state, err := model.ParseState(stateRaw)
	if err != nil {
		return nil, err
	}
	return s.bookings.ListByOwner(ctx, ownerID, state, s.now(), from, size)
}
