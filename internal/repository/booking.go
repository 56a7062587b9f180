package repository

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/pkrylov/shareit-service/internal/errs"
	"github.com/pkrylov/shareit-service/internal/model"
)

type Bookings interface {
	Create(ctx context.Context, booking model.Booking) (model.Booking, error)
	GetByID(ctx context.Context, id int64) (model.Booking, error)
	UpdateStatus(ctx context.Context, id int64, decide func(model.Booking) (model.Status, error)) (model.Booking, error)
	ListByBooker(ctx context.Context, bookerID int64, state model.State, now time.Time, offset, limit int) ([]model.Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, state model.State, now time.Time, offset, limit int) ([]model.Booking, error)
	LastForItem(ctx context.Context, itemID int64, now time.Time) (*model.BookingShort, error)
	NextForItem(ctx context.Context, itemID int64, now time.Time) (*model.BookingShort, error)
	ApprovedForOwner(ctx context.Context, ownerID int64) ([]model.BookingShort, error)
	HasCompleted(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
}

type bookingRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewBookings(db *sqlx.DB, log *zap.Logger) *bookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.Named("repo.bookings"),
	}
}

func selectBookings() sq.SelectBuilder {
	return qb.Select(
		"b.id", "b.start_date", "b.end_date", "b.status",
		`i.id as "item.id"`, `i.name as "item.name"`, `i.description as "item.description"`,
		`i.available as "item.available"`, `i.owner_id as "item.owner_id"`, `i.request_id as "item.request_id"`,
		`u.id as "booker.id"`, `u.name as "booker.name"`, `u.email as "booker.email"`,
	).
		From(bookingsTable + " b").
		Join(itemsTable + " i on i.id = b.item_id").
		Join(usersTable + " u on u.id = b.booker_id")
}

func (r *bookingRepository) Create(ctx context.Context, booking model.Booking) (model.Booking, error) {
	q, args, err := qb.Insert(bookingsTable).
		Columns("start_date", "end_date", "item_id", "booker_id", "status").
		Values(booking.Start, booking.End, booking.Item.ID, booking.Booker.ID, booking.Status).
		Suffix("returning id").
		ToSql()
	if err != nil {
		return model.Booking{}, err
	}
	var id int64
	if err := r.db.GetContext(ctx, &id, q, args...); err != nil {
		r.log.Error("Create", zap.String("q", q), zap.Any("args", args))
		return model.Booking{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (model.Booking, error) {
	q, args, err := selectBookings().Where(sq.Eq{"b.id": id}).ToSql()
	if err != nil {
		return model.Booking{}, err
	}
	var booking model.Booking
	if err := r.db.GetContext(ctx, &booking, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Booking{}, errs.ErrBookingNotFound
		}
		return model.Booking{}, err
	}
	return booking, nil
}

// UpdateStatus loads the booking under a row lock, lets decide pick the next
// status (or refuse), and persists it in the same transaction. Two concurrent
// approvals cannot both observe WAITING.
func (r *bookingRepository) UpdateStatus(ctx context.Context, id int64, decide func(model.Booking) (model.Status, error)) (model.Booking, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Booking{}, err
	}
	defer tx.Rollback() //nolint:errcheck

	q, args, err := selectBookings().
		Where(sq.Eq{"b.id": id}).
		Suffix("for update of b").
		ToSql()
	if err != nil {
		return model.Booking{}, err
	}
	var booking model.Booking
	if err := tx.GetContext(ctx, &booking, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Booking{}, errs.ErrBookingNotFound
		}
		return model.Booking{}, err
	}

	status, err := decide(booking)
	if err != nil {
		return model.Booking{}, err
	}

	uq, uargs, err := qb.Update(bookingsTable).
		Set("status", status).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Booking{}, err
	}
	if _, err := tx.ExecContext(ctx, uq, uargs...); err != nil {
		return model.Booking{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Booking{}, err
	}
	booking.Status = status
	return booking, nil
}

func (r *bookingRepository) ListByBooker(ctx context.Context, bookerID int64, state model.State, now time.Time, offset, limit int) ([]model.Booking, error) {
	q := selectBookings().Where(sq.Eq{"b.booker_id": bookerID})
	return r.list(ctx, withState(q, state, now), offset, limit)
}

func (r *bookingRepository) ListByOwner(ctx context.Context, ownerID int64, state model.State, now time.Time, offset, limit int) ([]model.Booking, error) {
	q := selectBookings().Where(sq.Eq{"i.owner_id": ownerID})
	return r.list(ctx, withState(q, state, now), offset, limit)
}

func (r *bookingRepository) list(ctx context.Context, q sq.SelectBuilder, offset, limit int) ([]model.Booking, error) {
	query, args, err := q.
		OrderBy("b.start_date desc").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}
	bookings := make([]model.Booking, 0)
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		r.log.Error("list", zap.String("q", query), zap.Any("args", args))
		return nil, err
	}
	return bookings, nil
}

func withState(q sq.SelectBuilder, state model.State, now time.Time) sq.SelectBuilder {
	switch state {
	case model.StateCurrent:
		return q.Where(sq.LtOrEq{"b.start_date": now}).Where(sq.GtOrEq{"b.end_date": now})
	case model.StatePast:
		return q.Where(sq.Lt{"b.end_date": now})
	case model.StateFuture:
		return q.Where(sq.Gt{"b.start_date": now})
	case model.StateWaiting:
		return q.Where(sq.Eq{"b.status": model.StatusWaiting})
	case model.StateRejected:
		return q.Where(sq.Eq{"b.status": model.StatusRejected})
	default:
		return q
	}
}

func (r *bookingRepository) LastForItem(ctx context.Context, itemID int64, now time.Time) (*model.BookingShort, error) {
	return r.edgeForItem(ctx, itemID, sq.Lt{"start_date": now}, "start_date desc")
}

func (r *bookingRepository) NextForItem(ctx context.Context, itemID int64, now time.Time) (*model.BookingShort, error) {
	return r.edgeForItem(ctx, itemID, sq.Gt{"start_date": now}, "start_date asc")
}

func (r *bookingRepository) edgeForItem(ctx context.Context, itemID int64, cond sq.Sqlizer, order string) (*model.BookingShort, error) {
	q, args, err := qb.Select("id", "booker_id", "start_date", "end_date", "item_id").
		From(bookingsTable).
		Where(sq.Eq{"item_id": itemID, "status": model.StatusApproved}).
		Where(cond).
		OrderBy(order).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, err
	}
	var booking model.BookingShort
	if err := r.db.GetContext(ctx, &booking, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

// ApprovedForOwner feeds the batch projection: one scan over all approved
// bookings on the owner's items, ascending by start.
func (r *bookingRepository) ApprovedForOwner(ctx context.Context, ownerID int64) ([]model.BookingShort, error) {
	q, args, err := qb.Select("b.id", "b.booker_id", "b.start_date", "b.end_date", "b.item_id").
		From(bookingsTable + " b").
		Join(itemsTable + " i on i.id = b.item_id").
		Where(sq.Eq{"i.owner_id": ownerID, "b.status": model.StatusApproved}).
		OrderBy("b.start_date asc").
		ToSql()
	if err != nil {
		return nil, err
	}
	bookings := make([]model.BookingShort, 0)
	if err := r.db.SelectContext(ctx, &bookings, q, args...); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) HasCompleted(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx,
		`select exists(select 1 from bookings where booker_id = $1 and item_id = $2 and end_date < $3)`,
		bookerID, itemID, now).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
