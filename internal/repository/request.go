package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/pkrylov/shareit-service/internal/errs"
	"github.com/pkrylov/shareit-service/internal/model"
)

type Requests interface {
	Create(ctx context.Context, request model.ItemRequest) (model.ItemRequest, error)
	GetByID(ctx context.Context, id int64) (model.ItemRequest, error)
	ListByRequester(ctx context.Context, requesterID int64, offset, limit int) ([]model.ItemRequest, error)
	ListOthers(ctx context.Context, requesterID int64, offset, limit int) ([]model.ItemRequest, error)
}

type requestRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRequests(db *sqlx.DB, log *zap.Logger) *requestRepository {
	return &requestRepository{
		db:  db,
		log: log.Named("repo.requests"),
	}
}

const requestColumns = "id, description, requester_id, created"

func (r *requestRepository) Create(ctx context.Context, request model.ItemRequest) (model.ItemRequest, error) {
	q, args, err := qb.Insert(requestsTable).
		Columns("description", "requester_id", "created").
		Values(request.Description, request.RequesterID, request.Created).
		Suffix("returning " + requestColumns).
		ToSql()
	if err != nil {
		return model.ItemRequest{}, err
	}
	var created model.ItemRequest
	if err := r.db.GetContext(ctx, &created, q, args...); err != nil {
		r.log.Error("Create", zap.String("q", q), zap.Any("args", args))
		return model.ItemRequest{}, err
	}
	return created, nil
}

func (r *requestRepository) GetByID(ctx context.Context, id int64) (model.ItemRequest, error) {
	q, args, err := qb.Select(requestColumns).
		From(requestsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.ItemRequest{}, err
	}
	var request model.ItemRequest
	if err := r.db.GetContext(ctx, &request, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ItemRequest{}, errs.ErrRequestNotFound
		}
		return model.ItemRequest{}, err
	}
	return request, nil
}

func (r *requestRepository) ListByRequester(ctx context.Context, requesterID int64, offset, limit int) ([]model.ItemRequest, error) {
	return r.list(ctx, sq.Eq{"requester_id": requesterID}, offset, limit)
}

func (r *requestRepository) ListOthers(ctx context.Context, requesterID int64, offset, limit int) ([]model.ItemRequest, error) {
	return r.list(ctx, sq.NotEq{"requester_id": requesterID}, offset, limit)
}

func (r *requestRepository) list(ctx context.Context, cond sq.Sqlizer, offset, limit int) ([]model.ItemRequest, error) {
	q, args, err := qb.Select(requestColumns).
		From(requestsTable).
		Where(cond).
		OrderBy("created desc").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}
	requests := make([]model.ItemRequest, 0)
	if err := r.db.SelectContext(ctx, &requests, q, args...); err != nil {
		return nil, err
	}
	return requests, nil
}
