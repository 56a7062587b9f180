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

type Items interface {
	Create(ctx context.Context, item model.Item) (model.Item, error)
	Update(ctx context.Context, item model.Item) (model.Item, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (model.Item, error)
	ListByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]model.Item, error)
	ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]model.Item, error)
	Search(ctx context.Context, text string, offset, limit int) ([]model.Item, error)
	HasAnyByOwner(ctx context.Context, ownerID int64) (bool, error)
	CreateComment(ctx context.Context, comment model.Comment, authorID int64) (model.Comment, error)
	CommentsForItem(ctx context.Context, itemID int64) ([]model.Comment, error)
	CommentsForOwner(ctx context.Context, ownerID int64) ([]model.Comment, error)
}

type itemRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewItems(db *sqlx.DB, log *zap.Logger) *itemRepository {
	return &itemRepository{
		db:  db,
		log: log.Named("repo.items"),
	}
}

const itemColumns = "id, name, description, available, owner_id, request_id"

func (r *itemRepository) Create(ctx context.Context, item model.Item) (model.Item, error) {
	q, args, err := qb.Insert(itemsTable).
		Columns("name", "description", "available", "owner_id", "request_id").
		Values(item.Name, item.Description, item.Available, item.OwnerID, item.RequestID).
		Suffix("returning " + itemColumns).
		ToSql()
	if err != nil {
		return model.Item{}, err
	}
	var created model.Item
	if err := r.db.GetContext(ctx, &created, q, args...); err != nil {
		r.log.Error("Create", zap.String("q", q), zap.Any("args", args))
		return model.Item{}, err
	}
	return created, nil
}

func (r *itemRepository) Update(ctx context.Context, item model.Item) (model.Item, error) {
	q, args, err := qb.Update(itemsTable).
		Set("name", item.Name).
		Set("description", item.Description).
		Set("available", item.Available).
		Where(sq.Eq{"id": item.ID}).
		Suffix("returning " + itemColumns).
		ToSql()
	if err != nil {
		return model.Item{}, err
	}
	var updated model.Item
	if err := r.db.GetContext(ctx, &updated, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Item{}, errs.ErrItemNotFound
		}
		return model.Item{}, err
	}
	return updated, nil
}

func (r *itemRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `delete from items where id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errs.ErrItemNotFound
	}
	return nil
}

func (r *itemRepository) GetByID(ctx context.Context, id int64) (model.Item, error) {
	q, args, err := qb.Select(itemColumns).
		From(itemsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Item{}, err
	}
	var item model.Item
	if err := r.db.GetContext(ctx, &item, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Item{}, errs.ErrItemNotFound
		}
		return model.Item{}, err
	}
	return item, nil
}

func (r *itemRepository) ListByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]model.Item, error) {
	q, args, err := qb.Select(itemColumns).
		From(itemsTable).
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("id asc").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}
	items := make([]model.Item, 0)
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]model.Item, error) {
	if len(requestIDs) == 0 {
		return []model.Item{}, nil
	}
	q, args, err := qb.Select(itemColumns).
		From(itemsTable).
		Where(sq.Eq{"request_id": requestIDs}).
		OrderBy("id asc").
		ToSql()
	if err != nil {
		return nil, err
	}
	items := make([]model.Item, 0)
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, err
	}
	return items, nil
}

// Search matches the name or description case-insensitively; unavailable
// items never surface.
func (r *itemRepository) Search(ctx context.Context, text string, offset, limit int) ([]model.Item, error) {
	pattern := "%" + text + "%"
	q, args, err := qb.Select(itemColumns).
		From(itemsTable).
		Where(sq.Eq{"available": true}).
		Where(sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"description": pattern},
		}).
		OrderBy("id asc").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}
	items := make([]model.Item, 0)
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) HasAnyByOwner(ctx context.Context, ownerID int64) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx,
		`select exists(select 1 from items where owner_id = $1)`, ownerID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *itemRepository) CreateComment(ctx context.Context, comment model.Comment, authorID int64) (model.Comment, error) {
	q, args, err := qb.Insert(commentsTable).
		Columns("text", "item_id", "author_id", "created").
		Values(comment.Text, comment.ItemID, authorID, comment.Created).
		Suffix("returning id").
		ToSql()
	if err != nil {
		return model.Comment{}, err
	}
	if err := r.db.GetContext(ctx, &comment.ID, q, args...); err != nil {
		r.log.Error("CreateComment", zap.String("q", q), zap.Any("args", args))
		return model.Comment{}, err
	}
	return comment, nil
}

func selectComments() sq.SelectBuilder {
	return qb.Select("c.id", "c.text", "u.name as author_name", "c.created", "c.item_id").
		From(commentsTable + " c").
		Join(usersTable + " u on u.id = c.author_id")
}

func (r *itemRepository) CommentsForItem(ctx context.Context, itemID int64) ([]model.Comment, error) {
	q, args, err := selectComments().
		Where(sq.Eq{"c.item_id": itemID}).
		OrderBy("c.created asc").
		ToSql()
	if err != nil {
		return nil, err
	}
	comments := make([]model.Comment, 0)
	if err := r.db.SelectContext(ctx, &comments, q, args...); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *itemRepository) CommentsForOwner(ctx context.Context, ownerID int64) ([]model.Comment, error) {
	q, args, err := selectComments().
		Join(itemsTable + " i on i.id = c.item_id").
		Where(sq.Eq{"i.owner_id": ownerID}).
		OrderBy("c.created asc").
		ToSql()
	if err != nil {
		return nil, err
	}
	comments := make([]model.Comment, 0)
	if err := r.db.SelectContext(ctx, &comments, q, args...); err != nil {
		return nil, err
	}
	return comments, nil
}
