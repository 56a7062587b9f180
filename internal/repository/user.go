package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/pkrylov/shareit-service/internal/errs"
	"github.com/pkrylov/shareit-service/internal/model"
)

type Users interface {
	Create(ctx context.Context, name, email string) (model.User, error)
	Update(ctx context.Context, user model.User) (model.User, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type userRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewUsers(db *sqlx.DB, log *zap.Logger) *userRepository {
	return &userRepository{
		db:  db,
		log: log.Named("repo.users"),
	}
}

func (r *userRepository) Create(ctx context.Context, name, email string) (model.User, error) {
	q, args, err := qb.Insert(usersTable).
		Columns("name", "email").
		Values(name, email).
		Suffix("returning id, name, email").
		ToSql()
	if err != nil {
		return model.User{}, err
	}
	var user model.User
	if err := r.db.GetContext(ctx, &user, q, args...); err != nil {
		return model.User{}, mapEmailConflict(err)
	}
	return user, nil
}

func (r *userRepository) Update(ctx context.Context, user model.User) (model.User, error) {
	q, args, err := qb.Update(usersTable).
		Set("name", user.Name).
		Set("email", user.Email).
		Where(sq.Eq{"id": user.ID}).
		Suffix("returning id, name, email").
		ToSql()
	if err != nil {
		return model.User{}, err
	}
	var updated model.User
	if err := r.db.GetContext(ctx, &updated, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, errs.ErrUserNotFound
		}
		return model.User{}, mapEmailConflict(err)
	}
	return updated, nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `delete from users where id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errs.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (model.User, error) {
	q, args, err := qb.Select("id", "name", "email").
		From(usersTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.User{}, err
	}
	var user model.User
	if err := r.db.GetContext(ctx, &user, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, errs.ErrUserNotFound
		}
		return model.User{}, err
	}
	return user, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	q, args, err := qb.Select("id", "name", "email").
		From(usersTable).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}
	users := make([]model.User, 0)
	if err := r.db.SelectContext(ctx, &users, q, args...); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx,
		`select exists(select 1 from users where id = $1)`, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// mapEmailConflict turns a unique violation on users.email into the
// duplicate-email error the transport layer answers 409 with.
func mapEmailConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return errs.ErrEmailUsed
	}
	return err
}
