package repository

import (
	"context"
	"database/sql"

	"github.com/Astemirdum/library-rental/internal/errs"
	"github.com/Astemirdum/library-rental/internal/model"
	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func (r *repository) CreateBook(ctx context.Context, b model.Book) (model.Book, error) {
	q, args, err := qb.Insert(bookTableName).
		Columns("title", "author", "cover_image").
		Values(b.Title, b.Author, b.CoverImage).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Book{}, err
	}
	var created model.Book
	if err := r.db.GetContext(ctx, &created, q, args...); err != nil {
		if isUniqueViolation(err) {
			return model.Book{}, errors.Wrap(errs.ErrConflict, "book already exists")
		}
		r.log.Error("CreateBook", zap.String("q", q), zap.Error(err))
		return model.Book{}, err
	}
	return created, nil
}

func (r *repository) ListBooks(ctx context.Context) ([]model.Book, error) {
	q, _, err := qb.Select("id", "title", "author", "cover_image").
		From(bookTableName).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}
	items := make([]model.Book, 0)
	if err := r.db.SelectContext(ctx, &items, q); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) GetBook(ctx context.Context, id int) (model.Book, error) {
	q, args, err := qb.Select("id", "title", "author", "cover_image").
		From(bookTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}
	var b model.Book
	if err := r.db.GetContext(ctx, &b, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errors.Wrap(errs.ErrNotFound, "book")
		}
		return model.Book{}, err
	}
	return b, nil
}

func (r *repository) UpdateBook(ctx context.Context, b model.Book) (model.Book, error) {
	q, args, err := qb.Update(bookTableName).
		Set("title", b.Title).
		Set("author", b.Author).
		Set("cover_image", b.CoverImage).
		Where(sq.Eq{"id": b.ID}).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Book{}, err
	}
	var updated model.Book
	if err := r.db.GetContext(ctx, &updated, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errors.Wrap(errs.ErrNotFound, "book")
		}
		if isUniqueViolation(err) {
			return model.Book{}, errors.Wrap(errs.ErrConflict, "title already in use")
		}
		return model.Book{}, err
	}
	return updated, nil
}

func (r *repository) DeleteBook(ctx context.Context, id int) error {
	q, args, err := qb.Delete(bookTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.Wrap(errs.ErrNotFound, "book")
	}
	return nil
}

func (r *repository) BookTitleTaken(ctx context.Context, title string, excludeID int) (bool, error) {
	q := `select exists(select 1 from book where title = $1 and id <> $2)`
	var taken bool
	if err := r.db.QueryRowContext(ctx, q, title, excludeID).Scan(&taken); err != nil {
		return false, err
	}
	return taken, nil
}
