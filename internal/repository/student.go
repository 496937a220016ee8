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

func (r *repository) CreateStudent(ctx context.Context, st model.Student) (model.Student, error) {
	q, args, err := qb.Insert(studentTableName).
		Columns("name", "email", "photo").
		Values(st.Name, st.Email, st.Photo).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Student{}, err
	}
	var created model.Student
	if err := r.db.GetContext(ctx, &created, q, args...); err != nil {
		if isUniqueViolation(err) {
			return model.Student{}, errors.Wrap(errs.ErrConflict, "email already registered")
		}
		r.log.Error("CreateStudent", zap.String("q", q), zap.Error(err))
		return model.Student{}, err
	}
	return created, nil
}

func (r *repository) ListStudents(ctx context.Context) ([]model.Student, error) {
	q, _, err := qb.Select("id", "name", "email", "photo").
		From(studentTableName).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}
	items := make([]model.Student, 0)
	if err := r.db.SelectContext(ctx, &items, q); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) GetStudent(ctx context.Context, id int) (model.Student, error) {
	q, args, err := qb.Select("id", "name", "email", "photo").
		From(studentTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Student{}, err
	}
	var st model.Student
	if err := r.db.GetContext(ctx, &st, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Student{}, errors.Wrap(errs.ErrNotFound, "student")
		}
		return model.Student{}, err
	}
	return st, nil
}

func (r *repository) UpdateStudent(ctx context.Context, st model.Student) (model.Student, error) {
	q, args, err := qb.Update(studentTableName).
		Set("name", st.Name).
		Set("email", st.Email).
		Set("photo", st.Photo).
		Where(sq.Eq{"id": st.ID}).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Student{}, err
	}
	var updated model.Student
	if err := r.db.GetContext(ctx, &updated, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Student{}, errors.Wrap(errs.ErrNotFound, "student")
		}
		if isUniqueViolation(err) {
			return model.Student{}, errors.Wrap(errs.ErrConflict, "email already in use")
		}
		return model.Student{}, err
	}
	return updated, nil
}

func (r *repository) DeleteStudent(ctx context.Context, id int) error {
	q, args, err := qb.Delete(studentTableName).
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
		return errors.Wrap(errs.ErrNotFound, "student")
	}
	return nil
}

func (r *repository) StudentEmailTaken(ctx context.Context, email string, excludeID int) (bool, error) {
	q := `select exists(select 1 from student where email = $1 and id <> $2)`
	var taken bool
	if err := r.db.QueryRowContext(ctx, q, email, excludeID).Scan(&taken); err != nil {
		return false, err
	}
	return taken, nil
}
