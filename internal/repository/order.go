package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Astemirdum/library-rental/internal/errs"
	"github.com/Astemirdum/library-rental/internal/model"
	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const orderColumns = `o.id, o.student_id, o.book_id, o.rent_per_day, o.rented_date, o.return_date, o.total_days, o.total_rent,
	s.id as "student.id", s.name as "student.name", s.email as "student.email", s.photo as "student.photo",
	b.id as "book.id", b.title as "book.title", b.author as "book.author", b.cover_image as "book.cover_image"`

func orderQuery(where string) string {
	return fmt.Sprintf(`select %s
	from orders o
	join student s on s.id = o.student_id
	join book b on b.id = o.book_id
	%s
	order by o.id`, orderColumns, where)
}

func (r *repository) CreateOrder(ctx context.Context, o model.Order) (model.Order, error) {
	q, args, err := qb.Insert(orderTableName).
		Columns("student_id", "book_id", "rent_per_day", "rented_date", "total_days", "total_rent").
		Values(o.StudentID, o.BookID, o.RentPerDay, o.RentedDate, o.TotalDays, o.TotalRent).
		Suffix("returning id").
		ToSql()
	if err != nil {
		return model.Order{}, err
	}
	var id int
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&id); err != nil {
		// the partial unique index catches a raced create for the same book
		if isUniqueViolation(err) {
			return model.Order{}, errors.Wrap(errs.ErrConflict, "book is already rented")
		}
		r.log.Error("CreateOrder", zap.String("q", q), zap.Error(err))
		return model.Order{}, err
	}
	return r.GetOrder(ctx, id)
}

func (r *repository) ListOrders(ctx context.Context) ([]model.Order, error) {
	items := make([]model.Order, 0)
	if err := r.db.SelectContext(ctx, &items, orderQuery("")); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) GetOrder(ctx context.Context, id int) (model.Order, error) {
	var o model.Order
	if err := r.db.GetContext(ctx, &o, orderQuery("where o.id = $1"), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Order{}, errors.Wrap(errs.ErrNotFound, "order")
		}
		return model.Order{}, err
	}
	return o, nil
}

func (r *repository) UpdateOrder(ctx context.Context, id, studentID, bookID int) (model.Order, error) {
	q, args, err := qb.Update(orderTableName).
		Set("student_id", studentID).
		Set("book_id", bookID).
		Where(sq.Eq{"id": id}).
		Suffix("returning id").
		ToSql()
	if err != nil {
		return model.Order{}, err
	}
	var updatedID int
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&updatedID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Order{}, errors.Wrap(errs.ErrNotFound, "order")
		}
		if isUniqueViolation(err) {
			return model.Order{}, errors.Wrap(errs.ErrConflict, "book is already rented")
		}
		return model.Order{}, err
	}
	return r.GetOrder(ctx, updatedID)
}

func (r *repository) ReturnOrder(ctx context.Context, id int, returnDate model.Date, totalDays, totalRent int) (model.Order, error) {
	q := `update orders set return_date = $2, total_days = $3, total_rent = $4
	where id = $1 and return_date is null
	returning id`

	var returnedID int
	err := r.db.QueryRowContext(ctx, q, id, returnDate, totalDays, totalRent).Scan(&returnedID)
	if err != nil {
		// the order exists, so an empty update means it was already closed
		if errors.Is(err, sql.ErrNoRows) {
			return model.Order{}, errors.Wrap(errs.ErrConflict, "book already returned")
		}
		return model.Order{}, err
	}
	return r.GetOrder(ctx, returnedID)
}

func (r *repository) DeleteOrder(ctx context.Context, id int) error {
	q, args, err := qb.Delete(orderTableName).
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
		return errors.Wrap(errs.ErrNotFound, "order")
	}
	return nil
}

func (r *repository) HasActiveOrderForBook(ctx context.Context, bookID, excludeOrderID int) (bool, error) {
	q := `select exists(select 1 from orders where book_id = $1 and id <> $2 and return_date is null)`
	var active bool
	if err := r.db.QueryRowContext(ctx, q, bookID, excludeOrderID).Scan(&active); err != nil {
		return false, err
	}
	return active, nil
}

func (r *repository) HasActiveOrderForStudent(ctx context.Context, studentID int) (bool, error) {
	q := `select exists(select 1 from orders where student_id = $1 and return_date is null)`
	var active bool
	if err := r.db.QueryRowContext(ctx, q, studentID).Scan(&active); err != nil {
		return false, err
	}
	return active, nil
}
