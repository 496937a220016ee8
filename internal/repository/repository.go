package repository

import (
	"context"

	"github.com/Astemirdum/library-rental/internal/model"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

//go:generate go run github.com/golang/mock/mockgen -source=repository.go -destination=mocks/mock.go

type Repository interface {
	CreateStudent(ctx context.Context, st model.Student) (model.Student, error)
	ListStudents(ctx context.Context) ([]model.Student, error)
	GetStudent(ctx context.Context, id int) (model.Student, error)
	UpdateStudent(ctx context.Context, st model.Student) (model.Student, error)
	DeleteStudent(ctx context.Context, id int) error
	StudentEmailTaken(ctx context.Context, email string, excludeID int) (bool, error)

	CreateBook(ctx context.Context, b model.Book) (model.Book, error)
	ListBooks(ctx context.Context) ([]model.Book, error)
	GetBook(ctx context.Context, id int) (model.Book, error)
	UpdateBook(ctx context.Context, b model.Book) (model.Book, error)
	DeleteBook(ctx context.Context, id int) error
	BookTitleTaken(ctx context.Context, title string, excludeID int) (bool, error)

	CreateOrder(ctx context.Context, o model.Order) (model.Order, error)
	ListOrders(ctx context.Context) ([]model.Order, error)
	GetOrder(ctx context.Context, id int) (model.Order, error)
	UpdateOrder(ctx context.Context, id, studentID, bookID int) (model.Order, error)
	ReturnOrder(ctx context.Context, id int, returnDate model.Date, totalDays, totalRent int) (model.Order, error)
	DeleteOrder(ctx context.Context, id int) error
	HasActiveOrderForBook(ctx context.Context, bookID, excludeOrderID int) (bool, error)
	HasActiveOrderForStudent(ctx context.Context, studentID int) (bool, error)
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	studentTableName = `student`
	bookTableName    = `book`
	orderTableName   = `orders`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
