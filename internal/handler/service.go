package handler

import (
	"context"

	"github.com/Astemirdum/library-rental/internal/media"
	"github.com/Astemirdum/library-rental/internal/model"
	"github.com/Astemirdum/library-rental/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type StudentService interface {
	Create(ctx context.Context, req model.CreateStudentRequest, photo *media.Upload) (model.Student, error)
	List(ctx context.Context) ([]model.Student, error)
	Get(ctx context.Context, id int) (model.Student, error)
	Update(ctx context.Context, id int, req model.UpdateStudentRequest, photo *media.Upload) (model.Student, error)
	Delete(ctx context.Context, id int) error
	PhotoPath(filename string) (string, error)
}

type BookService interface {
	Create(ctx context.Context, req model.CreateBookRequest, cover *media.Upload) (model.Book, error)
	List(ctx context.Context) ([]model.Book, error)
	Get(ctx context.Context, id int) (model.Book, error)
	Update(ctx context.Context, id int, req model.UpdateBookRequest, cover *media.Upload) (model.Book, error)
	Delete(ctx context.Context, id int) error
	CoverPath(filename string) (string, error)
}

type RentalService interface {
	CreateOrder(ctx context.Context, req model.CreateOrderRequest) (model.Order, error)
	ReturnOrder(ctx context.Context, id int) (model.Order, error)
	UpdateOrder(ctx context.Context, id int, req model.UpdateOrderRequest) (model.Order, error)
	DeleteOrder(ctx context.Context, id int) error
	ListOrders(ctx context.Context) ([]model.Order, error)
	GetOrder(ctx context.Context, id int) (model.Order, error)
}

var (
	_ StudentService = (*service.Student)(nil)
	_ BookService    = (*service.Book)(nil)
	_ RentalService  = (*service.Rental)(nil)
)
