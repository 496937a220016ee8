package service

import (
	"context"
	"time"

	"github.com/Astemirdum/library-rental/internal/errs"
	"github.com/Astemirdum/library-rental/internal/model"
	"github.com/Astemirdum/library-rental/internal/repository"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultRentPerDay is the standing per-day rate, applied uniformly and
// fixed on each order at creation time.
const DefaultRentPerDay = 10

type Rental struct {
	repo repository.Repository
	base string
	log  *zap.Logger
	now  func() time.Time
}

func NewRental(repo repository.Repository, baseURL string, log *zap.Logger) *Rental {
	return &Rental{
		repo: repo,
		base: baseURL,
		log:  log.Named("rental"),
		now:  time.Now,
	}
}

func (s *Rental) CreateOrder(ctx context.Context, req model.CreateOrderRequest) (model.Order, error) {
	gg, gCtx := errgroup.WithContext(ctx)
	gg.Go(func() error {
		_, err := s.repo.GetStudent(gCtx, req.StudentID)
		return err
	})
	gg.Go(func() error {
		_, err := s.repo.GetBook(gCtx, req.BookID)
		return err
	})
	if err := gg.Wait(); err != nil {
		return model.Order{}, err
	}

	rented, err := s.repo.HasActiveOrderForBook(ctx, req.BookID, 0)
	if err != nil {
		return model.Order{}, err
	}
	if rented {
		return model.Order{}, errors.Wrap(errs.ErrConflict, "book is already rented")
	}

	o := model.Order{
		StudentID:  req.StudentID,
		BookID:     req.BookID,
		RentPerDay: DefaultRentPerDay,
		RentedDate: model.NewDate(s.now()),
		TotalDays:  1,
		TotalRent:  DefaultRentPerDay,
	}
	created, err := s.repo.CreateOrder(ctx, o)
	if err != nil {
		return model.Order{}, err
	}
	return resolveOrder(s.base, created), nil
}

func (s *Rental) ReturnOrder(ctx context.Context, id int) (model.Order, error) {
	o, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return model.Order{}, err
	}
	if o.Returned() {
		return model.Order{}, errors.Wrap(errs.ErrConflict, "book already returned")
	}

	// both the rental day and the return day are charged
	returnDate := model.NewDate(s.now())
	totalDays := o.RentedDate.DaysUntil(returnDate) + 1
	returned, err := s.repo.ReturnOrder(ctx, id, returnDate, totalDays, totalDays*o.RentPerDay)
	if err != nil {
		return model.Order{}, err
	}
	return resolveOrder(s.base, returned), nil
}

func (s *Rental) UpdateOrder(ctx context.Context, id int, req model.UpdateOrderRequest) (model.Order, error) {
	o, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return model.Order{}, err
	}
	if _, err := s.repo.GetStudent(ctx, req.StudentID); err != nil {
		return model.Order{}, err
	}
	if _, err := s.repo.GetBook(ctx, req.BookID); err != nil {
		return model.Order{}, err
	}
	if req.BookID != o.BookID {
		rented, err := s.repo.HasActiveOrderForBook(ctx, req.BookID, id)
		if err != nil {
			return model.Order{}, err
		}
		if rented {
			return model.Order{}, errors.Wrap(errs.ErrConflict, "book is already rented")
		}
	}

	updated, err := s.repo.UpdateOrder(ctx, id, req.StudentID, req.BookID)
	if err != nil {
		return model.Order{}, err
	}
	return resolveOrder(s.base, updated), nil
}

// DeleteOrder removes an order unconditionally; active orders are not
// guarded, unlike student and book deletion.
func (s *Rental) DeleteOrder(ctx context.Context, id int) error {
	return s.repo.DeleteOrder(ctx, id)
}

func (s *Rental) ListOrders(ctx context.Context) ([]model.Order, error) {
	items, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i] = resolveOrder(s.base, items[i])
	}
	return items, nil
}

func (s *Rental) GetOrder(ctx context.Context, id int) (model.Order, error) {
	o, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return model.Order{}, err
	}
	return resolveOrder(s.base, o), nil
}
