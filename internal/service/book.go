package service

import (
	"context"

	"github.com/Astemirdum/library-rental/internal/errs"
	"github.com/Astemirdum/library-rental/internal/media"
	"github.com/Astemirdum/library-rental/internal/model"
	"github.com/Astemirdum/library-rental/internal/repository"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Book struct {
	repo  repository.Repository
	media *media.Store
	base  string
	log   *zap.Logger
}

func NewBook(repo repository.Repository, media *media.Store, baseURL string, log *zap.Logger) *Book {
	return &Book{
		repo:  repo,
		media: media,
		base:  baseURL,
		log:   log.Named("book"),
	}
}

func (s *Book) Create(ctx context.Context, req model.CreateBookRequest, cover *media.Upload) (model.Book, error) {
	taken, err := s.repo.BookTitleTaken(ctx, req.Title, 0)
	if err != nil {
		return model.Book{}, err
	}
	if taken {
		return model.Book{}, errors.Wrap(errs.ErrConflict, "book already exists")
	}

	b := model.Book{Title: req.Title, Author: req.Author}
	if cover != nil {
		name, err := s.media.Save(*cover)
		if err != nil {
			return model.Book{}, err
		}
		b.CoverImage = &name
	}

	created, err := s.repo.CreateBook(ctx, b)
	if err != nil {
		return model.Book{}, err
	}
	return resolveBook(s.base, created), nil
}

func (s *Book) List(ctx context.Context) ([]model.Book, error) {
	items, err := s.repo.ListBooks(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i] = resolveBook(s.base, items[i])
	}
	return items, nil
}

func (s *Book) Get(ctx context.Context, id int) (model.Book, error) {
	b, err := s.repo.GetBook(ctx, id)
	if err != nil {
		return model.Book{}, err
	}
	return resolveBook(s.base, b), nil
}

func (s *Book) Update(ctx context.Context, id int, req model.UpdateBookRequest, cover *media.Upload) (model.Book, error) {
	b, err := s.repo.GetBook(ctx, id)
	if err != nil {
		return model.Book{}, err
	}

	if req.Title != "" {
		taken, err := s.repo.BookTitleTaken(ctx, req.Title, id)
		if err != nil {
			return model.Book{}, err
		}
		if taken {
			return model.Book{}, errors.Wrap(errs.ErrConflict, "title already in use")
		}
		b.Title = req.Title
	}
	if req.Author != "" {
		b.Author = req.Author
	}
	if cover != nil {
		name, err := s.media.Save(*cover)
		if err != nil {
			return model.Book{}, err
		}
		if b.CoverImage != nil {
			if err := s.media.Delete(*b.CoverImage); err != nil {
				s.log.Warn("delete old cover", zap.String("cover", *b.CoverImage), zap.Error(err))
			}
		}
		b.CoverImage = &name
	}

	updated, err := s.repo.UpdateBook(ctx, b)
	if err != nil {
		return model.Book{}, err
	}
	return resolveBook(s.base, updated), nil
}

func (s *Book) Delete(ctx context.Context, id int) error {
	b, err := s.repo.GetBook(ctx, id)
	if err != nil {
		return err
	}
	active, err := s.repo.HasActiveOrderForBook(ctx, id, 0)
	if err != nil {
		return err
	}
	if active {
		return errors.Wrap(errs.ErrConflict, "cannot delete book that is currently rented")
	}
	if b.CoverImage != nil {
		if err := s.media.Delete(*b.CoverImage); err != nil {
			s.log.Warn("delete cover", zap.String("cover", *b.CoverImage), zap.Error(err))
		}
	}
	return s.repo.DeleteBook(ctx, id)
}

// CoverPath resolves a stored cover filename to its on-disk location.
func (s *Book) CoverPath(filename string) (string, error) {
	return s.media.Path(filename)
}
