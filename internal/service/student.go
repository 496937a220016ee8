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

type Student struct {
	repo  repository.Repository
	media *media.Store
	base  string
	log   *zap.Logger
}

func NewStudent(repo repository.Repository, media *media.Store, baseURL string, log *zap.Logger) *Student {
	return &Student{
		repo:  repo,
		media: media,
		base:  baseURL,
		log:   log.Named("student"),
	}
}

func (s *Student) Create(ctx context.Context, req model.CreateStudentRequest, photo *media.Upload) (model.Student, error) {
	taken, err := s.repo.StudentEmailTaken(ctx, req.Email, 0)
	if err != nil {
		return model.Student{}, err
	}
	if taken {
		return model.Student{}, errors.Wrap(errs.ErrConflict, "email already registered")
	}

	st := model.Student{Name: req.Name, Email: req.Email}
	if photo != nil {
		// blob first: a failed row write leaves an orphaned blob, never a
		// row pointing at nothing
		name, err := s.media.Save(*photo)
		if err != nil {
			return model.Student{}, err
		}
		st.Photo = &name
	}

	created, err := s.repo.CreateStudent(ctx, st)
	if err != nil {
		return model.Student{}, err
	}
	return resolveStudent(s.base, created), nil
}

func (s *Student) List(ctx context.Context) ([]model.Student, error) {
	items, err := s.repo.ListStudents(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i] = resolveStudent(s.base, items[i])
	}
	return items, nil
}

func (s *Student) Get(ctx context.Context, id int) (model.Student, error) {
	st, err := s.repo.GetStudent(ctx, id)
	if err != nil {
		return model.Student{}, err
	}
	return resolveStudent(s.base, st), nil
}

func (s *Student) Update(ctx context.Context, id int, req model.UpdateStudentRequest, photo *media.Upload) (model.Student, error) {
	st, err := s.repo.GetStudent(ctx, id)
	if err != nil {
		return model.Student{}, err
	}

	if req.Email != "" {
		taken, err := s.repo.StudentEmailTaken(ctx, req.Email, id)
		if err != nil {
			return model.Student{}, err
		}
		if taken {
			return model.Student{}, errors.Wrap(errs.ErrConflict, "email already in use")
		}
		st.Email = req.Email
	}
	if req.Name != "" {
		st.Name = req.Name
	}
	if photo != nil {
		name, err := s.media.Save(*photo)
		if err != nil {
			return model.Student{}, err
		}
		if st.Photo != nil {
			if err := s.media.Delete(*st.Photo); err != nil {
				s.log.Warn("delete old photo", zap.String("photo", *st.Photo), zap.Error(err))
			}
		}
		st.Photo = &name
	}

	updated, err := s.repo.UpdateStudent(ctx, st)
	if err != nil {
		return model.Student{}, err
	}
	return resolveStudent(s.base, updated), nil
}

func (s *Student) Delete(ctx context.Context, id int) error {
	st, err := s.repo.GetStudent(ctx, id)
	if err != nil {
		return err
	}
	active, err := s.repo.HasActiveOrderForStudent(ctx, id)
	if err != nil {
		return err
	}
	if active {
		return errors.Wrap(errs.ErrConflict, "cannot delete student with active order")
	}
	if st.Photo != nil {
		if err := s.media.Delete(*st.Photo); err != nil {
			s.log.Warn("delete photo", zap.String("photo", *st.Photo), zap.Error(err))
		}
	}
	return s.repo.DeleteStudent(ctx, id)
}

// PhotoPath resolves a stored photo filename to its on-disk location.
func (s *Student) PhotoPath(filename string) (string, error) {
	return s.media.Path(filename)
}
