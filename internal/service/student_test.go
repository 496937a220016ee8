package service

import (
	"context"
	"strings"
	"testing"

	"github.com/Astemirdum/library-rental/internal/errs"
	"github.com/Astemirdum/library-rental/internal/media"
	"github.com/Astemirdum/library-rental/internal/model"
	mock_repository "github.com/Astemirdum/library-rental/internal/repository/mocks"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStudent(t *testing.T, repo *mock_repository.MockRepository) *Student {
	t.Helper()
	store, err := media.NewStore(t.TempDir(), "students")
	require.NoError(t, err)
	return NewStudent(repo, store, testBaseURL, zap.NewExample().Named("test"))
}

func TestStudent_Create(t *testing.T) {
	t.Parallel()

	t.Run("duplicate email conflicts", func(t *testing.T) {
		t.Parallel()
		c := gomock.NewController(t)
		defer c.Finish()
		repo := mock_repository.NewMockRepository(c)
		svc := newTestStudent(t, repo)

		repo.EXPECT().StudentEmailTaken(gomock.Any(), "al@x.com", 0).Return(true, nil)

		_, err := svc.Create(context.Background(), model.CreateStudentRequest{Name: "Al", Email: "al@x.com"}, nil)
		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("ok with photo", func(t *testing.T) {
		t.Parallel()
		c := gomock.NewController(t)
		defer c.Finish()
		repo := mock_repository.NewMockRepository(c)
		svc := newTestStudent(t, repo)

		repo.EXPECT().StudentEmailTaken(gomock.Any(), "al@x.com", 0).Return(false, nil)
		repo.EXPECT().CreateStudent(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, st model.Student) (model.Student, error) {
				require.NotNil(t, st.Photo)
				require.True(t, strings.HasSuffix(*st.Photo, ".png"))
				st.ID = 1
				return st, nil
			})

		got, err := svc.Create(context.Background(),
			model.CreateStudentRequest{Name: "Al", Email: "al@x.com"},
			&media.Upload{Filename: "me.png", Content: strings.NewReader("img")})
		require.NoError(t, err)
		require.Equal(t, 1, got.ID)
		require.NotNil(t, got.Photo)
		require.True(t, strings.HasPrefix(*got.Photo, testBaseURL+"/api/v1/students/photo/"))
	})

	t.Run("bad upload extension", func(t *testing.T) {
		t.Parallel()
		c := gomock.NewController(t)
		defer c.Finish()
		repo := mock_repository.NewMockRepository(c)
		svc := newTestStudent(t, repo)

		repo.EXPECT().StudentEmailTaken(gomock.Any(), "al@x.com", 0).Return(false, nil)

		_, err := svc.Create(context.Background(),
			model.CreateStudentRequest{Name: "Al", Email: "al@x.com"},
			&media.Upload{Filename: "me.gif", Content: strings.NewReader("img")})
		require.ErrorIs(t, err, errs.ErrInvalidInput)
	})
}

func TestStudent_Update(t *testing.T) {
	t.Parallel()

	existing := model.Student{ID: 1, Name: "Al", Email: "al@x.com"}

	t.Run("email taken by another student", func(t *testing.T) {
		t.Parallel()
		c := gomock.NewController(t)
		defer c.Finish()
		repo := mock_repository.NewMockRepository(c)
		svc := newTestStudent(t, repo)

		repo.EXPECT().GetStudent(gomock.Any(), 1).Return(existing, nil)
		repo.EXPECT().StudentEmailTaken(gomock.Any(), "bo@x.com", 1).Return(true, nil)

		_, err := svc.Update(context.Background(), 1, model.UpdateStudentRequest{Email: "bo@x.com"}, nil)
		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("own email is not a conflict", func(t *testing.T) {
		t.Parallel()
		c := gomock.NewController(t)
		defer c.Finish()
		repo := mock_repository.NewMockRepository(c)
		svc := newTestStudent(t, repo)

		repo.EXPECT().GetStudent(gomock.Any(), 1).Return(existing, nil)
		repo.EXPECT().StudentEmailTaken(gomock.Any(), "al@x.com", 1).Return(false, nil)
		repo.EXPECT().UpdateStudent(gomock.Any(), existing).Return(existing, nil)

		got, err := svc.Update(context.Background(), 1, model.UpdateStudentRequest{Email: "al@x.com"}, nil)
		require.NoError(t, err)
		require.Equal(t, "al@x.com", got.Email)
	})

	t.Run("partial update keeps missing fields", func(t *testing.T) {
		t.Parallel()
		c := gomock.NewController(t)
		defer c.Finish()
		repo := mock_repository.NewMockRepository(c)
		svc := newTestStudent(t, repo)

		renamed := existing
		renamed.Name = "Bob"

		repo.EXPECT().GetStudent(gomock.Any(), 1).Return(existing, nil)
		repo.EXPECT().UpdateStudent(gomock.Any(), renamed).Return(renamed, nil)

		got, err := svc.Update(context.Background(), 1, model.UpdateStudentRequest{Name: "Bob"}, nil)
		require.NoError(t, err)
		require.Equal(t, "Bob", got.Name)
		require.Equal(t, "al@x.com", got.Email)
	})
}

func TestStudent_Delete(t *testing.T) {
	t.Parallel()

	existing := model.Student{ID: 1, Name: "Al", Email: "al@x.com"}

	t.Run("active order blocks deletion", func(t *testing.T) {
		t.Parallel()
		c := gomock.NewController(t)
		defer c.Finish()
		repo := mock_repository.NewMockRepository(c)
		svc := newTestStudent(t, repo)

		repo.EXPECT().GetStudent(gomock.Any(), 1).Return(existing, nil)
		repo.EXPECT().HasActiveOrderForStudent(gomock.Any(), 1).Return(true, nil)

		require.ErrorIs(t, svc.Delete(context.Background(), 1), errs.ErrConflict)
	})

	t.Run("deletes after return", func(t *testing.T) {
		t.Parallel()
		c := gomock.NewController(t)
		defer c.Finish()
		repo := mock_repository.NewMockRepository(c)
		svc := newTestStudent(t, repo)

		repo.EXPECT().GetStudent(gomock.Any(), 1).Return(existing, nil)
		repo.EXPECT().HasActiveOrderForStudent(gomock.Any(), 1).Return(false, nil)
		repo.EXPECT().DeleteStudent(gomock.Any(), 1).Return(nil)

		require.NoError(t, svc.Delete(context.Background(), 1))
	})
}
