package media

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Astemirdum/library-rental/internal/errs"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type Config struct {
	BaseDir string `envconfig:"MEDIA_DIR" default:"uploads"`
}

// Upload is an image received from a client. Content is closed by the caller.
type Upload struct {
	Filename string
	Content  io.Reader
}

var allowedExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// Store keeps uploaded images on disk under a single directory,
// addressed by generated opaque filenames.
type Store struct {
	dir string
}

func NewStore(baseDir, kind string) (*Store, error) {
	dir := filepath.Join(baseDir, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create media dir")
	}
	return &Store{dir: dir}, nil
}

// Save writes the upload under a fresh opaque name and returns that name.
func (s *Store) Save(up Upload) (string, error) {
	ext := strings.ToLower(filepath.Ext(up.Filename))
	if _, ok := allowedExts[ext]; !ok {
		return "", errors.Wrapf(errs.ErrInvalidInput, "unsupported file type %q", ext)
	}
	name := strings.ReplaceAll(uuid.NewString(), "-", "") + ext

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", errors.Wrap(err, "create blob")
	}
	defer f.Close()
	if _, err := io.Copy(f, up.Content); err != nil {
		return "", errors.Wrap(err, "write blob")
	}
	return name, nil
}

// Path resolves a stored filename to its on-disk location.
func (s *Store) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", errors.Wrap(errs.ErrNotFound, "blob")
	}
	path := filepath.Join(s.dir, name)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrap(errs.ErrNotFound, "blob")
		}
		return "", errors.Wrap(err, "stat blob")
	}
	return path, nil
}

// Delete removes a stored blob. A missing blob is not an error.
func (s *Store) Delete(name string) error {
	if name == "" || name != filepath.Base(name) {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "remove blob")
	}
	return nil
}
