package uploadsvc

import (
	"context"
	"mime/multipart"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/sir_venger/upload_lite/internal/logging"
	"github.com/sir_venger/upload_lite/internal/models"
)

type (
	// PartReader отдаёт части multipart-тела по одной; *multipart.Reader подходит как есть.
	PartReader interface {
		NextPart() (*multipart.Part, error)
	}

	// Service сохраняет файлы из multipart-запроса в каталог загрузок.
	Service interface {
		Store(ctx context.Context, parts PartReader) (models.UploadResult, error)
		Dir() string
		FS() afero.Fs
	}
)

type Deps struct {
	Fs        afero.Fs
	UploadDir string
	// Lenient сохраняет старое поведение: ошибка чтения потока трактуется как конец тела.
	Lenient bool
	// KeepPartial оставляет на диске недописанный файл после ошибки.
	KeepPartial bool
	Logger      *log.Logger
}

type Uploads struct {
	Deps
}

// New конструирует сервис загрузки с заданными зависимостями.
func New(deps Deps) *Uploads {
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}
	if deps.Logger == nil {
		deps.Logger = logging.Discard()
	}
	return &Uploads{Deps: deps}
}

var _ Service = (*Uploads)(nil)

// Dir возвращает каталог загрузок.
func (s *Uploads) Dir() string {
	return s.UploadDir
}

// FS возвращает файловую систему, поверх которой работает сервис.
func (s *Uploads) FS() afero.Fs {
	return s.Fs
}
