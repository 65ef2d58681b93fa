package uploadsvc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"

	"github.com/sir_venger/upload_lite/internal/logging"
	"github.com/sir_venger/upload_lite/internal/models"
	"github.com/sir_venger/upload_lite/pkg/filename"
)

// Store проходит по частям тела по порядку и пишет каждую часть с именем файла в каталог загрузок.
// Первая ошибка каталога, создания или записи файла прерывает обработку; уже записанные файлы остаются.
func (s *Uploads) Store(ctx context.Context, parts PartReader) (models.UploadResult, error) {
	var res models.UploadResult
	lg := logging.From(ctx, s.Logger)

	if err := s.ensureDir(); err != nil {
		return res, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("%w: %w", models.ErrReadBody, err)
		}

		part, err := parts.NextPart()
		// Штатный конец тела — только голый io.EOF; обёрнутый EOF означает обрыв.
		if err == io.EOF {
			return res, nil
		}
		if err != nil {
			if s.Lenient && !isBodyLimit(err) {
				lg.Warn("multipart stream ended with error", "err", err)
				return res, nil
			}
			return res, fmt.Errorf("%w: %w", models.ErrReadBody, err)
		}

		raw := rawFileName(part)
		if raw == "" {
			lg.Debug("skip part without filename", "field", part.FormName())
			res.Skipped++
			_ = part.Close()
			continue
		}

		stored, err := s.savePart(ctx, part, raw)
		_ = part.Close()
		if err != nil {
			return res, err
		}
		res.Files = append(res.Files, stored)
	}
}

// ensureDir создаёт каталог загрузок вместе с родителями, если его ещё нет.
func (s *Uploads) ensureDir() error {
	if fi, err := s.Fs.Stat(s.UploadDir); err == nil && fi.IsDir() {
		return nil
	}
	if err := s.Fs.MkdirAll(s.UploadDir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", models.ErrCreateDir, err)
	}

	return nil
}

// savePart пишет одну часть в файл <dir>/<sanitized>, открывая его в режиме create+truncate.
func (s *Uploads) savePart(ctx context.Context, part *multipart.Part, raw string) (models.StoredFile, error) {
	lg := logging.From(ctx, s.Logger)

	name := filename.Sanitize(raw)
	path, err := s.resolve(name)
	if err != nil {
		return models.StoredFile{}, fmt.Errorf("%w: %w", models.ErrCreateFile, err)
	}

	f, err := s.Fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return models.StoredFile{}, fmt.Errorf("%w: %w", models.ErrCreateFile, err)
	}

	pw := newPartWriter(f)
	n, copyErr := io.Copy(pw, part)
	closeErr := f.Close()

	stored := models.StoredFile{
		Field:       part.FormName(),
		Name:        name,
		Original:    raw,
		Path:        path,
		Size:        n,
		ContentType: mimetype.Detect(pw.head).String(),
	}

	switch {
	case pw.err != nil:
		s.discard(ctx, path)
		return stored, fmt.Errorf("%w: %w", models.ErrWriteFile, pw.err)
	case copyErr != nil:
		if s.Lenient && !isBodyLimit(copyErr) {
			lg.Warn("part truncated by stream error", "name", name, "written", humanize.Bytes(uint64(n)), "err", copyErr)
			return stored, nil
		}
		s.discard(ctx, path)
		return stored, fmt.Errorf("%w: %w", models.ErrReadBody, copyErr)
	case closeErr != nil:
		s.discard(ctx, path)
		return stored, fmt.Errorf("%w: %w", models.ErrWriteFile, closeErr)
	}

	lg.Info("stored file",
		"name", name,
		"field", stored.Field,
		"size", humanize.Bytes(uint64(n)),
		"type", stored.ContentType,
	)

	return stored, nil
}

// resolve склеивает путь и проверяет, что он остаётся непосредственно внутри каталога загрузок.
func (s *Uploads) resolve(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", models.ErrInvalidName
	}

	path := filepath.Join(s.UploadDir, name)
	if filepath.Dir(path) != filepath.Clean(s.UploadDir) {
		return "", models.ErrInvalidName
	}

	return path, nil
}

// discard удаляет недописанный файл, если конфигурация не требует его оставить.
func (s *Uploads) discard(ctx context.Context, path string) {
	if s.KeepPartial {
		return
	}
	if err := s.Fs.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.From(ctx, s.Logger).Warn("remove partial file", "path", path, "err", err)
	}
}

// rawFileName возвращает имя файла из Content-Disposition без обработки.
// multipart.Part.FileName отрезает путь сам, а санитайзеру нужно исходное значение.
func rawFileName(p *multipart.Part) string {
	_, params, err := mime.ParseMediaType(p.Header.Get("Content-Disposition"))
	if err != nil {
		return p.FileName()
	}

	return params["filename"]
}

func isBodyLimit(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
