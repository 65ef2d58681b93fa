package uploadhttp

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/sir_venger/upload_lite/internal/logging"
	"github.com/sir_venger/upload_lite/internal/models"
	"github.com/sir_venger/upload_lite/pkg/httperrors"
)

const uploadOK = "File uploaded successfully"

// upload стримит части multipart-тела в каталог загрузок и отвечает одним статусом на весь запрос.
func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	lg := logging.From(r.Context(), s.log)

	mr, err := r.MultipartReader()
	if err != nil {
		err = fmt.Errorf("%w: %w", models.ErrNotMultipart, err)
		s.metrics.observe(httperrors.Status(err), models.UploadResult{}, time.Since(start))
		httperrors.Write(w, err)
		return
	}

	res, err := s.Uploads.Store(r.Context(), mr)
	if err != nil {
		status := httperrors.Status(err)
		s.metrics.observe(status, res, time.Since(start))
		lg.Error("upload failed", "status", status, "stored", len(res.Files), "err", err)
		httperrors.Write(w, err)
		return
	}

	s.metrics.observe(http.StatusOK, res, time.Since(start))
	lg.Info("upload complete",
		"files", len(res.Files),
		"skipped", res.Skipped,
		"size", humanize.Bytes(uint64(res.Bytes())),
	)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, uploadOK)
}
