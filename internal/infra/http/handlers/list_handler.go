package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/entity"
	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/infra/http/middleware"
	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/infra/tabular"
	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/usecase"
)

const (
	uploadField = "file"
	// multipart framing allowance on top of the file size cap
	formOverhead = 1 << 20
	xlsxMIME     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type LeadDistributor interface {
	Execute(ctx context.Context, input usecase.DistributeLeadsInput) (*usecase.DistributeLeadsOutput, error)
}

type LeadLister interface {
	All(ctx context.Context) ([]entity.LeadWithAgent, error)
	ByAgent(ctx context.Context, agentID string) ([]entity.Lead, error)
	Export(ctx context.Context, w io.Writer) error
}

type ListHandler struct {
	Distributor LeadDistributor
	Lister      LeadLister
	UploadDir   string
	MaxBytes    int64
}

func NewListHandler(distributor LeadDistributor, lister LeadLister, uploadDir string, maxBytes int64) *ListHandler {
	return &ListHandler{
		Distributor: distributor,
		Lister:      lister,
		UploadDir:   uploadDir,
		MaxBytes:    maxBytes,
	}
}

// Upload accepts a multipart CSV/XLSX/XLS file and distributes its rows. The
// upload is staged in a temp file that is removed before the handler returns.
func (h *ListHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes+formOverhead)

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			middleware.RecordUpload("FILE_TOO_LARGE", 0, 0)
			writeErrorResponse(w, http.StatusBadRequest, "File too large")
			return
		}
		middleware.RecordUpload("NO_FILE", 0, 0)
		writeErrorResponse(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	if _, err := tabular.FormatFromFilename(header.Filename); err != nil {
		middleware.RecordUpload(usecase.CodeUnsupportedFileType, 0, 0)
		writeErrorResponse(w, http.StatusBadRequest, "Only CSV, XLSX, and XLS files are allowed")
		return
	}

	if header.Size > h.MaxBytes {
		middleware.RecordUpload("FILE_TOO_LARGE", 0, 0)
		writeErrorResponse(w, http.StatusBadRequest, "File too large")
		return
	}

	staged, cleanup, err := h.stage(file, header.Filename)
	if err != nil {
		zap.L().Error("stage upload", zap.Error(err))
		middleware.RecordUpload("STAGING_FAILURE", 0, 0)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: "Error processing file", Error: err.Error()})
		return
	}
	defer cleanup()

	output, err := h.Distributor.Execute(r.Context(), usecase.DistributeLeadsInput{
		FileName: header.Filename,
		Content:  staged,
	})
	if err != nil {
		middleware.RecordUpload(errorCode(err), 0, 0)
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordUpload("success", output.Stats.Accepted, output.Stats.Rejected)
	writeJSON(w, http.StatusCreated, output)
}

// stage copies the upload to a temp file in UploadDir and returns it rewound.
// cleanup closes and removes the file and is safe to call once on any path.
func (h *ListHandler) stage(src io.Reader, filename string) (*os.File, func(), error) {
	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		return nil, nil, eris.Wrap(err, "upload: create dir")
	}

	f, err := os.CreateTemp(h.UploadDir, "upload-*"+filepath.Ext(filename))
	if err != nil {
		return nil, nil, eris.Wrap(err, "upload: create temp file")
	}
	cleanup := func() {
		f.Close()
		if err := os.Remove(f.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
			zap.L().Warn("remove staged upload", zap.String("path", f.Name()), zap.Error(err))
		}
	}

	if _, err := io.Copy(f, src); err != nil {
		cleanup()
		return nil, nil, eris.Wrap(err, "upload: write temp file")
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		cleanup()
		return nil, nil, eris.Wrap(err, "upload: rewind temp file")
	}

	return f, cleanup, nil
}

func (h *ListHandler) List(w http.ResponseWriter, r *http.Request) {
	leads, err := h.Lister.All(r.Context())
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, leads)
}

func (h *ListHandler) ListByAgent(w http.ResponseWriter, r *http.Request) {
	leads, err := h.Lister.ByAgent(r.Context(), chi.URLParam(r, "agentId"))
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, leads)
}

func (h *ListHandler) Export(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.Lister.Export(r.Context(), &buf); err != nil {
		writeUseCaseError(w, err)
		return
	}

	w.Header().Set("Content-Type", xlsxMIME)
	w.Header().Set("Content-Disposition", `attachment; filename="leads.xlsx"`)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		zap.L().Warn("write export", zap.Error(err))
	}
}
