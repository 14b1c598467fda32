// Package handler provides HTTP handlers for the API.
package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"resume-intake/internal/domain"
	"resume-intake/internal/service"
)

// Room for multipart boundaries and headers on top of the file itself.
const multipartOverhead = 1 << 20

// ResumeHandler handles resume upload and retrieval requests
type ResumeHandler struct {
	resumeService domain.ResumeService
	maxFileSize   int64
	logger        domain.Logger
}

// NewResumeHandler creates a new resume handler
func NewResumeHandler(resumeService domain.ResumeService, maxFileSize int64, logger domain.Logger) *ResumeHandler {
	return &ResumeHandler{
		resumeService: resumeService,
		maxFileSize:   maxFileSize,
		logger:        logger,
	}
}

type uploadResponse struct {
	Message string `json:"message"`
}

type resumeResponse struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	ResumeText string    `json:"resume_text"`
	Skills     []string  `json:"skills"`
	Experience string    `json:"experience"`
	Education  string    `json:"education"`
	Projects   string    `json:"projects"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// UploadResume handles POST /api/v1/resume/upload
func (h *ResumeHandler) UploadResume(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+multipartOverhead)
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeAppError(w, h.logger, fmt.Errorf("%w: request exceeds %d bytes", domain.ErrFileTooLarge, tooLarge.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("resume")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	if header.Size > h.maxFileSize {
		writeAppError(w, h.logger, fmt.Errorf("%w: %d bytes", domain.ErrFileTooLarge, header.Size))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("Failed to read uploaded file", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	doc := domain.ResumeDocument{
		Data:     data,
		MimeType: service.ResolveMimeType(header.Header.Get("Content-Type"), header.Filename),
		Filename: header.Filename,
	}

	h.logger.Info("Resume upload received", "user_id", user.ID, "filename", header.Filename, "size", len(data), "mime", doc.MimeType)

	if _, err := h.resumeService.Upload(r.Context(), *user, doc); err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{Message: "Resume uploaded and processed successfully"})
}

// GetLatestResume handles GET /api/v1/resume
func (h *ResumeHandler) GetLatestResume(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	record, err := h.resumeService.Latest(r.Context(), user.ID)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	skills, err := service.DecodeSkills(record)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, resumeResponse{
		ID:         record.ID,
		UserID:     record.UserID,
		ResumeText: record.ResumeText,
		Skills:     skills,
		Experience: record.Experience,
		Education:  record.Education,
		Projects:   record.Projects,
		UploadedAt: record.UploadedAt,
	})
}
