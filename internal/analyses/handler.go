package analyses

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-matcher/internal/extract"
	"resume-matcher/internal/shared/metrics"
	"resume-matcher/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyses", h.createAnalysis)
}

func (h *Handler) createAnalysis(c *gin.Context) {
	req, err := ReadRequest(c, h.MaxUploadBytes)
	if err == nil {
		var result *Result
		result, err = h.Svc.Analyze(c.Request.Context(), req)
		if err == nil {
			c.Set("analysisId", result.ID)
			respond.OK(c, result)
			return
		}
	}

	status, code, message := Classify(err)
	var details interface{}
	if status != http.StatusInternalServerError && code != ErrorCodeMissingInput {
		details = []map[string]string{{"field": "file", "issue": err.Error()}}
	}
	respond.Error(c, status, code, message, details)
}

// ReadRequest reads a multipart analysis form: "file" (the résumé),
// "jobDescription" and an optional comma-separated "jobSkills". Uploads larger
// than maxBytes yield ErrFileTooLarge; an absent file or a blank job
// description yield ErrMissingInput.
func ReadRequest(c *gin.Context, maxBytes int64) (Request, error) {
	if maxBytes > 0 {
		if c.Request.ContentLength > maxBytes {
			metrics.IncUploadRejected(ErrorCodeFileTooLarge)
			return Request{}, ErrFileTooLarge
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	}

	fileHeader, err := c.FormFile("file")
	switch {
	case isTooLarge(err):
		metrics.IncUploadRejected(ErrorCodeFileTooLarge)
		return Request{}, ErrFileTooLarge
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return Request{}, ErrMissingInput
	case err != nil:
		metrics.IncUploadRejected(ErrorCodeInvalidRequest)
		return Request{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	jobDescription := strings.TrimSpace(c.PostForm("jobDescription"))
	if jobDescription == "" {
		return Request{}, ErrMissingInput
	}

	data, err := readFile(fileHeader)
	if err != nil {
		return Request{}, fmt.Errorf("%w: read file: %v", ErrInvalidRequest, err)
	}
	if len(data) == 0 {
		return Request{}, ErrMissingInput
	}

	return Request{
		Document: extract.Document{
			Data:     data,
			MimeType: fileHeader.Header.Get("Content-Type"),
			FileName: fileHeader.Filename,
		},
		JobDescription: jobDescription,
		JobSkills:      parseJobSkills(c.PostForm("jobSkills")),
	}, nil
}

func readFile(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

func parseJobSkills(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func isTooLarge(err error) bool {
	if err == nil {
		return false
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}
