// Package web serves the browser form that uploads a résumé and shows the
// analysis as read-only sections.
package web

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"resume-matcher/internal/analyses"
	"resume-matcher/internal/matching"
	"resume-matcher/internal/shared/telemetry"
)

// PromptMessage is shown until both a résumé and a job description are submitted.
const PromptMessage = "Upload a resume and provide a job description to start."

//go:embed templates/*.html
var templateFiles embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFiles, "templates/*.html"))

// Handler renders the form and the analysis results.
type Handler struct {
	Svc            *analyses.Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *analyses.Service, maxUploadBytes int64) *Handler {
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches the form routes at the router root.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/", h.showForm)
	r.POST("/", h.analyze)
}

type errorView struct {
	Status  int
	Code    string
	Message string
}

type resultView struct {
	FileName         string
	Name             string
	Email            string
	Skills           string
	Experience       string
	MatchingKeywords string
	Highlighted      []matching.Token
	MatchPercentage  string
}

type pageData struct {
	Message        string
	Error          *errorView
	JobDescription string
	JobSkills      string
	Result         *resultView
}

func (h *Handler) showForm(c *gin.Context) {
	h.render(c, http.StatusOK, pageData{Message: PromptMessage})
}

func (h *Handler) analyze(c *gin.Context) {
	req, err := analyses.ReadRequest(c, h.MaxUploadBytes)
	var data pageData
	if !errors.Is(err, analyses.ErrFileTooLarge) {
		// The body is already parsed under the size limit.
		data.JobDescription = c.PostForm("jobDescription")
		data.JobSkills = c.PostForm("jobSkills")
	}

	var result *analyses.Result
	if err == nil {
		result, err = h.Svc.Analyze(c.Request.Context(), req)
	}
	if err != nil {
		if errors.Is(err, analyses.ErrMissingInput) {
			data.Message = PromptMessage
			h.render(c, http.StatusOK, data)
			return
		}
		status, code, message := analyses.Classify(err)
		telemetry.Warn("web.analysis_error", map[string]any{
			"status":     status,
			"code":       code,
			"request_id": c.GetString("requestId"),
		})
		data.Error = &errorView{Status: status, Code: code, Message: message}
		h.render(c, status, data)
		return
	}

	c.Set("analysisId", result.ID)
	data.Result = newResultView(result)
	h.render(c, http.StatusOK, data)
}

func (h *Handler) render(c *gin.Context, status int, data pageData) {
	c.Render(status, render.HTML{Template: pageTemplate, Name: "page", Data: data})
}

func newResultView(r *analyses.Result) *resultView {
	return &resultView{
		FileName:         r.FileName,
		Name:             r.Resume.Name,
		Email:            r.Resume.Email,
		Skills:           strings.Join(r.Resume.Skills, ", "),
		Experience:       strings.Join(r.Resume.Experience, ", "),
		MatchingKeywords: strings.Join(r.Match.MatchingKeywords, ", "),
		Highlighted:      r.Match.HighlightedTokens,
		MatchPercentage:  strconv.FormatFloat(r.Match.MatchPercentage, 'f', -1, 64),
	}
}
