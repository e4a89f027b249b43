package analyses

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-matcher/internal/extract"
	"resume-matcher/internal/matching"
	"resume-matcher/internal/nlp"
	"resume-matcher/internal/resumeinfo"
	"resume-matcher/internal/shared/metrics"
	"resume-matcher/internal/shared/telemetry"
	"resume-matcher/internal/shared/util"
)

// Request is one résumé/job pairing to analyze.
type Request struct {
	Document       extract.Document
	JobDescription string
	// JobSkills overrides the skills detected in JobDescription when non-empty.
	JobSkills []string
}

// Result is the outcome of a completed analysis.
type Result struct {
	ID           string          `json:"id"`
	FileName     string          `json:"fileName"`
	DocumentType string          `json:"documentType"`
	ContentHash  string          `json:"contentHash"`
	Resume       resumeinfo.Info `json:"resume"`
	JobSkills    []string        `json:"jobSkills"`
	Match        matching.Result `json:"match"`
	DurationMs   int64           `json:"durationMs"`
}

// Service runs résumé analyses against a shared, read-only language model.
type Service struct {
	Model *nlp.Model
	Now   func() time.Time
}

// NewService constructs a Service.
func NewService(model *nlp.Model) *Service {
	return &Service{Model: model, Now: time.Now}
}

// Analyze extracts the résumé text, pulls structured fields out of it and
// scores it against the job description. Any failure aborts the whole analysis.
func (s *Service) Analyze(ctx context.Context, req Request) (*Result, error) {
	if len(req.Document.Data) == 0 || strings.TrimSpace(req.JobDescription) == "" {
		return nil, ErrMissingInput
	}
	if s.Model == nil {
		return nil, errors.New("analyses: nlp model not configured")
	}

	now := s.now
	start := now()
	id := uuid.NewString()
	fileName := displayName(req.Document.FileName)
	hash := util.ContentHash(req.Document.Data)

	metrics.IncAnalysisStarted()
	telemetry.Info("analysis.started", map[string]any{
		"analysis_id":  id,
		"file_name":    fileName,
		"content_hash": hash,
		"size_bytes":   len(req.Document.Data),
	})

	result, err := s.run(ctx, id, req)
	elapsed := now().Sub(start)
	metrics.ObserveAnalysisDurationMs(float64(elapsed.Milliseconds()))
	if err != nil {
		metrics.IncAnalysisFailed()
		if reason := failureReason(err); reason != "" {
			metrics.IncExtractionFailure(reason)
		}
		telemetry.Error("analysis.failed", map[string]any{
			"analysis_id": id,
			"file_name":   fileName,
			"duration_ms": elapsed.Milliseconds(),
			"error":       err.Error(),
		})
		return nil, err
	}

	result.FileName = fileName
	result.ContentHash = hash
	result.DurationMs = elapsed.Milliseconds()

	metrics.IncAnalysisCompleted()
	telemetry.Info("analysis.completed", map[string]any{
		"analysis_id":       id,
		"document_type":     result.DocumentType,
		"skills":            len(result.Resume.Skills),
		"job_skills":        len(result.JobSkills),
		"matching_keywords": len(result.Match.MatchingKeywords),
		"match_percentage":  result.Match.MatchPercentage,
		"duration_ms":       result.DurationMs,
	})
	return result, nil
}

func (s *Service) run(ctx context.Context, id string, req Request) (*Result, error) {
	text, docType, err := extract.ExtractText(ctx, req.Document)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resumeDoc, err := s.Model.Analyze(text)
	if err != nil {
		return nil, fmt.Errorf("analyze resume: %w", err)
	}
	jobDoc, err := s.Model.Analyze(req.JobDescription)
	if err != nil {
		return nil, fmt.Errorf("analyze job description: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info := resumeinfo.Extract(resumeDoc)
	jobSkills := resumeinfo.CanonicalSkills(req.JobSkills)
	if len(jobSkills) == 0 {
		jobSkills = resumeinfo.DetectSkills(req.JobDescription)
	}

	keywords := matching.MatchKeywords(resumeDoc, jobDoc)
	return &Result{
		ID:           id,
		DocumentType: docType.String(),
		Resume:       info,
		JobSkills:    jobSkills,
		Match:        matching.NewResult(keywords, info.Skills, jobSkills),
	}, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func displayName(name string) string {
	return util.DisplayFileName(name, "resume")
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, extract.ErrUnsupportedFormat):
		return ErrorCodeUnsupportedFormat
	case errors.Is(err, extract.ErrExtractionFailure):
		return ErrorCodeExtraction
	default:
		return ""
	}
}
