package health

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-matcher/internal/nlp"
	"resume-matcher/internal/resumeinfo"
	"resume-matcher/internal/shared/server/respond"
)

// Service reports whether the process is ready to analyze résumés.
type Service struct {
	Model *nlp.Model
}

// NewService constructs a new health service.
func NewService(model *nlp.Model) *Service {
	return &Service{Model: model}
}

// Status returns the health payload.
func (s *Service) Status() gin.H {
	loaded := s.Model != nil
	return gin.H{
		"ok":     loaded,
		"model":  nlp.ModelName,
		"skills": len(resumeinfo.Vocabulary),
	}
}

// Handler serves Status as JSON, with 503 until the model is loaded.
func (s *Service) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		status := s.Status()
		code := http.StatusOK
		if ok, _ := status["ok"].(bool); !ok {
			code = http.StatusServiceUnavailable
		}
		respond.Status(c, code, status)
	}
}
