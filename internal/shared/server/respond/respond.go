package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-matcher/internal/shared/telemetry"
)

// CodeInternal is the error code for failures the client cannot correct.
const CodeInternal = "internal_error"

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// NewError builds the envelope written by Error, for callers outside gin.
func NewError(code, message string, details interface{}) ErrorResponse {
	return ErrorResponse{Error: ErrorBody{Code: code, Message: message, Details: details}}
}

// OK writes payload as a 200 JSON response.
func OK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

// Status writes payload with the given status without aborting the chain.
func Status(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// Error logs http.error and aborts with the error envelope. 4xx responses
// log at warn, 5xx at error.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	fields := RequestFields(c, map[string]any{
		"status":  status,
		"code":    code,
		"message": message,
	})
	if status < http.StatusInternalServerError {
		telemetry.Warn("http.error", fields)
	} else {
		telemetry.Error("http.error", fields)
	}
	c.AbortWithStatusJSON(status, NewError(code, message, details))
}

// RequestFields adds the request correlation keys to fields.
func RequestFields(c *gin.Context, fields map[string]any) map[string]any {
	fields["path"] = c.Request.URL.Path
	fields["method"] = c.Request.Method
	fields["request_id"] = c.GetString("requestId")
	if analysisID := c.GetString("analysisId"); analysisID != "" {
		fields["analysis_id"] = analysisID
	}
	return fields
}
