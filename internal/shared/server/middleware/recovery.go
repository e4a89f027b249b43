package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"resume-matcher/internal/shared/server/respond"
	"resume-matcher/internal/shared/telemetry"
)

// Recovery turns a panic in a handler, typically inside a document parser,
// into a 500 internal_error envelope. The stack is logged, never returned.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			telemetry.Error("http.panic", respond.RequestFields(c, map[string]any{
				"route": c.FullPath(),
				"error": fmt.Sprint(rec),
				"stack": string(debug.Stack()),
			}))
			respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "unexpected server error", nil)
		}()
		c.Next()
	}
}
