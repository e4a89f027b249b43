package main

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"

	"resume-matcher/internal/bootstrap"
	"resume-matcher/internal/shared/config"
	"resume-matcher/internal/shared/server/respond"
	"resume-matcher/internal/shared/telemetry"
)

// analyzer holds the router built on the first invocation. The skill model
// load is paid once per container.
type analyzer struct {
	once    sync.Once
	err     error
	adapter *ginadapter.GinLambdaV2
}

func (a *analyzer) setup() {
	cfg := config.Load()
	telemetry.Init(cfg.LogLevel, cfg.LogFormat)
	app, err := bootstrap.Build(cfg)
	if err != nil {
		a.err = err
		return
	}
	a.adapter = ginadapter.NewV2(app.Router)
}

func (a *analyzer) handle(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	a.once.Do(a.setup)
	if a.err != nil {
		telemetry.Error("lambda.bootstrap_failed", map[string]any{
			"error":      a.err.Error(),
			"request_id": req.RequestContext.RequestID,
		})
		return unavailable(), nil
	}
	return a.adapter.ProxyWithContext(ctx, req)
}

// unavailable answers with the same error envelope the router uses.
func unavailable() events.APIGatewayV2HTTPResponse {
	body, _ := json.Marshal(respond.NewError(respond.CodeInternal, "the analyzer failed to start", nil))
	return events.APIGatewayV2HTTPResponse{
		StatusCode: http.StatusServiceUnavailable,
		Body:       string(body),
		Headers:    map[string]string{"Content-Type": "application/json"},
	}
}

func main() {
	lambda.Start((&analyzer{}).handle)
}
