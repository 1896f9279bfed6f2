// Package social implements the per-platform publishers. Each publisher owns
// one platform's wire protocol and retry tuning; configuration problems are
// reported immediately without consuming retry attempts, only transport
// failures are retried.
package social

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/ArnW0lf/ParaJose/domain/repository"
)

const defaultHTTPTimeout = 30 * time.Second

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultHTTPTimeout}
}

// readBody drains a response body, capping it so a misbehaving endpoint
// cannot blow up the audit log.
func readBody(resp *http.Response) string {
	if resp == nil || resp.Body == nil {
		return ""
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return ""
	}
	return string(b)
}

func auditCall(ctx context.Context, sink repository.IAuditSink, platform, endpoint string, statusCode int, body string) {
	if sink == nil {
		return
	}
	sink.LogCall(ctx, platform, endpoint, statusCode, body)
}
