package client

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/trustlayerlabs/academy/internal/common"
)

type requestIDKey struct{}

// WithRequestID makes every request issued with ctx carry id as X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the id set by WithRequestID.
func RequestIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}

// requestIDTransport stamps outbound requests with an X-Request-ID, taken
// from the context or freshly generated.
type requestIDTransport struct {
	base http.RoundTripper
}

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(common.RequestIDHeaderName) == "" {
		id, ok := RequestIDFrom(req.Context())
		if !ok {
			id = uuid.NewString()
		}
		req = req.Clone(req.Context())
		req.Header.Set(common.RequestIDHeaderName, id)
	}
	return t.base.RoundTrip(req)
}
