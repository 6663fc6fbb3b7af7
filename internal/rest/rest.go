package rest

import (
	"context"
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// WriteError writes status and an ErrorResponse body. The Content-Type header must be set
// by the caller before the first write.
func WriteError(w http.ResponseWriter, status int, message string, details string) {
	w.WriteHeader(status)
	encodeErr := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   message,
		Details: details,
	})
	if encodeErr != nil {
		log.Errorf("failed to encode error response: %v", encodeErr)
	}
}

type contextKey string

const requestIdKey contextKey = "requestId"

const RequestIdHeader = "X-Request-Id"

func WithRequestId(ctx context.Context, requestId string) context.Context {
	return context.WithValue(ctx, requestIdKey, requestId)
}

// RequestId returns the id attached by the request middleware, or "" outside of a request.
func RequestId(ctx context.Context) string {
	requestId, _ := ctx.Value(requestIdKey).(string)
	return requestId
}

// Logger returns a logrus entry tagged with the request id carried by ctx.
func Logger(ctx context.Context) *log.Entry {
	return log.WithField("requestId", RequestId(ctx))
}
