package api

import "context"

// requester is the request surface used by resource helpers. Client is the
// only production implementation; tests can substitute their own to exercise
// resource logic without a server.
type requester interface {
	// endpoint returns the absolute URL for a path relative to the API root.
	// Example: endpoint("products/12/") -> "http://localhost:8000/api/products/12/"
	endpoint(path string) string

	// execute sends one request and returns the raw response body. Non-2xx
	// responses come back as *APIError together with the body.
	execute(ctx context.Context, method, path string, body requestBody) ([]byte, error)

	// do is execute followed by JSON decoding into result (when non-nil).
	do(ctx context.Context, method, path string, body requestBody, result any) error

	// acquire takes the in-flight slot for a record key such as "product/12".
	acquire(ctx context.Context, key string) (func(), error)
}

// requestBody encodes itself for transport and reports its content type.
type requestBody interface {
	encode() (data []byte, contentType string, err error)
}
