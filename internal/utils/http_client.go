package utils

import (
	"github.com/go-resty/resty/v2"
)

// HTTPClient is a thin wrapper around [resty.Client] shared by every
// outbound adapter (vault, client→locker). Embedding the resty client
// exposes its fluent API while giving the application one place to hang
// common settings.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient constructs an [HTTPClient] with resty defaults. Base URL
// and timeout are configured by the caller via the embedded client.
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{resty.New()}
}
