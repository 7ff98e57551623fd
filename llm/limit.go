package llm

import (
	"io"
	"net/http"
)

// limitedBody fails with ErrResponseTooLarge once more than remaining bytes
// have been received.
type limitedBody struct {
	body      io.ReadCloser
	remaining int64
}

func (b *limitedBody) Read(p []byte) (int, error) {
	if b.remaining <= 0 {
		var extra [1]byte
		n, err := b.body.Read(extra[:])
		if n > 0 {
			return 0, ErrResponseTooLarge
		}
		return 0, err
	}
	if int64(len(p)) > b.remaining {
		p = p[:b.remaining]
	}
	n, err := b.body.Read(p)
	b.remaining -= int64(n)
	return n, err
}

func (b *limitedBody) Close() error {
	return b.body.Close()
}

type limitTransport struct {
	base     http.RoundTripper
	maxBytes int64
}

func (t *limitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return resp, err
	}
	resp.Body = &limitedBody{body: resp.Body, remaining: t.maxBytes}
	return resp, nil
}

// limitClient caps every response body read through client. Zero means
// unlimited and returns client unchanged.
func limitClient(client *http.Client, maxBytes int64) *http.Client {
	if maxBytes <= 0 {
		return client
	}
	base := client.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	limited := *client
	limited.Transport = &limitTransport{base: base, maxBytes: maxBytes}
	return &limited
}
