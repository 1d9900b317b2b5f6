package httpclient

import (
	"net/http"

	"github.com/asampath/GoRAG/internal/config"
)

var pooledTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

// NewPooled returns an http.Client sharing one keep-alive transport, so the
// web-search and TTS collaborators reuse connections instead of redialing per
// request. Per-call deadlines come from the caller's context.
func NewPooled() *http.Client {
	return &http.Client{Transport: pooledTransport}
}
