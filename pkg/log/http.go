package log

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// Transport is an http.RoundTripper that logs every GitHub API request and
// response through logrus. It wraps the HTTP client behind the REST
// subscriber so API traffic shows up in verbose mode.
type Transport struct {
	base   http.RoundTripper
	logger *log.Logger
}

// NewTransport wraps base with request/response logging. A nil base falls
// back to http.DefaultTransport.
func NewTransport(base http.RoundTripper, logger *log.Logger) *Transport {
	return &Transport{
		base:   base,
		logger: logger,
	}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.logger.WithFields(log.Fields{
		"method": req.Method,
		"url":    req.URL.String(),
		"host":   req.Host,
		"path":   req.URL.Path,
	}).Debug("HTTP request")

	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}

	start := time.Now()
	res, err := base.RoundTrip(req)
	durationMs := time.Since(start) / time.Millisecond

	fields := log.Fields{
		"method":     req.Method,
		"url":        req.URL.String(),
		"host":       req.Host,
		"path":       req.URL.Path,
		"durationMs": durationMs,
	}

	if err != nil {
		fields["error"] = err.Error()
		t.logger.WithFields(fields).Error("HTTP response error")
		return nil, err
	}

	fields["status"] = res.StatusCode
	t.logger.WithFields(fields).Debug("HTTP response")
	return res, nil
}
