// Copyright 2025 The RepresentApp Authors
// SPDX-License-Identifier: Apache-2.0

package lookup

import (
	"io"
	"net/http"
	"os"
	"time"

	"github.com/thomstrub/representapp/utils/httputils"
)

// ClientOptions configures the HTTP clients of the two adapters.
type ClientOptions struct {
	// UserAgent is the User-Agent header to use in HTTP requests
	UserAgent string

	// Enables light tracing of HTTP requests and responses
	EnableHTTPTrace bool

	// Enables full HTTP body tracing
	EnableHTTPBodyTrace bool
}

// newHTTPClient assembles an http.Client the same way for both adapters:
// a tuned transport wrapped by tracing and header-injection round trippers.
func newHTTPClient(timeout time.Duration, headers map[string]string, options *ClientOptions) *http.Client {
	if options == nil {
		options = &ClientOptions{}
	}

	var httpLogWriter io.Writer
	if options.EnableHTTPTrace {
		httpLogWriter = os.Stderr
	}

	transport := &http.Transport{
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   4,
		MaxConnsPerHost:       4,
		IdleConnTimeout:       30 * time.Second,
		ResponseHeaderTimeout: timeout,
		DisableKeepAlives:     false,
		DisableCompression:    false,
	}

	loggingTransport := &httputils.LoggingRoundTripper{
		Writer:    httpLogWriter,
		DumpBody:  options.EnableHTTPBodyTrace,
		Transport: transport,
	}

	userAgent := "representapp/unknown"
	if options.UserAgent != "" {
		userAgent = options.UserAgent
	}

	allHeaders := map[string]string{
		"User-Agent": userAgent,
		"Accept":     "application/json",
	}
	for k, v := range headers {
		allHeaders[k] = v
	}

	headerTransport := &httputils.AppendRequestHeadersRoundTripper{
		Headers:   allHeaders,
		Transport: loggingTransport,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: headerTransport,
	}
}
