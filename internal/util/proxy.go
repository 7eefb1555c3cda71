// Package util holds small shared helpers.
package util

import (
	"net/http"
	"net/url"
)

// NewProxyFunc creates a proxy function for HTTP transports. Explicit proxy
// URLs win over the HTTP_PROXY/HTTPS_PROXY environment variables.
func NewProxyFunc(httpProxy, httpsProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}
