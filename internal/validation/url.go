// Package validation provides input checks shared by the CLI commands.
//
// The StockPro backend usually runs on a local or private network (the default
// base URL is http://localhost:8000/api/), so base URL validation only rejects
// malformed URLs, unsupported schemes and cloud metadata endpoints.
package validation

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// cloudMetadataHosts are never valid API hosts.
var cloudMetadataHosts = []string{
	"169.254.169.254",
	"metadata.google.internal",
	"metadata.goog",
	"fd00:ec2::254",
}

// ValidateBaseURL checks that rawURL is an absolute http(s) URL with a host.
func ValidateBaseURL(rawURL string) error {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return fmt.Errorf("base URL is required")
	}
	if len(rawURL) > MaxURLLength {
		return fmt.Errorf("base URL exceeds maximum length of %d characters", MaxURLLength)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base URL must use http or https (got %q)", u.Scheme)
	}
	hostname := u.Hostname()
	if hostname == "" {
		return fmt.Errorf("base URL must include a host")
	}
	if u.User != nil {
		return fmt.Errorf("base URL must not embed credentials")
	}
	if isCloudMetadata(hostname) {
		return fmt.Errorf("base URL points to a cloud metadata endpoint")
	}
	return nil
}

// NormalizeBaseURL trims whitespace and guarantees a single trailing slash so
// relative endpoint paths ("products/") can be appended directly.
func NormalizeBaseURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ""
	}
	return strings.TrimRight(rawURL, "/") + "/"
}

func isCloudMetadata(hostname string) bool {
	hostname = strings.ToLower(strings.Trim(hostname, "[]"))
	for _, h := range cloudMetadataHosts {
		if hostname == h {
			return true
		}
	}
	if ip := net.ParseIP(hostname); ip != nil {
		return ip.Equal(net.ParseIP("169.254.169.254"))
	}
	return false
}
