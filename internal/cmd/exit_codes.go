package cmd

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/spf13/pflag"

	"github.com/stockpro/stockpro-cli/internal/api"
	"github.com/stockpro/stockpro-cli/internal/config"
	"github.com/stockpro/stockpro-cli/internal/geo"
	"github.com/stockpro/stockpro-cli/internal/inflight"
)

const (
	exitOK        = 0
	exitGeneric   = 1
	exitUsage     = 2
	exitAuth      = 3
	exitNotFound  = 4
	exitForbidden = 5
	exitInFlight  = 6
	exitServer    = 7
	exitNetwork   = 8
)

// ExitCode maps an error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return exitOK
	}
	if errors.Is(err, pflag.ErrHelp) {
		return exitOK
	}
	var handled *handledError
	if errors.As(err, &handled) {
		if handled.exitCode != 0 {
			return handled.exitCode
		}
		err = handled.err
	}

	switch {
	case errors.Is(err, inflight.ErrInFlight):
		return exitInFlight
	case errors.Is(err, config.ErrNotConfigured), errors.Is(err, api.ErrNoToken):
		return exitAuth
	}
	var oor *geo.OutOfRangeError
	if errors.As(err, &oor) {
		return exitForbidden
	}
	if code := exitCodeFromStatus(api.StatusCode(err)); code != 0 {
		return code
	}
	if isNetworkError(err) {
		return exitNetwork
	}
	if isUsageError(err) {
		return exitUsage
	}
	return exitGeneric
}

func exitCodeFromStatus(status int) int {
	switch {
	case status == 0:
		return 0
	case status == http.StatusUnauthorized:
		return exitAuth
	case status == http.StatusForbidden:
		return exitForbidden
	case status == http.StatusNotFound:
		return exitNotFound
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return exitUsage
	case status >= 500:
		return exitServer
	default:
		return exitGeneric
	}
}

func isNetworkError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "i/o timeout")
}

func isUsageError(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, indicator := range []string{
		"unknown command",
		"unknown flag",
		"unknown shorthand flag",
		"flag needs an argument",
		"requires at least",
		"requires exactly",
		"accepts ",
		"invalid argument",
		"invalid ",
		"must be",
		"is required",
		"conflicts with",
	} {
		if strings.Contains(msg, indicator) {
			return true
		}
	}
	return false
}
