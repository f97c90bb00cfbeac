package opnsense

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// ErrorKind classifies why a request did not produce a usable payload.
type ErrorKind int

const (
	KindTimeout ErrorKind = iota + 1
	KindTLS
	KindConnect
	KindStatus
	KindDecode
	KindMethod
)

func (k ErrorKind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindTLS:
		return "tls"
	case KindConnect:
		return "connect"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	case KindMethod:
		return "method"
	default:
		return "unknown"
	}
}

const (
	tlsErrorPrefix = "tls: "
	connectPrefix  = "Could not connect to OPNsense: "
	fetchPrefix    = "Could not fetch data from API: "
)

// RequestError is returned by the client for every failed request.
type RequestError struct {
	Kind       ErrorKind
	Method     string
	URL        string
	StatusCode int
	Cause      error
}

// Error returns the operator facing message for the failure.
func (e *RequestError) Error() string {
	switch e.Kind {
	case KindTimeout:
		return connectPrefix + "Connection timeout"
	case KindTLS:
		return connectPrefix + "Certificate validation failed"
	case KindConnect:
		return connectPrefix + "Failed to resolve hostname"
	case KindStatus:
		switch e.StatusCode {
		case http.StatusUnauthorized:
			return fetchPrefix + "invalid username or password"
		case http.StatusForbidden:
			return fetchPrefix + "Access denied, insufficient permissions"
		default:
			return fmt.Sprintf("%sHTTP error code was %d", fetchPrefix, e.StatusCode)
		}
	case KindDecode:
		return fmt.Sprintf("Could not decode API response: %v", e.Cause)
	case KindMethod:
		return fmt.Sprintf("Unsupported request method: %s", e.Method)
	default:
		return fmt.Sprintf("request failed: %v", e.Cause)
	}
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// classifyTransportError maps an error from http.Client.Do or a body read
// onto a kind.
// Timeouts win over everything else, TLS problems over plain connection
// failures.
func classifyTransportError(err error) ErrorKind {
	if isTimeout(err) {
		return KindTimeout
	}
	if isTLSError(err) {
		return KindTLS
	}
	return KindConnect
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout())
}

// isTLSError reports certificate failures as well as handshake failures
// such as a protocol version mismatch or an alert sent by the peer.
func isTLSError(err error) bool {
	var (
		unknownAuthority x509.UnknownAuthorityError
		hostnameErr      x509.HostnameError
		invalidCert      x509.CertificateInvalidError
		verifyErr        *tls.CertificateVerificationError
		recordErr        tls.RecordHeaderError
		alertErr         tls.AlertError
		opErr            *net.OpError
	)
	switch {
	case errors.As(err, &unknownAuthority),
		errors.As(err, &hostnameErr),
		errors.As(err, &invalidCert),
		errors.As(err, &verifyErr),
		errors.As(err, &recordErr),
		errors.As(err, &alertErr):
		return true
	case errors.As(err, &opErr) && opErr.Op == "remote error":
		return true
	}

	// Local handshake failures are plain errors prefixed by crypto/tls.
	for e := err; e != nil; e = errors.Unwrap(e) {
		if strings.HasPrefix(e.Error(), tlsErrorPrefix) {
			return true
		}
	}
	return false
}
