// Package types holds the JSON envelopes every HTTP response is wrapped in.
package types

// SuccessEnvelope wraps 2xx payloads under a data key so clients decode
// one shape regardless of endpoint.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the client-facing error shape: a stable code, a safe
// message and an optional detail payload.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope carries an APIError on non-2xx responses.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
