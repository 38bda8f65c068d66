// Package errors defines the error types surfaced over HTTP and renders
// them as RFC 7807 problem documents. APIError covers transport failures
// such as oversize uploads; AppError carries analysis failures with a
// user-facing message that the handler exposes as the problem detail.
package errors
