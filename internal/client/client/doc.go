// Package client contains client-side building blocks for Falimatik.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) for the
//     auth and profile endpoints: Signup, Signin, VerifyEmail,
//     ResendVerification, Me, UpdateMe and DeleteMe.
//  2. A concrete HTTP implementation (see HTTPClient) that decodes the
//     server's {code, message, data} envelope and maps failures to errors.
//  3. A gRPC client (see GRPCClient) that probes server health and fetches
//     the daily numbers with the session token.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match with
// errors.Is: ErrUnavailable, ErrUnauthorized. Other server rejections are
// returned as *APIError carrying the status code and the server message.
package client
