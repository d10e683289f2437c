package common

const (
	// AuthorizationHeaderName is the HTTP header (and gRPC metadata key, in
	// lower case) that carries the bearer session token.
	AuthorizationHeaderName = "Authorization"

	// BearerScheme is the only accepted authorization scheme.
	BearerScheme = "Bearer"
)
