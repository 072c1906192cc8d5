package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrProductNotFound is returned when a product cannot be found
	ErrProductNotFound = errors.New("product not found")

	// ErrRoomNotFound is returned when a room profile does not exist
	ErrRoomNotFound = errors.New("room not found")

	// ErrCartItemNotFound is returned when a cart line does not exist
	ErrCartItemNotFound = errors.New("cart item not found")

	// ErrBlobNotFound is returned by a BlobStore when a key has no value
	ErrBlobNotFound = errors.New("blob not found")

	// ErrCatalogUnavailable is returned when the catalog API request fails
	ErrCatalogUnavailable = errors.New("catalog API request failed")

	// ErrEmailTaken is returned when registering with an existing email
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on a failed login attempt
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned when a session token fails verification
	ErrInvalidToken = errors.New("invalid session token")

	// ErrUserNotFound is returned when a user record does not exist
	ErrUserNotFound = errors.New("user not found")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")
)
