package xuuid

import "errors"

var (
	// ErrInvalidFormat indicates that the UUID string format is invalid
	ErrInvalidFormat = errors.New("xuuid: invalid UUID format")

	// ErrInvalidLength indicates that the UUID byte slice has incorrect length
	ErrInvalidLength = errors.New("xuuid: invalid UUID length (expected 16 bytes)")

	// ErrInvalidVersion indicates that the requested UUID version cannot be generated
	ErrInvalidVersion = errors.New("xuuid: invalid or unsupported UUID version")

	// ErrInvalidVariant indicates that the UUID variant is not RFC 4122
	ErrInvalidVariant = errors.New("xuuid: invalid UUID variant (expected RFC 4122)")

	// ErrNodeUnavailable indicates that no node id could be obtained for a time-based UUID
	ErrNodeUnavailable = errors.New("xuuid: node id unavailable")
)
