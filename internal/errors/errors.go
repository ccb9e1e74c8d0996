package errors

import "errors"

// Filesystem errors indicate the pipeline could not reach a file.
var (
	// ErrNotFound indicates a source file, container, or artifact does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates the operating system refused access to a file.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNoFilesFound indicates no files matched the provided patterns.
	ErrNoFilesFound = errors.New("no matching files found")
)

// Transform errors come from the codec, cipher, or container framing.
var (
	// ErrInvalidCredential indicates the password is empty or missing.
	ErrInvalidCredential = errors.New("password must not be empty")

	// ErrResourceExhausted indicates the input is larger than the configured limit.
	ErrResourceExhausted = errors.New("input exceeds available resources")

	// ErrMalformedContainer indicates bad magic, a truncated header, unknown
	// flags, or an odd-length run-length stream.
	ErrMalformedContainer = errors.New("malformed container")

	// ErrUnsupportedMethod indicates a cipher method that is declared but not implemented.
	ErrUnsupportedMethod = errors.New("unsupported encryption method")
)

// Catalog errors indicate an invalid catalog operation.
var (
	// ErrInvalidIndex indicates a catalog index outside [0, count).
	ErrInvalidIndex = errors.New("catalog index out of range")

	// ErrRenameFailed indicates the artifact file could not be renamed.
	ErrRenameFailed = errors.New("failed to rename artifact")

	// ErrDeleteFailed indicates the artifact file could not be deleted.
	ErrDeleteFailed = errors.New("failed to delete artifact")

	// ErrCapacityExceeded indicates a bounded catalog is full.
	ErrCapacityExceeded = errors.New("catalog capacity exceeded")

	// ErrInvalidName indicates an empty or unusable artifact name.
	ErrInvalidName = errors.New("invalid artifact name")

	// ErrCatalogCorrupt indicates the persisted catalog could not be parsed.
	ErrCatalogCorrupt = errors.New("catalog file is corrupt")
)

// Input errors indicate malformed command input.
var (
	// ErrInvalidDateFormat indicates a date filter is not in YYYY-MM-DD format.
	ErrInvalidDateFormat = errors.New("invalid date format")
)
