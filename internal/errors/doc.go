// Package errors provides typed error values for ccrypt.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
//   - Filesystem errors: ErrNotFound, ErrPermissionDenied, ErrNoFilesFound
//   - Transform errors: ErrInvalidCredential, ErrResourceExhausted,
//     ErrMalformedContainer, ErrUnsupportedMethod
//   - Catalog errors: ErrInvalidIndex, ErrRenameFailed, ErrDeleteFailed,
//     ErrCapacityExceeded, ErrInvalidName, ErrCatalogCorrupt
//
// # Usage
//
// The codec and cipher packages only ever return transform errors. The
// pipeline maps operating system errors onto the filesystem errors:
//
//	data, err := os.ReadFile(path)
//	if errors.Is(err, fs.ErrNotExist) {
//	    return fmt.Errorf("reading %s: %w", path, kerrors.ErrNotFound)
//	}
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.Decrypt(ctx, lib, opts)
//	if errors.Is(err, kerrors.ErrInvalidIndex) {
//	    // Show user-friendly message
//	}
package errors
