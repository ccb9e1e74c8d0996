// Package workflows provides high-level orchestration for ccrypt commands.
//
// Workflows coordinate the transform pipeline, the catalog engine and the
// audit log to implement complete user-facing features. Each workflow
// handles a single command's business logic, independent of CLI concerns
// like flag parsing, password prompts, spinners, and output formatting.
//
// The cmd/ package stays a thin layer that:
//   - Parses command-line flags and arguments
//   - Loads the config and the catalog, and saves the catalog when modified
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Resolving inputs and artifact names
//   - Running the pipeline and updating the catalog
//   - Verifying checksums
//   - Recording audit trail entries
//
// # Available Workflows
//
//   - Encrypt: seals files into containers and records them in the catalog
//   - Decrypt: opens a container by catalog index or by path
//   - List, Search, Info: read the catalog
//   - Rename, Delete: change artifacts on disk and in the catalog
//   - Verify: compares a file's checksum with a catalog record
//   - Log: reads and filters the audit trail
//
// # Catalog Ownership
//
// Workflows never load or save the catalog themselves. The caller passes the
// *catalog.Catalog it owns and persists it afterwards when Modified reports
// a change.
//
// # Error Handling
//
// Workflows return sentinel errors from the internal/errors package, wrapped
// with context. Use errors.Is() to check for specific conditions:
//
//	result, err := workflows.Decrypt(ctx, lib.Catalog, opts)
//	if errors.Is(err, kerrors.ErrInvalidIndex) {
//	    // Show the valid index range
//	}
//
// Indices are 0-based here; the cmd layer converts from the 1-based numbers
// shown to users.
package workflows
