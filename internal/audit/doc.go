// Package audit records ccrypt operations in a local audit trail.
//
// Every operation that touches files or the catalog (encrypt, decrypt,
// rename, delete, verify) appends one JSON object per line to:
//
//	$CCRYPT_HOME/data/audit.jsonl
//
// Each entry contains a UTC timestamp with microseconds, the system user,
// the operation name and operation-specific details.
//
// # Usage
//
//	entry := audit.LogWithUser("encrypt")
//	entry.Files = sources
//	audit.Log(entry)
//
// # Failure Handling
//
// Audit logging is best-effort. If the log cannot be written the operation
// continues without error. ReadEntries skips malformed lines left by
// partial writes.
package audit
