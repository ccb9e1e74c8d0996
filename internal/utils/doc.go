// Package utils provides shared helpers for the ccrypt command line.
//
// # System Utilities
//
//   - GetUsername: returns the current system username
//   - GenerateArtifactName: picks a free "<base>.ccrypt" path, adding -2, -3 on conflict
//   - DecryptedName: default output path when decrypting by artifact path
//
// # String Utilities
//
//   - IsValidFileName: validates an artifact's new file name on rename
//
// # I/O and Terminal Utilities
//
//   - ReadStdin: reads all data from standard input (--password-stdin)
//   - ReadPassphrase: prompts for a password without echo
package utils
