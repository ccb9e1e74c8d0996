// Package pipeline turns plaintext into ccrypt containers and back.
//
// The encrypt path is read, optional run-length compression, keystream,
// container framing, write. The decrypt path runs the same stages in
// reverse. Seal and Open are pure and work on byte slices; EncryptFile and
// DecryptFile add the filesystem boundary.
//
// # Committing output
//
// Output is written to a temporary file in the destination directory and
// renamed into place only after every stage has succeeded, so a failed run
// never leaves a partial artifact at the final path.
//
// # Wrong passwords
//
// A wrong password is not a pipeline failure. With the XOR keystream the
// output is simply wrong; with the LCG keystream Opened.SeedMismatch is set
// and decryption still proceeds. Callers detect corruption by comparing the
// checksum of the output with the one recorded in the catalog.
package pipeline
