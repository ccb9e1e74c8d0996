package workflows

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccrypt/ccrypt/internal/catalog"
	"github.com/ccrypt/ccrypt/internal/configs"
	kerrors "github.com/ccrypt/ccrypt/internal/errors"
	"github.com/ccrypt/ccrypt/internal/keystream"
)

// setup redirects the audit log and returns a directory for test files.
func setup(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	original := configs.CcryptSettings
	configs.CcryptSettings = &configs.Settings{
		ConfigPath: filepath.Join(tempDir, "config"),
		DataPath:   filepath.Join(tempDir, "data"),
		Username:   "tester",
	}
	t.Cleanup(func() {
		configs.CcryptSettings = original
	})

	work := filepath.Join(tempDir, "work")
	require.NoError(t, os.MkdirAll(work, 0755))
	return work
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func encryptFiles(t *testing.T, cat *catalog.Catalog, dir string, opts EncryptOptions) *EncryptResult {
	t.Helper()
	opts.BaseDir = dir
	if opts.Password == nil {
		opts.Password = []byte("pw")
	}
	result, err := Encrypt(context.Background(), cat, opts)
	require.NoError(t, err)
	return result
}

type failingFS struct{ err error }

func (f failingFS) Rename(string, string) error { return f.err }
func (f failingFS) Remove(string) error         { return f.err }
func (f failingFS) Exists(string) bool          { return false }

// memFS is an in-memory FileSystem holding a set of paths.
type memFS map[string]bool

func (m memFS) Rename(oldPath, newPath string) error {
	if !m[oldPath] {
		return fs.ErrNotExist
	}
	delete(m, oldPath)
	m[newPath] = true
	return nil
}

func (m memFS) Remove(path string) error {
	if !m[path] {
		return fs.ErrNotExist
	}
	delete(m, path)
	return nil
}

func (m memFS) Exists(path string) bool { return m[path] }

func TestEncryptRecordsArtifact(t *testing.T) {
	dir := setup(t)
	writeFile(t, dir, "notes.txt", "AAAAAAAAAA")
	cat := catalog.New()

	result := encryptFiles(t, cat, dir, EncryptOptions{FilePatterns: []string{"notes.txt"}, Compress: true})

	require.Len(t, result.Files, 1)
	f := result.Files[0]
	assert.Equal(t, filepath.Join(dir, "notes.ccrypt"), f.Artifact)
	assert.True(t, f.Compressed)
	assert.Equal(t, int64(10), f.OriginalSize)
	assert.Equal(t, int64(2), f.ArtifactSize)
	assert.FileExists(t, f.Artifact)

	require.Equal(t, 1, cat.Len())
	rec, err := cat.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", rec.OriginalName)
	assert.Equal(t, uint64(1), rec.SequenceID)
	assert.Equal(t, catalog.Checksum([]byte("AAAAAAAAAA")), rec.Checksum)
	assert.Equal(t, keystream.MethodXOR, rec.Method)
	assert.True(t, cat.Modified())
}

func TestEncryptAvoidsNameCollisions(t *testing.T) {
	dir := setup(t)
	writeFile(t, dir, "report.txt", "one")
	writeFile(t, dir, "report.md", "two")
	cat := catalog.New()

	result := encryptFiles(t, cat, dir, EncryptOptions{FilePatterns: []string{"report.txt", "report.md"}})

	require.Len(t, result.Files, 2)
	assert.Equal(t, filepath.Join(dir, "report.ccrypt"), result.Files[0].Artifact)
	assert.Equal(t, filepath.Join(dir, "report-2.ccrypt"), result.Files[1].Artifact)
}

func TestEncryptGlobAndOutputDir(t *testing.T) {
	dir := setup(t)
	writeFile(t, dir, "a.txt", "alpha")
	writeFile(t, dir, "b.txt", "beta")
	writeFile(t, dir, "c.log", "gamma")
	cat := catalog.New()

	result := encryptFiles(t, cat, dir, EncryptOptions{FilePatterns: []string{"*.txt"}, OutputDir: "vault"})

	require.Len(t, result.Files, 2)
	for _, f := range result.Files {
		assert.Equal(t, filepath.Join(dir, "vault"), filepath.Dir(f.Artifact))
	}
	assert.Equal(t, 2, cat.Len())
}

func TestEncryptDryRun(t *testing.T) {
	dir := setup(t)
	writeFile(t, dir, "a.txt", "alpha")
	cat := catalog.New()

	result := encryptFiles(t, cat, dir, EncryptOptions{FilePatterns: []string{"a.txt"}, DryRun: true})

	require.Len(t, result.Files, 1)
	assert.True(t, result.DryRun)
	assert.NoFileExists(t, result.Files[0].Artifact)
	assert.Equal(t, 0, cat.Len())
	assert.False(t, cat.Modified())
}

func TestEncryptCapacityExceeded(t *testing.T) {
	dir := setup(t)
	writeFile(t, dir, "a.txt", "alpha")
	writeFile(t, dir, "b.txt", "beta")
	cat := catalog.New(catalog.WithCapacity(1))

	result, err := Encrypt(context.Background(), cat, EncryptOptions{
		FilePatterns: []string{"a.txt", "b.txt"},
		BaseDir:      dir,
		Password:     []byte("pw"),
	})

	require.ErrorIs(t, err, kerrors.ErrCapacityExceeded)
	require.Len(t, result.Files, 1)
	assert.Equal(t, 1, cat.Len())
	assert.NoFileExists(t, filepath.Join(dir, "b.ccrypt"))
}

func TestEncryptErrors(t *testing.T) {
	dir := setup(t)
	writeFile(t, dir, "a.txt", "alpha")
	cat := catalog.New()

	_, err := Encrypt(context.Background(), cat, EncryptOptions{FilePatterns: []string{"a.txt"}, BaseDir: dir})
	assert.ErrorIs(t, err, kerrors.ErrInvalidCredential)

	_, err = Encrypt(context.Background(), cat, EncryptOptions{
		FilePatterns: []string{"a.txt"}, BaseDir: dir, Password: []byte("pw"), Method: keystream.MethodAES,
	})
	assert.ErrorIs(t, err, kerrors.ErrUnsupportedMethod)

	_, err = Encrypt(context.Background(), cat, EncryptOptions{
		FilePatterns: []string{"missing.txt"}, BaseDir: dir, Password: []byte("pw"),
	})
	assert.ErrorIs(t, err, kerrors.ErrNotFound)

	_, err = Encrypt(context.Background(), cat, EncryptOptions{
		FilePatterns: []string{"a.txt"}, BaseDir: dir, Password: []byte("pw"), MaxSize: 2,
	})
	assert.ErrorIs(t, err, kerrors.ErrResourceExhausted)
	assert.Equal(t, 0, cat.Len())
}

func TestDecryptByIndexRoundTrip(t *testing.T) {
	dir := setup(t)
	content := "hello hello hello"
	writeFile(t, dir, "greeting.txt", content)
	cat := catalog.New()
	enc := encryptFiles(t, cat, dir, EncryptOptions{FilePatterns: []string{"greeting.txt"}, Method: keystream.MethodLCG})

	result, err := Decrypt(context.Background(), cat, DecryptOptions{ByIndex: true, Index: 0, Password: []byte("pw")})
	require.NoError(t, err)

	assert.Equal(t, enc.Files[0].Artifact+"_dec", result.Output)
	data, err := os.ReadFile(result.Output)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
	assert.True(t, result.ChecksumChecked)
	assert.True(t, result.ChecksumMatch)
	assert.False(t, result.SeedMismatch)
	assert.Empty(t, result.Warning())
}

func TestPasswordIsWipedAfterUse(t *testing.T) {
	dir := setup(t)
	writeFile(t, dir, "secret.txt", "top secret")
	cat := catalog.New()
	zero := make([]byte, 6)

	password := []byte("hunter")
	_, err := Encrypt(context.Background(), cat, EncryptOptions{
		FilePatterns: []string{"secret.txt"}, BaseDir: dir, Password: password,
	})
	require.NoError(t, err)
	assert.Equal(t, zero, password)

	password = []byte("hunter")
	result, err := Decrypt(context.Background(), cat, DecryptOptions{ByIndex: true, Index: 0, Password: password})
	require.NoError(t, err)
	assert.True(t, result.ChecksumMatch)
	assert.Equal(t, zero, password)

	password = []byte("hunter")
	_, err = Decrypt(context.Background(), cat, DecryptOptions{ByIndex: true, Index: 5, Password: password})
	assert.ErrorIs(t, err, kerrors.ErrInvalidIndex)
	assert.Equal(t, zero, password)
}

func TestDecryptWrongPassword(t *testing.T) {
	dir := setup(t)
	writeFile(t, dir, "a.txt", "AAAAAAAAAA")

	t.Run("XORChecksumMismatch", func(t *testing.T) {
		cat := catalog.New()
		encryptFiles(t, cat, dir, EncryptOptions{FilePatterns: []string{"a.txt"}, Compress: true})

		result, err := Decrypt(context.Background(), cat, DecryptOptions{ByIndex: true, Index: 0, Password: []byte("xx")})
		require.NoError(t, err)
		assert.True(t, result.ChecksumChecked)
		assert.False(t, result.ChecksumMatch)
		assert.Equal(t, "checksum mismatch", result.Warning())
	})

	t.Run("LCGSeedMismatch", func(t *testing.T) {
		cat := catalog.New()
		encryptFiles(t, cat, dir, EncryptOptions{FilePatterns: []string{"a.txt"}, Method: keystream.MethodLCG})

		result, err := Decrypt(context.Background(), cat, DecryptOptions{ByIndex: true, Index: 0, Password: []byte("xx")})
		require.NoError(t, err)
		assert.True(t, result.SeedMismatch)
		assert.Contains(t, result.Warning(), "seed")
	})
}

func TestDecryptByPath(t *testing.T) {
	dir := setup(t)
	writeFile(t, dir, "a.txt", "plain text")
	cat := catalog.New()
	enc := encryptFiles(t, cat, dir, EncryptOptions{FilePatterns: []string{"a.txt"}})

	out := filepath.Join(dir, "restored.txt")
	result, err := Decrypt(context.Background(), catalog.New(), DecryptOptions{
		Path: enc.Files[0].Artifact, Output: out, Password: []byte("pw"),
	})
	require.NoError(t, err)
	assert.Nil(t, result.Record)
	assert.False(t, result.ChecksumChecked)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "plain text", string(data))
}

func TestDecryptErrors(t *testing.T) {
	dir := setup(t)
	cat := catalog.New()

	_, err := Decrypt(context.Background(), cat, DecryptOptions{ByIndex: true, Index: 0, Password: []byte("pw")})
	assert.ErrorIs(t, err, kerrors.ErrInvalidIndex)

	_, err = Decrypt(context.Background(), cat, DecryptOptions{Path: filepath.Join(dir, "nope.ccrypt"), Password: []byte("pw")})
	assert.ErrorIs(t, err, kerrors.ErrNotFound)

	bogus := writeFile(t, dir, "bogus.ccrypt", "not a container")
	_, err = Decrypt(context.Background(), cat, DecryptOptions{Path: bogus, Password: []byte("pw")})
	assert.ErrorIs(t, err, kerrors.ErrMalformedContainer)

	writeFile(t, dir, "zeros.txt", strings.Repeat("0", 4096))
	encryptFiles(t, cat, dir, EncryptOptions{FilePatterns: []string{"zeros.txt"}, Compress: true})
	_, err = Decrypt(context.Background(), cat, DecryptOptions{ByIndex: true, Index: 0, Password: []byte("pw"), MaxSize: 1024})
	assert.ErrorIs(t, err, kerrors.ErrResourceExhausted)
	assert.NoFileExists(t, filepath.Join(dir, "zeros.ccrypt_dec"))
}

func TestListSearchInfo(t *testing.T) {
	dir := setup(t)
	writeFile(t, dir, "c.txt", "ccc")
	writeFile(t, dir, "B.txt", "bbbbbb")
	writeFile(t, dir, "a.txt", "a")
	cat := catalog.New()
	encryptFiles(t, cat, dir, EncryptOptions{FilePatterns: []string{"c.txt", "B.txt", "a.txt"}})
	ctx := context.Background()

	byName := catalog.ByName
	list, err := List(ctx, cat, ListOptions{Sort: &byName})
	require.NoError(t, err)
	require.Len(t, list.Entries, 3)
	assert.True(t, list.Sorted)
	names := []string{list.Entries[0].Record.OriginalName, list.Entries[1].Record.OriginalName, list.Entries[2].Record.OriginalName}
	assert.Equal(t, []string{"a.txt", "B.txt", "c.txt"}, names)

	found, err := Search(ctx, cat, SearchOptions{Query: "b", Max: 10})
	require.NoError(t, err)
	assert.Empty(t, found.Entries)

	found, err = Search(ctx, cat, SearchOptions{Query: ".txt", Max: 2})
	require.NoError(t, err)
	require.Len(t, found.Entries, 2)
	assert.Equal(t, 0, found.Entries[0].Index)

	info, err := Info(ctx, cat, 1)
	require.NoError(t, err)
	assert.Equal(t, "B.txt", info.Record.OriginalName)

	_, err = Info(ctx, cat, 3)
	assert.ErrorIs(t, err, kerrors.ErrInvalidIndex)
}

func TestRename(t *testing.T) {
	dir := setup(t)
	writeFile(t, dir, "a.txt", "alpha")
	writeFile(t, dir, "b.txt", "beta")
	cat := catalog.New()
	enc := encryptFiles(t, cat, dir, EncryptOptions{FilePatterns: []string{"a.txt", "b.txt"}})
	ctx := context.Background()

	result, err := Rename(ctx, cat, RenameOptions{Index: 0, NewName: "renamed.ccrypt"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "renamed.ccrypt"), result.NewPath)
	assert.FileExists(t, result.NewPath)
	assert.NoFileExists(t, enc.Files[0].Artifact)
	rec, _ := cat.Get(0)
	assert.Equal(t, result.NewPath, rec.ArtifactName)

	_, err = Rename(ctx, cat, RenameOptions{Index: 0, NewName: "sub/x.ccrypt"})
	assert.ErrorIs(t, err, kerrors.ErrInvalidName)

	_, err = Rename(ctx, cat, RenameOptions{Index: 0, NewName: filepath.Base(enc.Files[1].Artifact)})
	assert.ErrorIs(t, err, kerrors.ErrRenameFailed)

	_, err = Rename(ctx, cat, RenameOptions{Index: 1, NewName: "other.ccrypt", FS: failingFS{fs.ErrPermission}})
	assert.ErrorIs(t, err, kerrors.ErrRenameFailed)
	rec, _ = cat.Get(1)
	assert.Equal(t, enc.Files[1].Artifact, rec.ArtifactName)
}

func TestDelete(t *testing.T) {
	dir := setup(t)
	writeFile(t, dir, "a.txt", "alpha")
	writeFile(t, dir, "b.txt", "beta")
	cat := catalog.New()
	enc := encryptFiles(t, cat, dir, EncryptOptions{FilePatterns: []string{"a.txt", "b.txt"}})
	ctx := context.Background()

	_, err := Delete(ctx, cat, DeleteOptions{Index: 0, FS: failingFS{fs.ErrPermission}})
	assert.ErrorIs(t, err, kerrors.ErrDeleteFailed)
	assert.Equal(t, 2, cat.Len())

	result, err := Delete(ctx, cat, DeleteOptions{Index: 0})
	require.NoError(t, err)
	assert.False(t, result.AlreadyMissing)
	assert.NoFileExists(t, enc.Files[0].Artifact)
	assert.Equal(t, 1, cat.Len())

	require.NoError(t, os.Remove(enc.Files[1].Artifact))
	result, err = Delete(ctx, cat, DeleteOptions{Index: 0})
	require.NoError(t, err)
	assert.True(t, result.AlreadyMissing)
	assert.Equal(t, 0, cat.Len())
	assert.Equal(t, uint64(3), cat.NextID())
}

func TestRenameDeleteWithInjectedFileSystem(t *testing.T) {
	setup(t)
	cat := catalog.New()
	a := filepath.Join("vault", "a.ccrypt")
	b := filepath.Join("vault", "b.ccrypt")
	_, err := cat.Insert(catalog.Record{OriginalName: "a.txt", ArtifactName: a})
	require.NoError(t, err)
	_, err = cat.Insert(catalog.Record{OriginalName: "b.txt", ArtifactName: b})
	require.NoError(t, err)
	fsys := memFS{a: true, b: true}
	ctx := context.Background()

	_, err = Rename(ctx, cat, RenameOptions{Index: 0, NewName: "b.ccrypt", FS: fsys})
	assert.ErrorIs(t, err, kerrors.ErrRenameFailed)
	assert.True(t, fsys[a])

	result, err := Rename(ctx, cat, RenameOptions{Index: 0, NewName: "c.ccrypt", FS: fsys})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("vault", "c.ccrypt"), result.NewPath)
	assert.True(t, fsys[result.NewPath])

	delete(fsys, b)
	deleted, err := Delete(ctx, cat, DeleteOptions{Index: 1, FS: fsys})
	require.NoError(t, err)
	assert.True(t, deleted.AlreadyMissing)

	deleted, err = Delete(ctx, cat, DeleteOptions{Index: 0, FS: fsys})
	require.NoError(t, err)
	assert.False(t, deleted.AlreadyMissing)
	assert.Empty(t, fsys)
	assert.Equal(t, 0, cat.Len())
}

func TestVerify(t *testing.T) {
	dir := setup(t)
	src := writeFile(t, dir, "a.txt", "alpha")
	other := writeFile(t, dir, "other.txt", "omega")
	cat := catalog.New()
	encryptFiles(t, cat, dir, EncryptOptions{FilePatterns: []string{"a.txt"}})
	ctx := context.Background()

	result, err := Verify(ctx, cat, VerifyOptions{Index: 0, File: src})
	require.NoError(t, err)
	assert.True(t, result.Match)

	result, err = Verify(ctx, cat, VerifyOptions{Index: 0, File: other})
	require.NoError(t, err)
	assert.False(t, result.Match)

	_, err = Verify(ctx, cat, VerifyOptions{Index: 0, File: filepath.Join(dir, "missing")})
	assert.ErrorIs(t, err, kerrors.ErrNotFound)
}

func TestLogFilters(t *testing.T) {
	dir := setup(t)
	ctx := context.Background()

	_, err := Log(ctx, LogOptions{})
	assert.ErrorIs(t, err, kerrors.ErrNoFilesFound)

	writeFile(t, dir, "a.txt", "alpha")
	cat := catalog.New()
	encryptFiles(t, cat, dir, EncryptOptions{FilePatterns: []string{"a.txt"}})
	_, err = Delete(ctx, cat, DeleteOptions{Index: 0})
	require.NoError(t, err)

	result, err := Log(ctx, LogOptions{})
	require.NoError(t, err)
	assert.Len(t, result.Entries, 2)

	result, err = Log(ctx, LogOptions{Operations: "encrypt"})
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, "a.txt", FormatDetailsOneline(result.Entries[0]))
	assert.Equal(t, "tester", result.Entries[0].User)

	result, err = Log(ctx, LogOptions{Limit: 1, Reverse: true})
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, "delete", result.Entries[0].Operation)

	result, err = Log(ctx, LogOptions{Reverse: true})
	require.NoError(t, err)
	require.Len(t, result.Entries, 2)
	assert.Equal(t, "delete", result.Entries[0].Operation)
	assert.Equal(t, "encrypt", result.Entries[1].Operation)

	yesterday := time.Now().UTC().Add(-24 * time.Hour).Format("2006-01-02")
	result, err = Log(ctx, LogOptions{User: "TESTER", Operations: "delete, encrypt", Since: yesterday})
	require.NoError(t, err)
	assert.Len(t, result.Entries, 2)

	result, err = Log(ctx, LogOptions{User: "nobody"})
	require.NoError(t, err)
	assert.Empty(t, result.Entries)
	assert.Equal(t, 2, result.TotalEntriesBeforeFilter)

	result, err = Log(ctx, LogOptions{Until: "2000-01-01"})
	require.NoError(t, err)
	assert.Empty(t, result.Entries)

	_, err = Log(ctx, LogOptions{Since: "yesterday"})
	assert.ErrorIs(t, err, kerrors.ErrInvalidDateFormat)
}
