// Package archive locates and extracts the manifest entry of an in-memory APK.
package archive

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/zapstore/apkmeta/internal/manifest"
)

// DefaultManifestName is the entry name suffix searched for.
const DefaultManifestName = "AndroidManifest.xml"

// MaxEntrySize is the default limit for a decompressed manifest entry.
// This prevents memory exhaustion from malicious or corrupted APKs.
const MaxEntrySize = 650 * 1024 * 1024 // 650MB

// Resolver finds the manifest entry inside a zip container.
// The zero value uses DefaultManifestName and MaxEntrySize.
type Resolver struct {
	ManifestName string
	MaxEntrySize int64
	Logger       *slog.Logger
}

func (r *Resolver) manifestName() string {
	if r == nil || r.ManifestName == "" {
		return DefaultManifestName
	}
	return r.ManifestName
}

func (r *Resolver) maxEntrySize() int64 {
	if r == nil || r.MaxEntrySize <= 0 {
		return MaxEntrySize
	}
	return r.MaxEntrySize
}

func (r *Resolver) logger() *slog.Logger {
	if r == nil || r.Logger == nil {
		return discard
	}
	return r.Logger
}

var discard = slog.New(slog.DiscardHandler)

// Resolve returns the decompressed bytes of the first entry whose name ends
// with the manifest name, compared case-insensitively.
func (r *Resolver) Resolve(content []byte) ([]byte, error) {
	zr, err := open(content)
	if err != nil {
		return nil, err
	}

	suffix := strings.ToLower(r.manifestName())
	var match *zip.File
	var count int
	for _, f := range zr.File {
		if !strings.HasSuffix(strings.ToLower(f.Name), suffix) {
			continue
		}
		count++
		if match == nil {
			match = f
		}
	}
	if match == nil {
		return nil, manifest.NewError(manifest.KindManifestNotFound, manifest.StageArchive,
			fmt.Sprintf("no entry named %s among %d entries", r.manifestName(), len(zr.File)), nil)
	}
	if count > 1 {
		r.logger().Warn("archive has several manifest entries, using the first",
			"entry", match.Name, "matches", count)
	}

	data, err := readEntry(match, r.maxEntrySize())
	if err != nil {
		return nil, err
	}
	r.logger().Debug("manifest entry resolved", "entry", match.Name, "size", len(data))
	return data, nil
}

// ListEntries returns the entry names of the archive in directory order.
func ListEntries(content []byte) ([]string, error) {
	zr, err := open(content)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	return names, nil
}

// open validates the central directory without reading any entry.
func open(content []byte) (*zip.Reader, error) {
	if len(content) == 0 {
		return nil, manifest.NewError(manifest.KindEmptyInput, manifest.StageArchive, "archive content is required", nil)
	}
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, manifest.NewError(manifest.KindInvalidArchive, manifest.StageArchive, "", err)
	}
	return zr, nil
}

// readEntry reads the contents of a file within a zip archive.
// Returns an error if the uncompressed size exceeds limit.
func readEntry(f *zip.File, limit int64) ([]byte, error) {
	if f.UncompressedSize64 > uint64(limit) {
		return nil, manifest.NewError(manifest.KindInvalidArchive, manifest.StageArchive,
			fmt.Sprintf("entry %s too large: %d bytes (max %d)", f.Name, f.UncompressedSize64, limit), nil)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, manifest.NewError(manifest.KindInvalidArchive, manifest.StageArchive, "failed to open "+f.Name, err)
	}
	defer rc.Close()

	// The declared size can lie; read one byte past the limit to notice.
	data, err := io.ReadAll(io.LimitReader(rc, limit+1))
	if err != nil {
		return nil, manifest.NewError(manifest.KindInvalidArchive, manifest.StageArchive, "failed to read "+f.Name, err)
	}
	if int64(len(data)) > limit {
		return nil, manifest.NewError(manifest.KindInvalidArchive, manifest.StageArchive,
			fmt.Sprintf("entry %s exceeds %d bytes", f.Name, limit), nil)
	}
	return data, nil
}

// Architectures returns the native ABIs found under lib/<abi>/ in names.
func Architectures(names []string) []string {
	seen := make(map[string]struct{})
	var archs []string
	for _, name := range names {
		if !strings.HasPrefix(name, "lib/") {
			continue
		}
		parts := strings.Split(name, "/")
		if len(parts) < 3 || parts[1] == "" {
			continue
		}
		if _, ok := seen[parts[1]]; ok {
			continue
		}
		seen[parts[1]] = struct{}{}
		archs = append(archs, parts[1])
	}
	return archs
}
