// Package apk extracts identity and version metadata from APK archives.
package apk

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"

	"github.com/zapstore/apkmeta/internal/archive"
	"github.com/zapstore/apkmeta/internal/axml"
	"github.com/zapstore/apkmeta/internal/config"
	"github.com/zapstore/apkmeta/internal/manifest"
)

// Info contains extracted metadata from an APK.
type Info struct {
	// Package identifier (e.g., "com.example.app")
	PackageID string

	// Fully-qualified launcher component (e.g., "com.example.app.MainActivity")
	LaunchActivity string

	// Version information
	VersionCode int32
	Version     manifest.Version
	VersionRaw  string // versionName as declared

	// Native architectures (e.g., ["arm64-v8a", "armeabi-v7a"])
	Architectures []string

	// File information
	FilePath string
	FileSize int64
	SHA256   string
}

// Extractor runs the archive, decode and query stages over APK bytes.
// It holds no mutable state and is safe for concurrent use.
type Extractor struct {
	resolver *archive.Resolver
	decoder  axml.Decoder
	query    manifest.Query
	logger   *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithResolver replaces the archive resolver.
func WithResolver(r *archive.Resolver) Option {
	return func(x *Extractor) { x.resolver = r }
}

// WithDecoder replaces the manifest decoder.
func WithDecoder(d axml.Decoder) Option {
	return func(x *Extractor) { x.decoder = d }
}

// WithQuery replaces the manifest query.
func WithQuery(q manifest.Query) Option {
	return func(x *Extractor) { x.query = q }
}

// WithLogger sets the logger for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(x *Extractor) { x.logger = l }
}

// New returns an Extractor using the apkparser decoder and default query.
func New(opts ...Option) *Extractor {
	x := &Extractor{}
	for _, opt := range opts {
		opt(x)
	}
	if x.logger == nil {
		x.logger = slog.New(slog.DiscardHandler)
	}
	if x.resolver == nil {
		x.resolver = &archive.Resolver{Logger: x.logger}
	}
	if x.decoder == nil {
		x.decoder = axml.BinaryDecoder{Logger: x.logger}
	}
	return x
}

// FromConfig builds an Extractor from a validated config.
func FromConfig(cfg *config.Config, logger *slog.Logger) (*Extractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	dec, err := axml.ByName(cfg.Decoder, cfg.AllowPlainText, logger)
	if err != nil {
		return nil, err
	}
	return New(
		WithLogger(logger),
		WithResolver(&archive.Resolver{
			ManifestName: cfg.ManifestName,
			MaxEntrySize: cfg.MaxEntrySize,
			Logger:       logger,
		}),
		WithDecoder(dec),
		WithQuery(manifest.Query{LauncherCategory: cfg.LauncherCategory}),
	), nil
}

// Identity returns the package name and launch component of the APK.
func (x *Extractor) Identity(content []byte) (manifest.Identity, error) {
	root, err := x.decodeManifest(content)
	if err != nil {
		return manifest.Identity{}, err
	}
	id, err := x.query.Identity(root)
	if err != nil {
		return manifest.Identity{}, err
	}
	x.logger.Debug("launch activity resolved", "package", id.Package, "activity", id.LaunchActivity)
	return id, nil
}

// Version returns the version code and parsed version name of the APK.
func (x *Extractor) Version(content []byte) (manifest.VersionInfo, error) {
	root, err := x.decodeManifest(content)
	if err != nil {
		return manifest.VersionInfo{}, err
	}
	return x.query.Version(root)
}

// Inspect runs both queries plus archive-level metadata. The manifest is
// decoded once and shared by both queries.
func (x *Extractor) Inspect(content []byte) (*Info, error) {
	root, err := x.decodeManifest(content)
	if err != nil {
		return nil, err
	}
	id, err := x.query.Identity(root)
	if err != nil {
		return nil, err
	}
	ver, err := x.query.Version(root)
	if err != nil {
		return nil, err
	}
	names, err := archive.ListEntries(content)
	if err != nil {
		return nil, err
	}

	sum := sha256.Sum256(content)
	return &Info{
		PackageID:      id.Package,
		LaunchActivity: id.LaunchActivity,
		VersionCode:    ver.Code,
		Version:        ver.Name,
		VersionRaw:     ver.Raw,
		Architectures:  archive.Architectures(names),
		FileSize:       int64(len(content)),
		SHA256:         hex.EncodeToString(sum[:]),
	}, nil
}

// Parse reads the APK at path into memory and inspects it.
func (x *Extractor) Parse(path string) (*Info, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read APK: %w", err)
	}
	info, err := x.Inspect(content)
	if err != nil {
		return nil, err
	}
	info.FilePath = path
	return info, nil
}

// Parse inspects the APK at path with a default Extractor.
func Parse(path string) (*Info, error) {
	return New().Parse(path)
}

// decodeManifest resolves and decodes the manifest tree. The decoder returning
// neither a tree nor an error is reported as unreadable.
func (x *Extractor) decodeManifest(content []byte) (*manifest.Node, error) {
	data, err := x.resolver.Resolve(content)
	if err != nil {
		return nil, err
	}
	root, err := x.decoder.Decode(data)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, manifest.NewError(manifest.KindManifestUnreadable, manifest.StageDecode, "decoder returned no tree", nil)
	}
	return root, nil
}

// IsArm64 returns true if the APK supports arm64-v8a architecture.
func (a *Info) IsArm64() bool {
	for _, arch := range a.Architectures {
		if arch == "arm64-v8a" {
			return true
		}
	}
	// If no native libs, assume it's architecture-independent (pure Java/Kotlin)
	return len(a.Architectures) == 0
}

// String returns a human-readable summary of the APK.
func (a *Info) String() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Package: %s\n", a.PackageID)
	fmt.Fprintf(&buf, "Launch activity: %s\n", a.LaunchActivity)
	fmt.Fprintf(&buf, "Version: %s (%d)\n", a.Version, a.VersionCode)
	if a.VersionRaw != a.Version.String() {
		fmt.Fprintf(&buf, "Declared version: %s\n", a.VersionRaw)
	}
	fmt.Fprintf(&buf, "Architectures: %v\n", a.Architectures)
	if a.FilePath != "" {
		fmt.Fprintf(&buf, "Path: %s\n", a.FilePath)
	}
	fmt.Fprintf(&buf, "Size: %d bytes\n", a.FileSize)
	fmt.Fprintf(&buf, "SHA256: %s\n", a.SHA256)
	return buf.String()
}
