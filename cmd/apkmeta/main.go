package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zapstore/apkmeta/internal/apk"
	"github.com/zapstore/apkmeta/internal/cli"
	"github.com/zapstore/apkmeta/internal/config"
	"github.com/zapstore/apkmeta/internal/help"
	"github.com/zapstore/apkmeta/internal/manifest"
	"github.com/zapstore/apkmeta/internal/ui"
)

var version = "dev"

// Exit codes.
const (
	exitOK          = 0
	exitUsage       = 1
	exitArchive     = 2
	exitDecode      = 3
	exitManifest    = 4
	exitInterrupted = cli.ExitInterrupted
)

func main() {
	// Set up signal handler first - this handles Ctrl+C globally
	sigHandler := cli.NewSignalHandler()
	defer sigHandler.Stop()

	exitCode := run(sigHandler.Context(), os.Args[1:])

	os.Exit(exitCode)
}

func run(ctx context.Context, args []string) int {
	ui.SetVersion(version)

	opts, err := cli.ParseArgs(args)
	if err != nil {
		fmt.Fprintln(ui.Err, ui.FormatError(err.Error(), "", "run 'apkmeta --help' for usage"))
		return exitUsage
	}

	if opts.Global.NoColor {
		ui.SetNoColor(true)
	}
	ui.SetVerbosity(opts.Global.Verbosity())
	ui.SetQuietMode(opts.Global.Quiet)

	if opts.Global.Help {
		help.HandleHelp(ui.Out, opts.Command)
		return exitOK
	}
	if opts.Global.Version {
		fmt.Fprint(ui.Out, ui.Title(ui.Logo))
		fmt.Fprintf(ui.Out, "apkmeta version %s\n", version)
		return exitOK
	}

	cfg, err := config.LoadOrDefault(opts.Global.Config)
	if err != nil {
		fmt.Fprintf(ui.Err, "Error: %v\n", err)
		return exitUsage
	}

	// Apply CLI flag overrides
	if opts.Global.Decoder != "" {
		cfg.Decoder = opts.Global.Decoder
	}
	if opts.Global.LauncherCategory != "" {
		cfg.LauncherCategory = opts.Global.LauncherCategory
	}

	logger := cli.NewLogger(ui.Err, opts.Global)
	if cfg.BaseDir != "" {
		logger.Debug("config loaded", "dir", cfg.BaseDir, "decoder", cfg.Decoder)
	}

	x, err := apk.FromConfig(cfg, logger)
	if err != nil {
		fmt.Fprintf(ui.Err, "Error: %v\n", err)
		return exitUsage
	}

	// Every file is processed; the first failure decides the exit code.
	code := exitOK
	for _, path := range opts.Args {
		if ctx.Err() != nil {
			return exitInterrupted
		}
		if err := runFile(x, opts, path); err != nil {
			reportError(path, err)
			if code == exitOK {
				code = exitCodeFor(err)
			}
		}
	}
	if ctx.Err() != nil {
		return exitInterrupted
	}
	return code
}

// runFile runs the selected command against one APK and prints its result.
func runFile(x *apk.Extractor, opts *cli.Options, path string) error {
	ui.Detail("Reading", path)

	if opts.Command == cli.CommandInspect {
		info, err := x.Parse(path)
		if err != nil {
			return err
		}
		ui.Detail("SHA256", info.SHA256)
		if opts.Inspect.JSON {
			return writeJSON(info)
		}
		ui.Status("Inspected", path)
		ui.Result(ui.RenderFields(infoFields(info)))
		return nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read APK: %w", err)
	}

	var line string
	switch opts.Command {
	case cli.CommandIdentity:
		id, err := x.Identity(content)
		if err != nil {
			return err
		}
		line = id.Package + "/" + id.LaunchActivity
	case cli.CommandVersion:
		v, err := x.Version(content)
		if err != nil {
			return err
		}
		line = fmt.Sprintf("%s (%d)", v.Name, v.Code)
	}

	if len(opts.Args) > 1 {
		line = path + ": " + line
	}
	ui.Result(line)
	return nil
}

// jsonInfo is the --json shape of apk.Info.
type jsonInfo struct {
	PackageID      string   `json:"package_id"`
	LaunchActivity string   `json:"launch_activity"`
	VersionName    string   `json:"version_name"`
	VersionCode    int32    `json:"version_code"`
	VersionRaw     string   `json:"version_raw"`
	VersionSemver  string   `json:"version_semver,omitempty"`
	Architectures  []string `json:"architectures"`
	FilePath       string   `json:"file_path"`
	FileSize       int64    `json:"file_size"`
	SHA256         string   `json:"sha256"`
}

func writeJSON(info *apk.Info) error {
	archs := info.Architectures
	if archs == nil {
		archs = []string{}
	}
	enc := json.NewEncoder(ui.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonInfo{
		PackageID:      info.PackageID,
		LaunchActivity: info.LaunchActivity,
		VersionName:    info.Version.String(),
		VersionCode:    info.VersionCode,
		VersionRaw:     info.VersionRaw,
		VersionSemver:  info.Version.Semver(),
		Architectures:  archs,
		FilePath:       info.FilePath,
		FileSize:       info.FileSize,
		SHA256:         info.SHA256,
	})
}

func infoFields(info *apk.Info) []ui.KeyValue {
	archs := ui.Dim("none (architecture independent)")
	if len(info.Architectures) > 0 {
		archs = fmt.Sprint(info.Architectures)
	}
	fields := []ui.KeyValue{
		{Key: "File", Value: filepath.Base(info.FilePath)},
		{Key: "Package", Value: info.PackageID},
		{Key: "Launch activity", Value: info.LaunchActivity},
		{Key: "Version", Value: fmt.Sprintf("%s (%d)", info.Version, info.VersionCode)},
	}
	if info.VersionRaw != info.Version.String() {
		fields = append(fields, ui.KeyValue{Key: "Declared version", Value: info.VersionRaw})
	}
	return append(fields,
		ui.KeyValue{Key: "Architectures", Value: archs},
		ui.KeyValue{Key: "Size", Value: fmt.Sprintf("%d bytes", info.FileSize)},
		ui.KeyValue{Key: "SHA256", Value: info.SHA256},
	)
}

// exitCodeFor maps an error to the exit code of the stage that produced it.
func exitCodeFor(err error) int {
	switch manifest.StageOf(err) {
	case manifest.StageArchive:
		return exitArchive
	case manifest.StageDecode:
		return exitDecode
	case manifest.StageIdentity, manifest.StageVersion:
		return exitManifest
	default:
		return exitUsage
	}
}

func reportError(path string, err error) {
	var fix string
	switch {
	case errors.Is(err, manifest.ErrManifestNotFound):
		fix = "set manifest_name in apkmeta.yaml if the archive uses another entry name"
	case errors.Is(err, manifest.ErrDecodeFailure):
		fix = "try --decoder androidbinary, or allow_plain_text: true for unpacked builds"
	case errors.Is(err, manifest.ErrMissingLaunchActivity):
		fix = "try --launcher-category android.intent.category.LEANBACK_LAUNCHER for TV apps"
	}
	if fix == "" || ui.QuietMode {
		ui.ErrorStatus("Failed", fmt.Sprintf("%s: %v", path, err))
		return
	}
	fmt.Fprintln(ui.Err, ui.FormatError(fmt.Sprintf("%s: %v", path, err), "", fix))
}
