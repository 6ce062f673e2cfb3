package axml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/avast/apkparser"
	"github.com/shogo82148/androidbinary"

	"github.com/zapstore/apkmeta/internal/manifest"
)

// Decoder names accepted by ByName.
const (
	NameAPKParser     = "apkparser"
	NameAndroidBinary = "androidbinary"
	NameText          = "text"
)

// BinaryDecoder reads compiled AXML with github.com/avast/apkparser.
type BinaryDecoder struct {
	// AllowPlainText decodes manifests that were stored as text XML
	// instead of rejecting them.
	AllowPlainText bool
	Logger         *slog.Logger
}

func (d BinaryDecoder) Decode(data []byte) (root *manifest.Node, err error) {
	if len(data) == 0 {
		return nil, decodeError("manifest entry is empty", nil)
	}
	defer recoverDecode("apkparser", &root, &err)

	var b treeBuilder
	if err := apkparser.ParseXml(bytes.NewReader(data), &b, nil); err != nil {
		if errors.Is(err, apkparser.ErrPlainTextManifest) {
			if !d.AllowPlainText {
				return nil, decodeError("manifest is plain text, binary form expected", err)
			}
			if d.Logger != nil {
				d.Logger.Warn("manifest is stored as plain text XML")
			}
			return TextDecoder{}.Decode(data)
		}
		return nil, decodeError("binary xml", err)
	}

	tree, err := b.tree()
	if err != nil {
		return nil, decodeError("binary xml", err)
	}
	return tree, nil
}

// ResourceDecoder reads compiled AXML with github.com/shogo82148/androidbinary,
// then tokenizes the rendered text.
type ResourceDecoder struct{}

func (ResourceDecoder) Decode(data []byte) (root *manifest.Node, err error) {
	if len(data) == 0 {
		return nil, decodeError("manifest entry is empty", nil)
	}
	defer recoverDecode("androidbinary", &root, &err)

	xf, err := androidbinary.NewXMLFile(bytes.NewReader(data))
	if err != nil {
		return nil, decodeError("binary xml", err)
	}
	text, err := io.ReadAll(xf.Reader())
	if err != nil {
		return nil, decodeError("binary xml", err)
	}
	tree, err := decodeText(text)
	if err != nil {
		return nil, decodeError("rendered xml", err)
	}
	return tree, nil
}

// recoverDecode converts a panic inside a third-party reader into a
// DecodeFailure.
func recoverDecode(lib string, root **manifest.Node, err *error) {
	if r := recover(); r != nil {
		*root = nil
		*err = decodeError(lib+" panicked", fmt.Errorf("%v", r))
	}
}

// ByName returns the decoder registered under name.
func ByName(name string, allowPlainText bool, logger *slog.Logger) (Decoder, error) {
	switch name {
	case "", NameAPKParser:
		return BinaryDecoder{AllowPlainText: allowPlainText, Logger: logger}, nil
	case NameAndroidBinary:
		return ResourceDecoder{}, nil
	case NameText:
		return TextDecoder{}, nil
	default:
		return nil, fmt.Errorf("unknown decoder %q: must be one of %s, %s, %s", name, NameAPKParser, NameAndroidBinary, NameText)
	}
}
