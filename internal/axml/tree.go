// Package axml decodes AndroidManifest.xml entries into manifest trees.
//
// Binary (compiled) manifests are handled by third-party AXML readers; the
// token stream they produce is assembled into a *manifest.Node by a shared
// tree builder. Textual manifests go through encoding/xml.
package axml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/zapstore/apkmeta/internal/manifest"
)

// Decoder turns manifest entry bytes into a tree.
type Decoder interface {
	Decode(data []byte) (*manifest.Node, error)
}

// treeBuilder assembles xml tokens into a manifest tree. It satisfies
// apkparser.ManifestEncoder.
type treeBuilder struct {
	root  *manifest.Node
	stack []*manifest.Node
}

var (
	errMultipleRoots = errors.New("more than one root element")
	errUnbalanced    = errors.New("unbalanced element")
	errNoRoot        = errors.New("no root element")
)

func (b *treeBuilder) EncodeToken(tok xml.Token) error {
	switch t := tok.(type) {
	case xml.StartElement:
		if len(b.stack) == 0 && b.root != nil {
			return errMultipleRoots
		}
		n := &manifest.Node{
			Space: t.Name.Space,
			Name:  t.Name.Local,
			Attrs: make([]manifest.Attr, 0, len(t.Attr)),
		}
		for _, a := range t.Attr {
			n.Attrs = append(n.Attrs, manifest.Attr{
				Space: a.Name.Space,
				Local: a.Name.Local,
				Value: a.Value,
			})
		}
		if len(b.stack) == 0 {
			b.root = n
		} else {
			parent := b.stack[len(b.stack)-1]
			parent.Children = append(parent.Children, n)
		}
		b.stack = append(b.stack, n)
	case xml.EndElement:
		if len(b.stack) == 0 {
			return fmt.Errorf("%w: unexpected </%s>", errUnbalanced, t.Name.Local)
		}
		top := b.stack[len(b.stack)-1]
		if top.Name != t.Name.Local {
			return fmt.Errorf("%w: </%s> closes <%s>", errUnbalanced, t.Name.Local, top.Name)
		}
		b.stack = b.stack[:len(b.stack)-1]
	}
	return nil
}

// Flush is called by apkparser on every exit path, including errors, so the
// tree is checked separately by tree().
func (b *treeBuilder) Flush() error {
	return nil
}

// tree returns the finished tree once the stream is complete.
func (b *treeBuilder) tree() (*manifest.Node, error) {
	if b.root == nil {
		return nil, errNoRoot
	}
	if len(b.stack) != 0 {
		names := make([]string, len(b.stack))
		for i, n := range b.stack {
			names[i] = n.Name
		}
		return nil, fmt.Errorf("%w: unclosed %s", errUnbalanced, strings.Join(names, " > "))
	}
	return b.root, nil
}

func decodeError(detail string, err error) error {
	return manifest.NewError(manifest.KindDecodeFailure, manifest.StageDecode, detail, err)
}

// TextDecoder decodes a plain-text XML manifest.
type TextDecoder struct{}

func (TextDecoder) Decode(data []byte) (*manifest.Node, error) {
	if len(data) == 0 {
		return nil, decodeError("manifest entry is empty", nil)
	}
	root, err := decodeText(data)
	if err != nil {
		return nil, decodeError("text xml", err)
	}
	return root, nil
}

func decodeText(data []byte) (*manifest.Node, error) {
	d := xml.NewDecoder(bytes.NewReader(data))
	var b treeBuilder
	for {
		tok, err := d.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		if err := b.EncodeToken(tok); err != nil {
			return nil, err
		}
	}
	return b.tree()
}
