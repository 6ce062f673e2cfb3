package manifest

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

func TestDescendantsOrder(t *testing.T) {
	tree := el("manifest", nil,
		el("a", nil,
			el("a1", nil, el("a1x", nil)),
			el("a2", nil),
		),
		nil,
		el("b", nil, el("b1", nil)),
	)

	var got []string
	for n := range tree.Descendants() {
		got = append(got, n.Name)
	}
	want := []string{"a", "a1", "a1x", "a2", "b", "b1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Descendants() = %v, want %v", got, want)
	}
}

func TestDescendantsEarlyStop(t *testing.T) {
	tree := el("manifest", nil, el("a", nil, el("stop", nil), el("after", nil)), el("b", nil))

	var got []string
	for n := range tree.Descendants() {
		got = append(got, n.Name)
		if n.Name == "stop" {
			break
		}
	}
	want := []string{"a", "stop"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Descendants() with break = %v, want %v", got, want)
	}
}

func TestNodeAttr(t *testing.T) {
	n := el("manifest", []Attr{
		attr("package", "namespaced"),
		{Local: "package", Value: "first"},
		{Local: "package", Value: "second"},
	})

	a, ok := n.Attr("package")
	if !ok || a.Value != "first" {
		t.Errorf("Attr(package) = %+v, %v; want first unqualified", a, ok)
	}
	if _, ok := n.Attr("missing"); ok {
		t.Error("Attr(missing) found an attribute")
	}
}

func TestQualifiedName(t *testing.T) {
	if got := attr("versionCode", "1").QualifiedName(); got != "{"+androidNS+"}versionCode" {
		t.Errorf("QualifiedName() = %q", got)
	}
	if got := (Attr{Local: "package"}).QualifiedName(); got != "package" {
		t.Errorf("QualifiedName() = %q, want package", got)
	}
}

func TestErrorIs(t *testing.T) {
	sentinels := map[Kind]error{
		KindEmptyInput:            ErrEmptyInput,
		KindInvalidArchive:        ErrInvalidArchive,
		KindManifestNotFound:      ErrManifestNotFound,
		KindDecodeFailure:         ErrDecodeFailure,
		KindManifestUnreadable:    ErrManifestUnreadable,
		KindMissingPackageName:    ErrMissingPackageName,
		KindMissingLaunchActivity: ErrMissingLaunchActivity,
		KindIncompleteIdentity:    ErrIncompleteIdentity,
		KindMissingVersionInfo:    ErrMissingVersionInfo,
		KindInvalidVersionCode:    ErrInvalidVersionCode,
		KindInvalidVersionName:    ErrInvalidVersionName,
	}

	for kind, sentinel := range sentinels {
		t.Run(kind.String(), func(t *testing.T) {
			err := fmt.Errorf("wrapped: %w", NewError(kind, StageArchive, "detail", nil))
			if !errors.Is(err, sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", err, sentinel)
			}
			for other, s := range sentinels {
				if other != kind && errors.Is(err, s) {
					t.Errorf("errors.Is(%v, %v) = true", err, s)
				}
			}
			if KindOf(err) != kind {
				t.Errorf("KindOf() = %v, want %v", KindOf(err), kind)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	cause := errors.New("zip: not a valid zip file")
	err := NewError(KindInvalidArchive, StageArchive, "", cause)

	if got, want := err.Error(), "archive: invalid archive: zip: not a valid zip file"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want Unwrap to expose the cause")
	}
	if KindOf(cause) != KindUnknown {
		t.Error("KindOf(non-manifest error) should be KindUnknown")
	}
}
