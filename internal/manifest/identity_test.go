package manifest

import (
	"errors"
	"testing"
)

const androidNS = "http://schemas.android.com/apk/res/android"

func attr(local, value string) Attr {
	return Attr{Space: androidNS, Local: local, Value: value}
}

func el(name string, attrs []Attr, children ...*Node) *Node {
	return &Node{Name: name, Attrs: attrs, Children: children}
}

func launcherFilter() *Node {
	return el("intent-filter", nil,
		el("action", []Attr{attr("name", "android.intent.action.MAIN")}),
		el("category", []Attr{attr("name", LauncherCategory)}),
	)
}

func activity(name string, children ...*Node) *Node {
	return el("activity", []Attr{attr("name", name)}, children...)
}

func root(pkg string, children ...*Node) *Node {
	var attrs []Attr
	if pkg != "" {
		attrs = append(attrs, Attr{Local: "package", Value: pkg})
	}
	return el("manifest", attrs, el("application", nil, children...))
}

func TestIdentity(t *testing.T) {
	tests := []struct {
		name         string
		tree         *Node
		wantPackage  string
		wantActivity string
		wantKind     Kind
	}{
		{
			name:         "single launcher",
			tree:         root("com.example.app", activity("com.example.app.MainActivity", launcherFilter())),
			wantPackage:  "com.example.app",
			wantActivity: "com.example.app.MainActivity",
		},
		{
			name: "first launcher in document order wins",
			tree: root("com.example.app",
				activity(".Settings"),
				activity(".First", launcherFilter()),
				activity(".Second", launcherFilter()),
			),
			wantPackage:  "com.example.app",
			wantActivity: ".First",
		},
		{
			name: "activity-alias counts as a component",
			tree: root("com.example.app",
				activity(".Real"),
				el("activity-alias", []Attr{attr("name", ".Alias"), attr("targetActivity", ".Real")}, launcherFilter()),
			),
			wantPackage:  "com.example.app",
			wantActivity: ".Alias",
		},
		{
			name: "category matched case-insensitively on name and value",
			tree: root("com.example.app",
				activity(".Main", el("intent-filter", nil,
					el("CATEGORY", []Attr{attr("name", "ANDROID.INTENT.CATEGORY.launcher")}),
				)),
			),
			wantPackage:  "com.example.app",
			wantActivity: ".Main",
		},
		{
			name: "category nested deeper than intent-filter",
			tree: root("com.example.app",
				activity(".Deep", el("intent-filter", nil, el("wrapper", nil,
					el("category", []Attr{attr("name", LauncherCategory)}),
				))),
			),
			wantPackage:  "com.example.app",
			wantActivity: ".Deep",
		},
		{
			name: "category value matched on any attribute",
			tree: root("com.example.app",
				activity(".Any", el("intent-filter", nil,
					el("category", []Attr{attr("label", "x"), {Local: "other", Value: LauncherCategory}}),
				)),
			),
			wantPackage:  "com.example.app",
			wantActivity: ".Any",
		},
		{
			name: "component name attribute matched case-insensitively",
			tree: root("com.example.app",
				el("activity", []Attr{{Local: "NAME", Value: ".Upper"}}, launcherFilter()),
			),
			wantPackage:  "com.example.app",
			wantActivity: ".Upper",
		},
		{
			name: "components outside application are found",
			tree: el("manifest", []Attr{{Local: "package", Value: "com.example.app"}},
				activity(".TopLevel", launcherFilter()),
			),
			wantPackage:  "com.example.app",
			wantActivity: ".TopLevel",
		},
		{
			name: "unnamed launcher is skipped for a later named one",
			tree: root("com.example.app",
				el("activity", nil, launcherFilter()),
				activity(".Named", launcherFilter()),
			),
			wantPackage:  "com.example.app",
			wantActivity: ".Named",
		},
		{
			name:     "no launcher",
			tree:     root("com.example.app", activity(".A"), activity(".B"), activity(".C")),
			wantKind: KindMissingLaunchActivity,
		},
		{
			name:     "no components at all",
			tree:     root("com.example.app"),
			wantKind: KindMissingLaunchActivity,
		},
		{
			name: "category outside a component does not count",
			tree: root("com.example.app",
				el("receiver", []Attr{attr("name", ".Boot")}, launcherFilter()),
			),
			wantKind: KindMissingLaunchActivity,
		},
		{
			name:     "missing package with valid launcher",
			tree:     root("", activity(".Main", launcherFilter())),
			wantKind: KindMissingPackageName,
		},
		{
			name:     "blank package",
			tree:     root("   ", activity(".Main", launcherFilter())),
			wantKind: KindMissingPackageName,
		},
		{
			name: "namespaced package attribute is ignored",
			tree: el("manifest", []Attr{attr("package", "com.example.app")},
				activity(".Main", launcherFilter()),
			),
			wantKind: KindMissingPackageName,
		},
		{
			name:     "launcher without a name",
			tree:     root("com.example.app", el("activity", nil, launcherFilter())),
			wantKind: KindIncompleteIdentity,
		},
		{
			name:     "launcher with an empty name",
			tree:     root("com.example.app", activity("", launcherFilter())),
			wantKind: KindIncompleteIdentity,
		},
		{
			name:     "launcher with a blank name",
			tree:     root("com.example.app", activity("  ", launcherFilter())),
			wantKind: KindIncompleteIdentity,
		},
		{
			name:     "nil tree",
			tree:     nil,
			wantKind: KindManifestUnreadable,
		},
		{
			name:     "wrong root",
			tree:     el("application", []Attr{{Local: "package", Value: "com.example.app"}}),
			wantKind: KindManifestUnreadable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GetIdentity(tt.tree)
			if tt.wantKind != KindUnknown {
				if err == nil {
					t.Fatalf("GetIdentity() = %+v, want %v error", got, tt.wantKind)
				}
				if k := KindOf(err); k != tt.wantKind {
					t.Fatalf("GetIdentity() error kind = %v (%v), want %v", k, err, tt.wantKind)
				}
				if (got != Identity{}) {
					t.Errorf("GetIdentity() returned partial result %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetIdentity() error = %v", err)
			}
			if got.Package != tt.wantPackage {
				t.Errorf("Package = %q, want %q", got.Package, tt.wantPackage)
			}
			if got.LaunchActivity != tt.wantActivity {
				t.Errorf("LaunchActivity = %q, want %q", got.LaunchActivity, tt.wantActivity)
			}
		})
	}
}

func TestIdentityDeterministic(t *testing.T) {
	tree := root("com.example.app",
		activity(".One", launcherFilter()),
		activity(".Two", launcherFilter()),
		activity(".Three", launcherFilter()),
	)

	first, err := GetIdentity(tree)
	if err != nil {
		t.Fatalf("GetIdentity() error = %v", err)
	}
	for i := 0; i < 50; i++ {
		got, err := GetIdentity(tree)
		if err != nil {
			t.Fatalf("run %d: GetIdentity() error = %v", i, err)
		}
		if got != first {
			t.Fatalf("run %d: GetIdentity() = %+v, want %+v", i, got, first)
		}
	}
	if first.LaunchActivity != ".One" {
		t.Errorf("LaunchActivity = %q, want .One", first.LaunchActivity)
	}
}

func TestIdentityAlternateLauncher(t *testing.T) {
	const leanback = "android.intent.category.LEANBACK_LAUNCHER"
	tree := root("com.example.tv",
		activity(".Phone", launcherFilter()),
		activity(".TV", el("intent-filter", nil, el("category", []Attr{attr("name", leanback)}))),
	)

	q := Query{LauncherCategory: leanback}
	got, err := q.Identity(tree)
	if err != nil {
		t.Fatalf("Identity() error = %v", err)
	}
	if got.LaunchActivity != ".TV" {
		t.Errorf("LaunchActivity = %q, want .TV", got.LaunchActivity)
	}
}

func TestIdentityErrorStage(t *testing.T) {
	_, err := GetIdentity(root("com.example.app"))
	if !errors.Is(err, ErrMissingLaunchActivity) {
		t.Fatalf("error = %v, want ErrMissingLaunchActivity", err)
	}
	if s := StageOf(err); s != StageIdentity {
		t.Errorf("StageOf() = %q, want %q", s, StageIdentity)
	}
}
