package manifest

import (
	"strings"
)

// LauncherCategory marks a component as a user-visible entry point.
const LauncherCategory = "android.intent.category.LAUNCHER"

// Identity is the package id and its launch component.
type Identity struct {
	Package        string
	LaunchActivity string
}

// Query runs identity and version lookups. The zero value is ready to use.
type Query struct {
	// LauncherCategory overrides the category value that marks the launch
	// component, e.g. "android.intent.category.LEANBACK_LAUNCHER" for TV apps.
	LauncherCategory string
}

// DefaultQuery matches android.intent.category.LAUNCHER.
var DefaultQuery = Query{}

// GetIdentity runs DefaultQuery.Identity.
func GetIdentity(root *Node) (Identity, error) {
	return DefaultQuery.Identity(root)
}

func (q Query) launcher() string {
	if q.LauncherCategory == "" {
		return LauncherCategory
	}
	return q.LauncherCategory
}

// Identity returns the package name and the first launcher component in
// document order.
func (q Query) Identity(root *Node) (Identity, error) {
	if err := checkRoot(root, StageIdentity); err != nil {
		return Identity{}, err
	}

	pkg, ok := root.Attr("package")
	if !ok || isBlank(pkg.Value) {
		return Identity{}, NewError(KindMissingPackageName, StageIdentity, "manifest has no package attribute", nil)
	}

	activity, sawLauncher := q.findLaunchActivity(root)
	if activity == "" {
		if sawLauncher {
			return Identity{}, NewError(KindIncompleteIdentity, StageIdentity, "launcher component has no name", nil)
		}
		return Identity{}, NewError(KindMissingLaunchActivity, StageIdentity, "no component declares category "+q.launcher(), nil)
	}
	if isBlank(activity) {
		return Identity{}, NewError(KindIncompleteIdentity, StageIdentity, "launcher component name is blank", nil)
	}

	return Identity{
		Package:        strings.Clone(pkg.Value),
		LaunchActivity: strings.Clone(activity),
	}, nil
}

// findLaunchActivity returns the name of the first component that declares
// the launcher category. sawLauncher reports whether any component matched
// the category, named or not.
func (q Query) findLaunchActivity(root *Node) (name string, sawLauncher bool) {
	launcher := q.launcher()
	for node := range root.Descendants() {
		if !isComponent(node) || !hasCategory(node, launcher) {
			continue
		}
		sawLauncher = true
		if attr, ok := componentName(node); ok && attr.Value != "" {
			return attr.Value, true
		}
	}
	return "", sawLauncher
}

func isComponent(n *Node) bool {
	return n.Name == "activity" || n.Name == "activity-alias"
}

// hasCategory reports whether any category below component carries an
// attribute whose value is category.
func hasCategory(component *Node, category string) bool {
	for node := range component.Descendants() {
		if !strings.EqualFold(node.Name, "category") {
			continue
		}
		for _, a := range node.Attrs {
			if strings.EqualFold(a.Value, category) {
				return true
			}
		}
	}
	return false
}

func componentName(component *Node) (Attr, bool) {
	for _, a := range component.Attrs {
		if strings.EqualFold(a.Local, "name") {
			return a, true
		}
	}
	return Attr{}, false
}

func checkRoot(root *Node, stage Stage) error {
	if root == nil {
		return NewError(KindManifestUnreadable, stage, "no manifest tree", nil)
	}
	if root.Name != RootName {
		return NewError(KindManifestUnreadable, stage, "root element is "+root.Name+", want "+RootName, nil)
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
