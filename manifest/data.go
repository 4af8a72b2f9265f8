// Package manifest canonicalizes the resource manifest so that two builds
// with the same content serialize, and therefore hash, identically.
package manifest

import (
	"fmt"

	"github.com/iancoleman/orderedmap"
)

type (
	Manifest struct {
		root *orderedmap.OrderedMap
	}
	BundleURL struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	}
	ErrUnexpectedShape struct {
		Path string
		Want string
		Got  any
	}
)

const (
	KeyDaBaoTime       = "daBaoTime"
	KeyResURL          = "resUrl"
	KeyAssetBundleName = "assetBundleName"
	KeyResName         = "resname"
	KeyAssetAllRes     = "assetAllRes"
	KeyPathKey         = "pathKey"

	GroupPassivity = "passivityAssetBundles"
	GroupBase      = "BaseAssetBundles"
	GroupAdd       = "AddAssetBundles"
)

var (
	Groups = []string{GroupPassivity, GroupBase, GroupAdd}
	// VolatileKeys change with every build even when the resource does not.
	VolatileKeys = []string{"hashCode", "hasCodes"}
)

func (r ErrUnexpectedShape) Error() string {
	return fmt.Sprintf("manifest %s: want %s, got %T", r.Path, r.Want, r.Got)
}
