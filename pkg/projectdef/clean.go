// SPDX-License-Identifier: MPL-2.0

package projectdef

import (
	"strings"

	"github.com/scanrunner/scanrunner/pkg/fspath"
	"github.com/scanrunner/scanrunner/pkg/props"
)

// CleanAndCheck walks the finished tree in post-order. Aggregators drop the leaf-only
// properties and every property scoped to one of their children; leaves must point at
// existing source directories and get their library patterns expanded.
func CleanAndCheck(d *Definition) error {
	for _, child := range d.children {
		if err := CleanAndCheck(child); err != nil {
			return err
		}
	}
	if d.IsAggregator() {
		cleanAggregator(d)
		return nil
	}
	return checkLeaf(d)
}

func cleanAggregator(d *Definition) {
	for _, key := range leafOnly {
		delete(d.properties, key)
	}
	ids := d.childIDs()
	for _, key := range d.properties.Keys() {
		if props.HasAnyPrefix(key, ids) {
			delete(d.properties, key)
		}
	}
}

func checkLeaf(d *Definition) error {
	for _, path := range d.properties.List(KeySources) {
		if !fspath.IsDir(fspath.ResolveFile(path, d.baseDir)) {
			return &MissingSourceDirectoryError{Project: d.Key(), Path: path, BaseDir: d.baseDir}
		}
	}

	if !d.properties.Has(KeyLibraries) {
		return nil
	}
	var libs []string
	for _, pattern := range d.properties.List(KeyLibraries) {
		files, err := fspath.ResolveGlob(d.baseDir, pattern)
		if err != nil {
			return err
		}
		libs = append(libs, files...)
	}
	d.properties[KeyLibraries] = strings.Join(libs, ",")
	return nil
}
