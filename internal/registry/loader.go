// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 lambdamorph Contributors

package registry

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/samber/oops"
)

// LoadDir registers every *.morph file found directly under dir into r,
// in lexical filename order, so that registration (and therefore hash
// history) is deterministic across runs.
func LoadDir(r *Registry, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return oops.With("dir", dir).Wrapf(err, "registry: read directory")
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".morph" {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := loadFile(r, path); err != nil {
			return err
		}
	}
	return nil
}

func loadFile(r *Registry, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return oops.With("path", path).Wrapf(err, "registry: open morphfile")
	}
	defer f.Close()

	m, err := ParseMorphFile(f)
	if err != nil {
		return oops.With("path", path).Wrapf(err, "registry: parse morphfile")
	}
	if _, err := r.Register(m); err != nil {
		return oops.With("path", path).Wrapf(err, "registry: register morphism")
	}
	return nil
}
