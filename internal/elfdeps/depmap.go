// SPDX-FileCopyrightText: 2024 The elfpack authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package elfdeps

import (
	"fmt"
	"log/slog"
	"maps"
	"path/filepath"
	"slices"
)

// Map maps a soname to the sorted list of library file names required to
// load it, always including the soname's own file. It is built once from a
// fixed pool by [BuildMap] and not mutated afterwards.
type Map map[string][]string

// BuildMap computes the complete transitive dependency closure for every
// library in the pool.
//
// Each pool path is analyzed with [Extract]. A library without a DT_SONAME
// entry is known by its file's base name. interpSoName is passed through to
// [Extract]. A soname referenced anywhere in the pool that has no file in
// the pool is reported as a [MissingDependencyError].
func BuildMap(pool []string, interpSoName string) (Map, error) {
	sonameToFile := make(map[string]string, len(pool))
	direct := make(map[string][]string, len(pool))

	for _, path := range pool {
		metadata, err := Extract(path, interpSoName)
		if err != nil {
			return nil, fmt.Errorf("[%s]: %w", path, err)
		}

		soname := metadata.SoName
		if soname == "" {
			soname = filepath.Base(path)
		}

		sonameToFile[soname] = filepath.Base(path)
		direct[soname] = metadata.Deps
	}

	depMap := make(Map, len(direct))

	for soname := range direct {
		closure, err := closureOf(direct, soname)
		if err != nil {
			return nil, err
		}

		files := make([]string, 0, len(closure))
		for dep := range closure {
			files = append(files, sonameToFile[dep])
		}

		slices.Sort(files)

		depMap[soname] = files
	}

	return depMap, nil
}

// FilesFor returns the sorted union of the closures of the given sonames.
//
// A soname without an entry in the map is skipped, as it refers to a library
// outside the supplied pool.
func (m Map) FilesFor(sonames []string) []string {
	union := make(map[string]struct{})

	for _, soname := range sonames {
		files, ok := m[soname]
		if !ok {
			slog.Debug("Soname not in library pool, skipping",
				slog.String("soname", soname))
			continue
		}

		for _, file := range files {
			union[file] = struct{}{}
		}
	}

	result := make([]string, 0, len(union))
	result = append(result, slices.Sorted(maps.Keys(union))...)

	return result
}

// closureOf computes the set of sonames required to load root, including
// root itself. It walks the direct dependency graph iteratively with a
// visited set, so it terminates on cyclic graphs.
func closureOf(
	direct map[string][]string,
	root string,
) (map[string]struct{}, error) {
	visited := map[string]struct{}{root: {}}
	queue := []string{root}

	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		for _, dep := range direct[next] {
			if _, ok := visited[dep]; ok {
				continue
			}

			if _, ok := direct[dep]; !ok {
				return nil, &MissingDependencyError{
					SoName:   dep,
					NeededBy: next,
				}
			}

			visited[dep] = struct{}{}
			queue = append(queue, dep)
		}
	}

	return visited, nil
}
