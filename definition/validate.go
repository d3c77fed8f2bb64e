/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package definition

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/suparena/entitymap/errors"
	"github.com/suparena/entitymap/mapping"
)

// Validate checks f without resolving any type: versions, blank names, DbType names
// and duplicate entities. All problems are reported in one joined error.
func Validate(f *File) error {
	if f == nil {
		return errors.NewNullArgumentError("file")
	}

	var errs []error
	add := func(where, format string, args ...any) {
		errs = append(errs, errors.NewInvalidArgumentError(where, fmt.Sprintf(format, args...)))
	}

	if f.Version != CurrentVersion {
		add("version", "unsupported version %q", f.Version)
	}

	seen := make(map[string]int, len(f.Entities))
	for i, e := range f.Entities {
		where := fmt.Sprintf("entities[%d]", i)
		if blank(e.Type) {
			add(where, "type must not be blank")
		} else {
			where = e.Type
			if first, dup := seen[e.Type]; dup {
				add(where, "duplicate entity definition (first at entities[%d])", first)
			} else {
				seen[e.Type] = i
			}
		}

		if e.Table != "" && blank(e.Table) {
			add(where+".table", "must not be blank")
		}
		if e.Primary != "" && blank(e.Primary) {
			add(where+".primary", "must not be blank")
		}
		if e.Identity != "" && blank(e.Identity) {
			add(where+".identity", "must not be blank")
		}
		for _, prop := range sortedKeys(e.Columns) {
			if blank(prop) || blank(e.Columns[prop]) {
				add(where+".columns", "property %q: names must not be blank", prop)
			}
		}
		for _, prop := range sortedKeys(e.DbTypes) {
			if blank(prop) {
				add(where+".dbtypes", "property name must not be blank")
			}
			if _, err := mapping.ParseDbType(e.DbTypes[prop]); err != nil {
				add(where+".dbtypes", "property %q: unknown DbType %q", prop, e.DbTypes[prop])
			}
		}
		for _, prop := range sortedKeys(e.Attributes) {
			a := e.Attributes[prop]
			if blank(prop) {
				add(where+".attributes", "property name must not be blank")
			}
			if a.empty() {
				add(where+".attributes", "property %q: no attributes", prop)
			}
			if a.DbType != "" {
				if _, err := mapping.ParseDbType(a.DbType); err != nil {
					add(where+".attributes", "property %q: unknown DbType %q", prop, a.DbType)
				}
			}
		}
	}

	for _, name := range sortedKeys(f.Types) {
		if blank(name) {
			add("types", "type name must not be blank")
		}
		if _, err := mapping.ParseDbType(f.Types[name]); err != nil {
			add("types", "type %q: unknown DbType %q", name, f.Types[name])
		}
	}

	return stderrors.Join(errs...)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
