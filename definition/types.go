/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package definition

// File is the root of a mapping definition file.
type File struct {
	Version  string            `yaml:"version"`
	Entities []Entity          `yaml:"entities,omitempty"`
	Types    map[string]string `yaml:"types,omitempty"`
	// ForceTypes replaces existing type-level DbType mappings of Types instead of
	// failing.
	ForceTypes bool `yaml:"forcetypes,omitempty"`
}

// Entity holds the mappings of one entity type.
type Entity struct {
	// Type is the catalog name of the entity type.
	Type string `yaml:"type"`
	// Force replaces existing mappings instead of failing.
	Force bool `yaml:"force,omitempty"`

	Table      string                `yaml:"table,omitempty"`
	Primary    string                `yaml:"primary,omitempty"`
	Identity   string                `yaml:"identity,omitempty"`
	Columns    map[string]string     `yaml:"columns,omitempty"`
	DbTypes    map[string]string     `yaml:"dbtypes,omitempty"`
	Attributes map[string]Attributes `yaml:"attributes,omitempty"`
}

// Attributes are the parameter attributes of one property. Unset fields are not
// mapped.
type Attributes struct {
	Name      string `yaml:"name,omitempty"`
	DbType    string `yaml:"dbtype,omitempty"`
	Size      *int   `yaml:"size,omitempty"`
	Precision *uint8 `yaml:"precision,omitempty"`
	Scale     *uint8 `yaml:"scale,omitempty"`
	Nullable  *bool  `yaml:"nullable,omitempty"`
}

func (a Attributes) empty() bool {
	return a.Name == "" && a.DbType == "" && a.Size == nil && a.Precision == nil &&
		a.Scale == nil && a.Nullable == nil
}

// Stats counts the directives of a file.
type Stats struct {
	Entities   int
	Tables     int
	Keys       int
	Columns    int
	DbTypes    int
	Attributes int
	Types      int
}

// Stats counts the directives of f.
func (f *File) Stats() Stats {
	var s Stats
	s.Entities = len(f.Entities)
	s.Types = len(f.Types)
	for _, e := range f.Entities {
		if e.Table != "" {
			s.Tables++
		}
		if e.Primary != "" {
			s.Keys++
		}
		if e.Identity != "" {
			s.Keys++
		}
		s.Columns += len(e.Columns)
		s.DbTypes += len(e.DbTypes)
		s.Attributes += len(e.Attributes)
	}
	return s
}
