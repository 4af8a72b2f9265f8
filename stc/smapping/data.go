// Package smapping holds the externally maintained table schemas and the
// rules for fitting them onto the physical columns of a table.
package smapping

import (
	"fmt"
)

type (
	Schema struct {
		Name   string   `json:"name"`
		Fields []string `json:"fields"`
	}
	DriftKind string
	// Drift describes a recoverable disagreement between a schema and the
	// physical column count. It is reported, never returned as an error.
	Drift struct {
		Kind     DriftKind `json:"kind"`
		Declared int       `json:"declared"`
		Physical int       `json:"physical"`
	}
	ErrDuplicateField struct {
		Schema string
		Field  string
	}
	ErrSchemaNotFound struct {
		TableID string
		Path    string
	}
)

const (
	// DriftRedundant means the schema declares more fields than the table has.
	DriftRedundant = DriftKind("redundant")
	// DriftUnknown means the table has columns the schema does not name yet.
	DriftUnknown = DriftKind("unknown")

	UnknownFieldPrefix = "unk_"
)

func (r Drift) String() string {
	return fmt.Sprintf("%s fields: declared %d, physical %d", r.Kind, r.Declared, r.Physical)
}

func (r ErrDuplicateField) Error() string {
	return fmt.Sprintf(`schema "%s" declares field "%s" more than once`, r.Schema, r.Field)
}

func (r ErrSchemaNotFound) Error() string {
	return fmt.Sprintf(`no schema for table "%s" at %s`, r.TableID, r.Path)
}
