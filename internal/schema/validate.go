package schema

import (
	"fmt"

	"github.com/synnergychain/stream-processor-sdk/pkg/errs"
)

// Validate enforces the invariants of spec.md §3/§4.3:
//   - every entity has an id field
//   - timeseries entities additionally require a timestamp field and a
//     64-bit integer id
//   - fields marked @derivedFrom must be list-typed and reference an
//     existing back-pointer field on the target entity
//   - referenced types must exist
//
// It also warns (non-fatal) on circular object references and on
// derived-from back pointers that do not reference this entity.
func Validate(doc *Document) (*Schema, error) {
	rawByName := make(map[string]RawEntity, len(doc.Entities))
	for _, e := range doc.Entities {
		rawByName[e.Name] = e
	}

	sc := &Schema{Entities: make(map[string]*Entity, len(doc.Entities))}

	for _, raw := range doc.Entities {
		ent := &Entity{
			Name:       raw.Name,
			TableName:  raw.Name,
			Timeseries: raw.Timeseries,
			Immutable:  raw.Immutable,
		}
		for _, rf := range raw.Fields {
			scalar, target := resolveType(rf.Type, rawByName)
			if target != "" {
				if _, ok := rawByName[target]; !ok {
					return nil, errs.New(errs.KindSchema, fmt.Sprintf("entity %s field %s references undefined type %s", raw.Name, rf.Name, target))
				}
			}
			f := Field{
				Name:         rf.Name,
				Type:         scalar,
				TargetEntity: target,
				List:         rf.List,
				Required:     rf.Required,
				Unique:       rf.Unique,
				Indexed:      rf.Index,
				DerivedFrom:  rf.DerivedFrom,
			}
			ent.Fields = append(ent.Fields, f)
		}
		sc.Entities[ent.Name] = ent
	}

	for _, ent := range sc.Entities {
		idField := ent.Field("id")
		if idField == nil {
			return nil, errs.New(errs.KindSchema, fmt.Sprintf("entity %s has no id field", ent.Name))
		}
		ent.idField = idField

		if ent.Timeseries {
			if idKind(idField) != IDInt64 {
				return nil, errs.New(errs.KindSchema, fmt.Sprintf("timeseries entity %s must use a 64-bit integer id", ent.Name))
			}
			tsField := ent.Field("timestamp")
			if tsField == nil || tsField.Type != ScalarTimestamp {
				return nil, errs.New(errs.KindSchema, fmt.Sprintf("timeseries entity %s requires a timestamp field", ent.Name))
			}
			ent.timestampFld = tsField
		}

		for _, f := range ent.Fields {
			if f.DerivedFrom == "" {
				continue
			}
			if !f.List {
				return nil, errs.New(errs.KindSchema, fmt.Sprintf("entity %s field %s is @derivedFrom but not list-typed", ent.Name, f.Name))
			}
			if f.TargetEntity == "" {
				return nil, errs.New(errs.KindSchema, fmt.Sprintf("entity %s field %s is @derivedFrom but has no target entity type", ent.Name, f.Name))
			}
			target, ok := sc.Entities[f.TargetEntity]
			if !ok {
				return nil, errs.New(errs.KindSchema, fmt.Sprintf("entity %s field %s targets undefined entity %s", ent.Name, f.Name, f.TargetEntity))
			}
			back := target.Field(f.DerivedFrom)
			if back == nil {
				sc.Warnings = append(sc.Warnings, fmt.Sprintf(
					"entity %s field %s: @derivedFrom(%s) does not reference an existing field on %s",
					ent.Name, f.Name, f.DerivedFrom, f.TargetEntity))
				continue
			}
			if back.TargetEntity != ent.Name {
				sc.Warnings = append(sc.Warnings, fmt.Sprintf(
					"entity %s field %s: back-pointer %s.%s does not target %s",
					ent.Name, f.Name, f.TargetEntity, f.DerivedFrom, ent.Name))
			}
		}
	}

	sc.Warnings = append(sc.Warnings, detectCycles(sc)...)

	return sc, nil
}

// idKind determines the IDKind implied by a resolved id field.
func idKind(f *Field) IDKind {
	switch f.Type {
	case ScalarInt:
		return IDInt64
	case ScalarID:
		return IDUUID
	default:
		return IDString
	}
}

// detectCycles walks entity-reference edges (fields whose Type resolves to
// another entity) and reports any cycle as a warning, never an error: a
// self-referential or mutually-referential entity graph is legal, just
// worth flagging (spec.md §4.3).
func detectCycles(sc *Schema) []string {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(sc.Entities))
	var warnings []string
	var visit func(name string, path []string) bool
	visit = func(name string, path []string) bool {
		color[name] = gray
		path = append(path, name)
		ent := sc.Entities[name]
		for _, f := range ent.Fields {
			if f.TargetEntity == "" || f.DerivedFrom != "" {
				continue
			}
			switch color[f.TargetEntity] {
			case gray:
				warnings = append(warnings, fmt.Sprintf("circular reference detected: %v -> %s", path, f.TargetEntity))
				return true
			case white:
				if visit(f.TargetEntity, path) {
					return true
				}
			}
		}
		color[name] = black
		return false
	}
	for name := range sc.Entities {
		if color[name] == white {
			visit(name, nil)
		}
	}
	return warnings
}
