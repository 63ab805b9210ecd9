package schema

import (
	"io"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/synnergychain/stream-processor-sdk/pkg/errs"
)

// knownScalars is used to decide whether a declared field type is one of the
// recognized scalars, an entity reference, or an unknown name that gets
// silently promoted to String.
var knownScalars = map[string]ScalarType{
	"ID":         ScalarID,
	"String":     ScalarString,
	"Int":        ScalarInt,
	"Int8":       ScalarInt8,
	"Boolean":    ScalarBoolean,
	"BigInt":     ScalarBigInt,
	"BigDecimal": ScalarBigDecimal,
	"Bytes":      ScalarBytes,
	"Timestamp":  ScalarTimestamp,
}

// Parse reads a GraphQL SDL schema document and extracts every object type
// carrying an @entity directive, along with its @unique/@index/@derivedFrom
// field directives (spec.md §4.3). It performs a bare syntax parse only —
// object types with no directive definitions in scope still parse, since
// @entity/@derivedFrom/@unique/@index are never declared via a
// `directive @entity on OBJECT` line in practice — and no cross-entity
// validation; call Validate on the result. Object types with no @entity
// directive are skipped, so a document may freely mix entity declarations
// with plain GraphQL types.
func Parse(r io.Reader) (*Document, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, errs.Wrap(errs.KindSchema, err, "read schema document")
	}

	astDoc, gqlErr := parser.ParseSchema(&ast.Source{Name: "schema.graphql", Input: string(content)})
	if gqlErr != nil {
		return nil, errs.Wrap(errs.KindSchema, gqlErr, "parse schema document")
	}

	doc := &Document{}
	for _, def := range astDoc.Definitions {
		if def.Kind != ast.Object {
			continue
		}
		dir := def.Directives.ForName("entity")
		if dir == nil {
			continue
		}
		doc.Entities = append(doc.Entities, buildRawEntity(def, dir))
	}
	return doc, nil
}

func buildRawEntity(def *ast.Definition, entityDir *ast.Directive) RawEntity {
	raw := RawEntity{
		Name:       def.Name,
		Timeseries: boolArg(entityDir, "timeseries"),
		Immutable:  boolArg(entityDir, "immutable"),
	}
	for _, fd := range def.Fields {
		rf := RawField{
			Name:     fd.Name,
			Required: fd.Type.NonNull,
			Unique:   fd.Directives.ForName("unique") != nil,
			Index:    fd.Directives.ForName("index") != nil,
		}
		if derived := fd.Directives.ForName("derivedFrom"); derived != nil {
			rf.DerivedFrom = stringArg(derived, "field")
		}
		typ := fd.Type
		if typ.Elem != nil {
			rf.List = true
			typ = typ.Elem
		}
		rf.Type = typ.NamedType
		raw.Fields = append(raw.Fields, rf)
	}
	return raw
}

func boolArg(dir *ast.Directive, name string) bool {
	arg := dir.Arguments.ForName(name)
	if arg == nil || arg.Value == nil {
		return false
	}
	return arg.Value.Raw == "true"
}

func stringArg(dir *ast.Directive, name string) string {
	arg := dir.Arguments.ForName(name)
	if arg == nil || arg.Value == nil {
		return ""
	}
	return arg.Value.Raw
}

// resolveType classifies a raw field's declared type name, consulting the
// entity set for references. Unknown scalar names are promoted to String.
func resolveType(typeName string, entities map[string]RawEntity) (scalar ScalarType, targetEntity string) {
	if s, ok := knownScalars[typeName]; ok {
		return s, ""
	}
	if _, ok := entities[typeName]; ok {
		return "", typeName
	}
	return ScalarString, ""
}
