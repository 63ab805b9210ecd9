// Package schema parses and validates entity schema documents, then feeds a
// validated Schema to cmd/entitygen for code generation (spec.md §4.3).
package schema

// ScalarType is the set of scalars a schema field may declare. Beyond the
// standard set, the custom scalars of spec.md §4.3 are recognized; anything
// else is silently promoted to String (spec.md's Open Questions notes this
// permissive behavior; there is no strict mode that rejects unknown scalars).
type ScalarType string

const (
	ScalarID         ScalarType = "ID"
	ScalarString     ScalarType = "String"
	ScalarInt        ScalarType = "Int"
	ScalarInt8       ScalarType = "Int8"
	ScalarBoolean    ScalarType = "Boolean"
	ScalarBigInt     ScalarType = "BigInt"
	ScalarBigDecimal ScalarType = "BigDecimal"
	ScalarBytes      ScalarType = "Bytes"
	ScalarTimestamp  ScalarType = "Timestamp"
)

// IDKind is the declared shape of an entity's primary key.
type IDKind int

const (
	IDString IDKind = iota
	IDInt64
	IDUUID
)

// Field is one declared field of an Entity.
type Field struct {
	Name         string
	Type         ScalarType
	TargetEntity string // set when Type references another entity
	List         bool
	Required     bool
	Unique       bool
	Indexed      bool
	DerivedFrom  string // set when @derivedFrom(field: ...) is present
}

// Entity is one schema-declared entity type.
type Entity struct {
	Name        string
	TableName   string
	Timeseries  bool
	Immutable   bool
	Fields      []Field
	idField     *Field
	timestampFld *Field
}

// IDField returns the entity's id field, resolved during Validate.
func (e *Entity) IDField() *Field { return e.idField }

// TimestampField returns the entity's timestamp field for timeseries
// entities, resolved during Validate.
func (e *Entity) TimestampField() *Field { return e.timestampFld }

// Field looks up a declared field by name.
func (e *Entity) Field(name string) *Field {
	for i := range e.Fields {
		if e.Fields[i].Name == name {
			return &e.Fields[i]
		}
	}
	return nil
}

// Document is a raw, unvalidated schema document, one RawEntity per
// GraphQL object type carrying an @entity directive. Parse builds this
// from the schema's AST; Validate resolves it into a Schema.
type Document struct {
	Entities []RawEntity
}

// RawEntity is one object type's @entity declaration before validation
// resolves cross-references.
type RawEntity struct {
	Name       string
	Timeseries bool
	Immutable  bool
	Fields     []RawField
}

// RawField is one field declaration within an entity's object type,
// carrying whatever @unique/@index/@derivedFrom directives were present.
type RawField struct {
	Name        string
	Type        string
	List        bool
	Required    bool
	Unique      bool
	Index       bool
	DerivedFrom string
}

// Schema is the validated, cross-reference-resolved result of Validate.
type Schema struct {
	Entities map[string]*Entity
	Warnings []string
}
