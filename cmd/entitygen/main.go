// Command entitygen reads a schema document (internal/schema) and emits one
// Go source file per entity implementing the store.Entity contract, plus
// derived-field and relation getters, per spec.md §4.3.
package main

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/synnergychain/stream-processor-sdk/internal/schema"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "entitygen"}
	cmd.AddCommand(generateCmd())
	return cmd
}

func generateCmd() *cobra.Command {
	var (
		schemaPath  string
		outDir      string
		packageName string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "generate entity types from a schema document",
		RunE: func(cmd *cobra.Command, args []string) error {
			return generate(schemaPath, outDir, packageName)
		},
	}
	cmd.Flags().StringVar(&schemaPath, "schema", "", "path to the GraphQL schema document (.graphql)")
	cmd.Flags().StringVar(&outDir, "out", "entities", "output directory for generated entity types")
	cmd.Flags().StringVar(&packageName, "package", "entities", "package name for generated entity types")
	cmd.MarkFlagRequired("schema")
	return cmd
}

func generate(schemaPath, outDir, packageName string) error {
	f, err := os.Open(schemaPath)
	if err != nil {
		return fmt.Errorf("open schema: %w", err)
	}
	defer f.Close()

	doc, err := schema.Parse(f)
	if err != nil {
		return fmt.Errorf("parse schema: %w", err)
	}
	sc, err := schema.Validate(doc)
	if err != nil {
		return fmt.Errorf("validate schema: %w", err)
	}
	for _, w := range sc.Warnings {
		fmt.Fprintf(os.Stderr, "entitygen: warning: %s\n", w)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create out dir: %w", err)
	}

	for _, ent := range sc.Entities {
		src, err := renderEntity(packageName, ent, sc)
		if err != nil {
			return fmt.Errorf("render entity %s: %w", ent.Name, err)
		}
		path := filepath.Join(outDir, strings.ToLower(ent.Name)+".go")
		if err := os.WriteFile(path, src, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintf(os.Stderr, "entitygen: wrote %s\n", path)
	}
	return nil
}

func renderEntity(pkg string, ent *schema.Entity, sc *schema.Schema) ([]byte, error) {
	var buf bytes.Buffer

	needsTime := false
	needsUUID := false
	needsRichvalueType := false
	hasDerived := false
	hasRelation := false
	for _, f := range ent.Fields {
		switch {
		case f.DerivedFrom != "":
			hasDerived = true
		case f.TargetEntity != "" && !f.List:
			hasRelation = true
		}
		switch f.Type {
		case schema.ScalarTimestamp:
			needsTime = true
		case schema.ScalarID:
			needsUUID = true
		case schema.ScalarBigInt, schema.ScalarBigDecimal:
			needsRichvalueType = true
		}
	}
	needsMethods := hasDerived || hasRelation

	fmt.Fprintf(&buf, "package %s\n\n", pkg)
	fmt.Fprintf(&buf, "import (\n")
	if needsMethods {
		fmt.Fprintf(&buf, "\t\"context\"\n")
	}
	if needsTime {
		fmt.Fprintf(&buf, "\t\"time\"\n")
	}
	fmt.Fprintf(&buf, "\n")
	if needsUUID {
		fmt.Fprintf(&buf, "\t\"github.com/google/uuid\"\n")
	}
	if needsRichvalueType || hasDerived {
		fmt.Fprintf(&buf, "\t\"github.com/synnergychain/stream-processor-sdk/internal/richvalue\"\n")
	}
	if needsMethods {
		fmt.Fprintf(&buf, "\t\"github.com/synnergychain/stream-processor-sdk/internal/runtimectx\"\n")
	}
	if hasDerived {
		fmt.Fprintf(&buf, "\t\"github.com/synnergychain/stream-processor-sdk/proto/processorpb\"\n")
	}
	fmt.Fprintf(&buf, ")\n\n")

	fmt.Fprintf(&buf, "// %s is generated from the %s schema entity.\n", ent.Name, ent.Name)
	fmt.Fprintf(&buf, "type %s struct {\n", ent.Name)
	for _, f := range ent.Fields {
		if f.DerivedFrom != "" {
			continue // derived fields are methods, not struct fields
		}
		goType := goFieldType(f)
		fmt.Fprintf(&buf, "\t%s %s `richvalue:\"%s\"`\n", structFieldGoName(f), goType, f.Name)
	}
	fmt.Fprintf(&buf, "}\n\n")

	tableName := strings.ToLower(ent.TableName) + "s"
	if strings.HasSuffix(strings.ToLower(ent.TableName), "s") {
		tableName = strings.ToLower(ent.TableName)
	}
	fmt.Fprintf(&buf, "// TableName implements store.Entity.\n")
	fmt.Fprintf(&buf, "func (e *%s) TableName() string { return %q }\n\n", ent.Name, tableName)

	for _, f := range ent.Fields {
		switch {
		case f.DerivedFrom != "":
			writeDerivedGetter(&buf, ent, f)
		case f.TargetEntity != "" && !f.List:
			writeRelationGetter(&buf, ent, f)
		}
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Emit the unformatted source rather than fail the whole run; a
		// malformed entity shouldn't block generating the rest.
		return buf.Bytes(), nil
	}
	return formatted, nil
}

func writeRelationGetter(buf *bytes.Buffer, ent *schema.Entity, f schema.Field) {
	method := goName(f.Name)
	target := f.TargetEntity
	fmt.Fprintf(buf, "// %s fetches the related %s referenced by this %s's %s field.\n", method, target, ent.Name, f.Name)
	fmt.Fprintf(buf, "func (e *%s) %s(ctx context.Context, rc *runtimectx.Context) (*%s, error) {\n", ent.Name, method, target)
	fmt.Fprintf(buf, "\tvar out %s\n", target)
	tableName := strings.ToLower(target)
	fmt.Fprintf(buf, "\tif err := rc.Get(ctx, %q, e.%s, &out); err != nil {\n", tableName+"s", structFieldGoName(f))
	fmt.Fprintf(buf, "\t\treturn nil, err\n")
	fmt.Fprintf(buf, "\t}\n")
	fmt.Fprintf(buf, "\treturn &out, nil\n")
	fmt.Fprintf(buf, "}\n\n")
}

func writeDerivedGetter(buf *bytes.Buffer, ent *schema.Entity, f schema.Field) {
	method := goName(f.Name)
	target := f.TargetEntity
	tableName := strings.ToLower(target) + "s"
	fmt.Fprintf(buf, "// %s lists every %s whose %s field points back at this %s.\n", method, target, f.DerivedFrom, ent.Name)
	fmt.Fprintf(buf, "func (e *%s) %s(ctx context.Context, rc *runtimectx.Context, cursor string, pageSize int32) ([]*%s, string, error) {\n", ent.Name, method, target)
	fmt.Fprintf(buf, "\tidValue, err := richvalue.Encode(e.ID)\n")
	fmt.Fprintf(buf, "\tif err != nil {\n")
	fmt.Fprintf(buf, "\t\treturn nil, \"\", err\n")
	fmt.Fprintf(buf, "\t}\n")
	fmt.Fprintf(buf, "\tfilters := []*processorpb.FilterClause{{Field: %q, Operator: \"eq\", Value: idValue}}\n", f.DerivedFrom)
	fmt.Fprintf(buf, "\tpage, err := rc.List(ctx, %q, filters, cursor, pageSize)\n", tableName)
	fmt.Fprintf(buf, "\tif err != nil {\n")
	fmt.Fprintf(buf, "\t\treturn nil, \"\", err\n")
	fmt.Fprintf(buf, "\t}\n")
	fmt.Fprintf(buf, "\tresults := make([]*%s, 0, len(page.Rows))\n", target)
	fmt.Fprintf(buf, "\tfor _, row := range page.Rows {\n")
	fmt.Fprintf(buf, "\t\tvar out %s\n", target)
	fmt.Fprintf(buf, "\t\tif err := richvalue.Decode(&processorpb.RichValue{Kind: &processorpb.RichValue_StructValue{StructValue: row}}, &out); err != nil {\n")
	fmt.Fprintf(buf, "\t\t\treturn nil, \"\", err\n")
	fmt.Fprintf(buf, "\t\t}\n")
	fmt.Fprintf(buf, "\t\tresults = append(results, &out)\n")
	fmt.Fprintf(buf, "\t}\n")
	fmt.Fprintf(buf, "\treturn results, page.NextCursor, nil\n")
	fmt.Fprintf(buf, "}\n\n")
}

func goFieldType(f schema.Field) string {
	var base string
	switch f.Type {
	case schema.ScalarID:
		base = "uuid.UUID"
	case schema.ScalarString:
		base = "string"
	case schema.ScalarInt:
		base = "int64"
	case schema.ScalarInt8:
		base = "int8"
	case schema.ScalarBoolean:
		base = "bool"
	case schema.ScalarBigInt:
		base = "richvalue.BigInt"
	case schema.ScalarBigDecimal:
		base = "richvalue.BigDecimal"
	case schema.ScalarBytes:
		base = "[]byte"
	case schema.ScalarTimestamp:
		base = "time.Time"
	default:
		if f.TargetEntity != "" {
			base = "string" // relation fields are stored as the target's id
		} else {
			base = "string"
		}
	}
	if f.List && f.DerivedFrom == "" {
		return "[]" + base
	}
	return base
}

// structFieldGoName returns the Go struct field name for f. Scalar relation
// fields (a non-list reference to another entity) get an "ID" suffix so the
// stored-id field never collides with the relation getter method of the
// same schema-declared name.
func structFieldGoName(f schema.Field) string {
	base := goName(f.Name)
	if f.TargetEntity != "" && !f.List && f.DerivedFrom == "" {
		return base + "ID"
	}
	return base
}

func goName(name string) string {
	if name == "" {
		return name
	}
	parts := strings.Split(name, "_")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		if strings.EqualFold(p, "id") {
			b.WriteString("ID")
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}
