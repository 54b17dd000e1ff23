// Package schema provides a type-safe validation system for item front-matter.
//
// Outline documents carry arbitrary extra fields per item (see Item.Fields).
// A Schema maps field names to expected types, letting hosts enforce shape
// conventions such as "every task has a due date". Fields are required by
// default; a trailing "?" on the type string marks them optional.
//
// Basic usage:
//
//	s := schema.Schema{
//	    "due":      schema.String(),
//	    "priority": schema.Optional(schema.Int()),
//	    "tags":     schema.Slice(schema.String()),
//	}
//
//	fields := map[string]any{
//	    "due":  "2026-09-01",
//	    "tags": []string{"garden", "urgent"},
//	}
//
//	if err := schema.Validate(s, fields); err != nil {
//	    // Handle validation errors
//	}
//
// Schemas can be created programmatically or parsed from type strings, which
// is how they arrive from schema files:
//
//	typeMap := map[string]string{
//	    "due":      "string",
//	    "priority": "int?",
//	    "tags":     "[string]",
//	}
//
//	s, err := schema.ParseTypeMap(typeMap)
//
// Custom validators can be registered for domain-specific validation:
//
//	slug := schema.Custom("slug", func(v any) error {
//	    str, ok := v.(string)
//	    if !ok || strings.ContainsAny(str, " /") {
//	        return fmt.Errorf("expected a slug")
//	    }
//	    return nil
//	})
//
// This package has zero dependencies beyond the Go standard library and no
// knowledge of outline documents; callers feed it plain maps.
package schema
