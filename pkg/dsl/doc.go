/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing outline documents.

It allows developers to define nested documents using a type-safe, fluent builder pattern
instead of relying on external YAML or JSON files. This is particularly useful for dynamic
document generation, unit testing, and leveraging IDE autocompletion/type-checking.

Example usage:

	package main

	import (
		"github.com/aretw0/arbor/pkg/dsl"
	)

	func main() {
		doc := dsl.New()

		doc.Add("fruits").Title("Fruits").Kind("section").
			Child("pear").Title("Pear").Field("color", "green").Up().
			Child("citrus").Title("Citrus").
			Child("lime").Title("Lime")

		doc.Add("veg").Title("Vegetables")

		// The resulting source can be used as a ports.TreeSource
		source, _ := doc.Build()
		// ... pass source to arbor.New("", arbor.WithSource(source))
	}
*/
package dsl
