package arbor_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/dsl"
)

// ExampleNew_library demonstrates how to use Arbor purely as a Go library,
// building the document with the fluent builder instead of reading a file.
func ExampleNew_library() {
	// 1. Build your document with the fluent builder
	doc := dsl.New()
	doc.Add("groceries").Title("Groceries").
		Child("pear").Title("Pears").Kind(domain.KindTask).Up().
		Child("lime").Title("Limes").Kind(domain.KindTask)
	doc.Add("chores").Title("Chores").
		Child("water").Title("Water the garden").Kind(domain.KindTask)

	source, err := doc.Build()
	if err != nil {
		log.Fatal(err)
	}

	// 2. Initialize the Engine with the custom source
	// No file path needed ("") because we are providing a source.
	eng, err := arbor.New("", arbor.WithSource(source))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	if err := eng.Reload(ctx); err != nil {
		log.Fatal(err)
	}

	// 3. Search drags ancestors along, so matches keep their context
	matches, err := eng.Search(ctx, "lim")
	if err != nil {
		log.Fatal(err)
	}
	for _, m := range matches {
		fmt.Printf("%s (depth %d)\n", m.Title, m.Depth)
	}

	// Output:
	// Groceries (depth 0)
	// Limes (depth 1)
}
