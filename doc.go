/*
Package arbor is a headless outline engine for turning nested documents into flat, navigable lists with context-preserving search and kinetic scrolling.

It implements a "Flattened Projection" architecture, separating the nested document (Structure) from its list projection (View) and the physics of moving through it (Motion).

# Concept

Arbor treats your document as a tree of items. The engine flattens it into a stable preorder list where every entry knows its parent, depth, and child count, so any list widget can render hierarchy without recursion. Searching filters that list while dragging each match's ancestor chain along, keeping results navigable. This Hexagonal Architecture allows Arbor to be embedded in any interface: TUI, HTTP server, or agent tooling.

# Key Features

  - Stable Projection: Flattening preserves source order, so row indexes survive partial updates.
  - Context-Preserving Search: Prefix-word matching that keeps every ancestor of a hit in the result.
  - Kinetic Scrolling: Frame-rate independent inertia with exponential friction, clamped to the outline bounds.
  - Hexagonal Architecture: Core logic is decoupled from adapters (Storage, Transport, Presentation).

# Usage

Initialize the engine with a document path, then Reload to build the projection.

	package main

	import (
		"context"
		"fmt"
		"log"
		"strings"

		"github.com/aretw0/arbor"
	)

	func main() {
		// Initialize Engine with default settings (reads ./notes.yaml)
		eng, err := arbor.New("./notes.yaml")
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		if err := eng.Reload(ctx); err != nil {
			log.Fatal(err)
		}

		// Render the outline as an indented list
		entries, err := eng.Outline(ctx)
		if err != nil {
			log.Fatal(err)
		}
		for _, entry := range entries {
			fmt.Printf("%s%s\n", strings.Repeat("  ", entry.Depth), entry.Title)
		}

		// Narrow it down without losing the hierarchy
		matches, err := eng.Search(ctx, "proj kick")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%d entries match\n", len(matches))
	}
*/
package arbor
