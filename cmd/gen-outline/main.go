package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Generates the sample outline used by the examples and the README
// walkthrough. Extra keys like "body" ride along as entry fields, so the
// generated document also exercises the front-matter passthrough.
func main() {
	targetDir := "examples/generated"
	if len(os.Args) > 1 {
		targetDir = os.Args[1]
	}

	// Ensure dir exists
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		panic(err)
	}

	fmt.Printf("Generating field guide outline in: %s\n", targetDir)

	// 1. Getting started (clean pages with markdown bodies)
	gettingStarted := item("getting-started", "Getting Started", "section",
		item("what-is-arbor", "What is Arbor?", "page").
			with("body", "# What is Arbor?\n\nArbor flattens nested documents into navigable outlines."),
		item("first-outline", "Your First Outline", "page").
			with("body", "# Your First Outline\n\nWrite a YAML document with nested `items` and point `arbor run` at it."),
	)

	// 2. Species (two levels of nesting to give the flattener some depth)
	species := item("species", "Species", "section",
		item("oaks", "Oaks", "section",
			item("red-oak", "Red Oak", "page").with("latin", "Quercus rubra"),
			item("white-oak", "White Oak", "page").with("latin", "Quercus alba"),
		),
		item("maples", "Maples", "section",
			item("sugar-maple", "Sugar Maple", "page").with("latin", "Acer saccharum"),
			item("maple-syrup", "Maple syrup is tapped in late winter", "note"),
		),
	)

	// 3. Field work (tasks, and a quoted title to verify label escaping)
	fieldWork := item("field-work", "Field Work", "section",
		item("collect-samples", "Collect leaf samples", "task"),
		item("press-leaves", "Press the leaves: 'flat and dry'", "task"),
	)

	doc := map[string]any{
		"items": []any{gettingStarted, species, fieldWork},
	}

	data, err := yaml.Marshal(doc)
	check(err)

	outPath := filepath.Join(targetDir, "outline.yaml")
	check(os.WriteFile(outPath, data, 0644))

	fmt.Println("Done. Browse it with: arbor run", targetDir)
}

// node is one outline item in authoring shape. Extra keys sit inline next
// to the declared ones, exactly as a hand-written document would have them.
type node map[string]any

func item(id, title, kind string, children ...node) node {
	n := node{"id": id, "title": title}
	if kind != "" {
		n["kind"] = kind
	}
	if len(children) > 0 {
		kids := make([]any, 0, len(children))
		for _, c := range children {
			kids = append(kids, c)
		}
		n["items"] = kids
	}
	return n
}

func (n node) with(key string, value any) node {
	n[key] = value
	return n
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}
