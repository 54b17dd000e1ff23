/*
Package flatten converts nested hierarchies into flat, metadata-annotated
lists and answers context-preserving searches over that flat form.

The flat form is what list renderers want: every entry knows its parent, its
depth and how many direct children it has, and entries appear in strict
preorder, so a viewport can slice the list without ever touching the nested
structure again.

The package is generic over the caller's node type. Instead of reflecting on
field names, callers hand an Accessor with three functions that pull the id,
the nested children and the searchable text out of a node:

	type Category struct {
		Slug string
		Name string
		Subs []Category
	}

	acc := flatten.Accessor[Category, string]{
		ID:       func(c Category) string { return c.Slug },
		Children: func(c Category) []Category { return c.Subs },
		Text:     func(c Category) string { return c.Name },
	}

	list := flatten.Tree(cats, acc)
	hits := flatten.Search(list, acc.Text, "gard to")

All functions are pure: no goroutines, no caching, no input mutation.
Traversal recurses directly; hierarchies here are UI-sized, not arbitrarily
deep.
*/
package flatten
