package dsl

import "github.com/aretw0/arbor/pkg/domain"

// ItemBuilder provides a fluent API for configuring an outline item.
type ItemBuilder struct {
	item     domain.Item
	children []*ItemBuilder
	parent   *ItemBuilder
}

// Title sets the display title of the item.
func (n *ItemBuilder) Title(title string) *ItemBuilder {
	n.item.Title = title
	return n
}

// Kind labels what the item represents (see domain.KindSection and friends).
func (n *ItemBuilder) Kind(kind string) *ItemBuilder {
	n.item.Kind = kind
	return n
}

// Field attaches one front-matter field to the item.
func (n *ItemBuilder) Field(key string, value any) *ItemBuilder {
	if n.item.Fields == nil {
		n.item.Fields = make(map[string]any)
	}
	n.item.Fields[key] = value
	return n
}

// Fields attaches several front-matter fields at once.
func (n *ItemBuilder) Fields(fields map[string]any) *ItemBuilder {
	for k, v := range fields {
		n.Field(k, v)
	}
	return n
}

// Child descends into a child item, creating it if needed.
// Use Up to return to this item afterwards.
func (n *ItemBuilder) Child(id string) *ItemBuilder {
	for _, c := range n.children {
		if c.item.ID == id {
			return c
		}
	}
	c := &ItemBuilder{
		item:   domain.Item{ID: id},
		parent: n,
	}
	n.children = append(n.children, c)
	return c
}

// Up returns the parent builder. At a root it returns the item itself.
func (n *ItemBuilder) Up() *ItemBuilder {
	if n.parent == nil {
		return n
	}
	return n.parent
}

// Item returns the materialized subtree rooted at this item.
// This is primarily used by the Builder, but exposed for advanced usage.
func (n *ItemBuilder) Item() domain.Item {
	return n.materialize()
}

func (n *ItemBuilder) materialize() domain.Item {
	item := n.item
	if len(n.children) > 0 {
		item.Items = make([]domain.Item, 0, len(n.children))
		for _, c := range n.children {
			item.Items = append(item.Items, c.materialize())
		}
	}
	return item
}
