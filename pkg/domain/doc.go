/*
Package domain contains the core domain models shared across the Arbor engine.

It defines the fundamental entities of the outline model: the nested Item
documents that sources load, the flat Entry projection that hosts render,
and the session State that stores persist. This package is kept free of I/O
and persistence concerns, following Hexagonal Architecture principles.

# Key Entities

  - Item: A node of the nested source document (id, title, kind, free-form fields, children).
  - Entry: The flattened projection of an Item (parent link, depth, child count).
  - State: Captures the runtime snapshot of a browsing session (cursor, query, scroll, history).
  - Scroll: The kinetic scroll position threaded through motion steps.
*/
package domain
