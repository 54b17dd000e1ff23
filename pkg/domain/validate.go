package domain

import "fmt"

// ValidateItems checks a nested document for structural problems before it
// is flattened: every item must carry an id, and no id may appear twice
// anywhere in the tree. The first problem found is returned.
func ValidateItems(items []Item) error {
	seen := make(map[string]bool)

	var walk func(items []Item, depth int) error
	walk = func(items []Item, depth int) error {
		for _, it := range items {
			if it.ID == "" {
				if it.Title != "" {
					return fmt.Errorf("%w (title %q, depth %d)", ErrEmptyID, it.Title, depth)
				}
				return fmt.Errorf("%w (depth %d)", ErrEmptyID, depth)
			}
			if seen[it.ID] {
				return fmt.Errorf("%w: %q", ErrDuplicateID, it.ID)
			}
			seen[it.ID] = true
			if err := walk(it.Items, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	return walk(items, 0)
}
