package domain

import (
	"errors"
	"testing"
)

func TestValidateItems(t *testing.T) {
	tests := []struct {
		name    string
		items   []Item
		wantErr error
	}{
		{
			name: "Valid Tree",
			items: []Item{
				{ID: "a", Items: []Item{{ID: "b"}, {ID: "c"}}},
				{ID: "d"},
			},
			wantErr: nil,
		},
		{
			name:    "Empty Document",
			items:   nil,
			wantErr: nil,
		},
		{
			name: "Missing ID",
			items: []Item{
				{ID: "a", Items: []Item{{Title: "No ID Here"}}},
			},
			wantErr: ErrEmptyID,
		},
		{
			name: "Duplicate at Same Level",
			items: []Item{
				{ID: "a"},
				{ID: "a"},
			},
			wantErr: ErrDuplicateID,
		},
		{
			name: "Duplicate Across Branches",
			items: []Item{
				{ID: "a", Items: []Item{{ID: "x"}}},
				{ID: "b", Items: []Item{{ID: "x"}}},
			},
			wantErr: ErrDuplicateID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateItems(tt.items)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateItems() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateItems() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
