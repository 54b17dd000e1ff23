package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
)

// Overlay contains dynamic session data to visualize on the outline graph.
type Overlay struct {
	Visited   []string
	CurrentID string
	Matched   []string
}

// GenerateMermaid produces a Mermaid flowchart syntax string from a
// flattened outline. It applies semantic styling:
// - Section: [[Subroutine]]
// - Task: [/Parallelogram/]
// - Note: >Flag]
// - Default (pages, untyped): [Rectangle]
// Parent edges follow the outline structure. Overlay styles (Visited,
// Current, Matched) are applied if provided.
func GenerateMermaid(entries []domain.Entry, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, entry := range entries {
		// Sanitize ID for Mermaid
		safeID := sanitizeMermaidID(entry.ID)

		// Entry shape based on Kind
		opener, closer := "[", "]"

		switch entry.Kind {
		case domain.KindSection:
			opener, closer = "[[", "]]" // Subroutine
		case domain.KindTask:
			opener, closer = "[/", "/]" // Parallelogram
		case domain.KindNote:
			opener, closer = ">", "]" // Flag
		}

		label := entry.Title
		if label == "" {
			label = entry.ID
		}
		// Escape double quotes in the label for Mermaid
		label = strings.ReplaceAll(label, "\"", "'")

		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, label, closer))

		if entry.HasParent {
			safeParent := sanitizeMermaidID(entry.ParentID)
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", safeParent, safeID))
		}
	}

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString("    classDef matched fill:#e8f5e9,stroke:#2e7d32,stroke-width:2px,color:#000;\n")

		writeClasses(&sb, overlay.Visited, "visited")
		// Search results may repeat an ancestor, so matched ids are deduped too.
		writeClasses(&sb, overlay.Matched, "matched")

		if overlay.CurrentID != "" {
			safeCurrent := sanitizeMermaidID(overlay.CurrentID)
			sb.WriteString(fmt.Sprintf("    class %s current;\n", safeCurrent))
		}
	}

	return sb.String()
}

// writeClasses emits one class line per unique id.
func writeClasses(sb *strings.Builder, ids []string, class string) {
	seen := make(map[string]bool)
	for _, id := range ids {
		safeID := sanitizeMermaidID(id)
		if !seen[safeID] && safeID != "" {
			seen[safeID] = true
			sb.WriteString(fmt.Sprintf("    class %s %s;\n", safeID, class))
		}
	}
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
