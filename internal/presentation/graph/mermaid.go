package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/decisiontree/pkg/domain"
	"github.com/aretw0/decisiontree/pkg/outcome"
)

// GraphOverlay contains answers to highlight on the graph.
type GraphOverlay struct {
	Answers map[domain.Category]string
}

const rootID = "q_root"

// GenerateMermaid produces a Mermaid flowchart of the decision tree.
// Questions are asked in outcome key order. Shapes:
// - First question: ((Circle))
// - Question: [/Parallelogram/]
// - Outcome: [Rectangle], one node per occupation, so shared outcomes converge.
// If an overlay is given, the answered path is styled visited and its outcome current.
func GenerateMermaid(table *outcome.Table, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	order := domain.KeyOrder()

	for i, o := range table.Outcomes() {
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", outcomeID(i), escapeLabel(o.Name)))
	}

	declared := make(map[string]bool)
	declare := func(id string, category domain.Category) {
		if declared[id] {
			return
		}
		declared[id] = true
		if id == rootID {
			sb.WriteString(fmt.Sprintf("    %s((\"%s?\"))\n", id, category))
			return
		}
		sb.WriteString(fmt.Sprintf("    %s[/\"%s?\"/]\n", id, category))
	}

	edges := make(map[string]bool)
	for _, entry := range table.Entries() {
		parent := rootID
		var prefix []string
		for depth, category := range order {
			declare(parent, category)
			value := entry.Values[category.String()]
			prefix = append(prefix, value)

			var child string
			if depth == len(order)-1 {
				child = outcomeID(entry.Outcome.Index)
			} else {
				child = questionID(prefix)
			}

			edge := fmt.Sprintf("    %s -- \"%s\" --> %s\n", parent, escapeLabel(value), child)
			if !edges[edge] {
				edges[edge] = true
				sb.WriteString(edge)
			}
			parent = child
		}
	}

	if overlay != nil && len(overlay.Answers) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		sb.WriteString(fmt.Sprintf("    class %s visited;\n", rootID))
		var prefix []string
		for depth, category := range order {
			value, ok := overlay.Answers[category]
			if !ok || value == "" {
				break
			}
			prefix = append(prefix, strings.ToLower(value))
			if depth < len(order)-1 {
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", questionID(prefix)))
			}
		}

		if o, err := table.Resolve(overlay.Answers); err == nil {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", outcomeID(o.Index)))
		}
	}

	return sb.String()
}

func questionID(prefix []string) string {
	return "q_" + sanitizeMermaidID(strings.Join(prefix, "_"))
}

func outcomeID(index int) string {
	return fmt.Sprintf("o_%d", index)
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
