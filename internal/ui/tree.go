package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"asls/internal/scope"
)

var (
	kindStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	nameStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	rangeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// RenderTree draws the scope tree of a module, one scope per line. Lines
// wider than width are truncated; width <= 0 disables truncation.
func RenderTree(tree *scope.Tree, width int) string {
	root := tree.RootScope()
	if root == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(truncate(scopeLabel(root), width))
	b.WriteString("\n")
	renderChildren(&b, tree, root, "", width)
	return b.String()
}

func renderChildren(b *strings.Builder, tree *scope.Tree, s *scope.Scope, indent string, width int) {
	for i, id := range s.Children {
		child := tree.Get(id)
		branch, next := "├── ", "│   "
		if i == len(s.Children)-1 {
			branch, next = "└── ", "    "
		}
		b.WriteString(truncate(indent+branch+scopeLabel(child), width))
		b.WriteString("\n")
		renderChildren(b, tree, child, indent+next, width)
	}
}

func scopeLabel(s *scope.Scope) string {
	parts := []string{kindStyle.Render(s.Kind.String())}
	if name := scopeName(s); name != "" {
		parts = append(parts, nameStyle.Render(name))
	}
	start, end := s.Range()
	parts = append(parts, rangeStyle.Render(fmt.Sprintf("[%d,%d)", start, end)))
	if n := len(s.Vars); n > 0 {
		parts = append(parts, fmt.Sprintf("vars=%d", n))
	}
	if n := len(s.Statements); n > 0 {
		parts = append(parts, fmt.Sprintf("stmts=%d", n))
	}
	if n := len(s.EnumValues); n > 0 {
		parts = append(parts, fmt.Sprintf("values=%d", n))
	}
	if s.Parent.IsValid() && !s.Closed {
		parts = append(parts, warnStyle.Render("unclosed"))
	}
	return strings.Join(parts, " ")
}

func scopeName(s *scope.Scope) string {
	if cd := s.Class(); cd != nil && cd.Super != "" {
		return cd.Name + " : " + cd.Super
	}
	return s.Name
}
