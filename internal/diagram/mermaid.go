package diagram

import (
	"fmt"
	"regexp"
	"strings"
)

var nonIDChars = regexp.MustCompile(`[^a-z0-9_]`)

// RenderMermaid renders a graph as a Mermaid flowchart. Call-cycle edges are
// drawn thick, animated edges dotted.
func RenderMermaid(g Graph) string {
	var sb strings.Builder
	sb.WriteString("flowchart TD\n")

	for _, n := range g.Nodes {
		id := mermaidID(n.ID)
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", id, mermaidLabel(n.Label)))
		if n.Style.Background != "" || n.Style.Border != "" {
			sb.WriteString(fmt.Sprintf("    style %s fill:%s,stroke:%s\n", id, n.Style.Background, n.Style.Border))
		}
	}

	for _, e := range g.Edges {
		arrow := "-->"
		switch {
		case e.Cyclic:
			arrow = "==>"
		case e.Animated:
			arrow = "-.->"
		}
		if e.Label != "" {
			sb.WriteString(fmt.Sprintf("    %s %s|%s| %s\n", mermaidID(e.Source), arrow, mermaidLabel(e.Label), mermaidID(e.Target)))
		} else {
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", mermaidID(e.Source), arrow, mermaidID(e.Target)))
		}
	}

	return sb.String()
}

// MarkdownBlock wraps rendered Mermaid text in a fenced code block.
func MarkdownBlock(mermaid string) string {
	return "```mermaid\n" + mermaid + "```\n"
}

func mermaidID(v string) string {
	v = strings.TrimSpace(strings.ToLower(v))
	v = nonIDChars.ReplaceAllString(strings.ReplaceAll(v, "-", "_"), "_")
	if v == "" {
		return "node"
	}
	if v[0] >= '0' && v[0] <= '9' {
		v = "n_" + v
	}
	return v
}

func mermaidLabel(s string) string {
	s = strings.TrimRight(s, "\n")
	s = strings.ReplaceAll(s, `"`, "#quot;")
	return strings.ReplaceAll(s, "\n", "<br/>")
}
