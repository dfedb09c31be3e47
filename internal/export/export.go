// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export renders the outline, research entries, and generated
// citations into downloadable documents. The primary output is a static
// HTML document that common word processors open directly; bibliographic
// side exports (CSL-YAML, BibTeX) feed reference managers.
package export

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/pdiddy/outline-engine/internal/citation"
	"github.com/pdiddy/outline-engine/pkg/types"
)

// Filename is the constant download filename for the exported document.
const Filename = "research-paper.doc"

const docTitle = "Research Paper Outline"

// htmlShell wraps the rendered body in minimal Word-compatible markup.
const (
	htmlHeader = `<html>
<head>
<meta charset="utf-8">
<title>` + docTitle + `</title>
</head>
<body>
`
	htmlFooter = `</body>
</html>
`
)

// Document renders the full export: title, thesis statement, numbered main
// points with research notes and footnote citations, lettered sub-points,
// and a deduplicated, sorted bibliography. The body is composed as
// Markdown (research note text is Markdown and passes through) and
// rendered to HTML. The transform is one-shot and synchronous.
func Document(thesis string, points []types.OutlinePoint, entries []types.ResearchEntry, style types.Style) ([]byte, error) {
	md := buildMarkdown(thesis, points, entries, style)

	var body bytes.Buffer
	if err := goldmark.Convert([]byte(md), &body); err != nil {
		return nil, fmt.Errorf("rendering document body: %w", err)
	}

	var out bytes.Buffer
	out.WriteString(htmlHeader)
	out.Write(body.Bytes())
	out.WriteString(htmlFooter)
	return out.Bytes(), nil
}

func buildMarkdown(thesis string, points []types.OutlinePoint, entries []types.ResearchEntry, style types.Style) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", docTitle)
	if thesis != "" {
		fmt.Fprintf(&b, "**Thesis:** %s\n\n", thesis)
	}

	mainNo := 0
	for _, p := range points {
		if p.Level != types.LevelMain {
			continue
		}
		mainNo++
		fmt.Fprintf(&b, "## %d. %s\n\n", mainNo, p.Text)
		writeNotes(&b, p.ID, entries, style)

		subNo := 0
		for _, sub := range points {
			if sub.ParentID != p.ID || sub.Level != types.LevelSub {
				continue
			}
			fmt.Fprintf(&b, "### %s. %s\n\n", letterLabel(subNo), sub.Text)
			subNo++
			writeNotes(&b, sub.ID, entries, style)
		}
	}

	bib := Bibliography(entries, style)
	if len(bib) > 0 {
		b.WriteString("## Bibliography\n\n")
		for _, line := range bib {
			fmt.Fprintf(&b, "%s\n\n", line)
		}
	}
	return b.String()
}

func writeNotes(b *strings.Builder, pointID string, entries []types.ResearchEntry, style types.Style) {
	for _, e := range entries {
		if e.PointID != pointID {
			continue
		}
		fmt.Fprintf(b, "%s\n\n", e.Text)
		if cite := citation.Format(e.Bibliography, style, types.ContextFootnote); cite != "" {
			fmt.Fprintf(b, "*%s*\n\n", cite)
		}
	}
}

// Bibliography renders every entry's bibliography-context citation,
// deduplicates by rendered string, and sorts lexicographically. Two
// distinct records that format identically collapse to one line; this is
// rendered-string distinctness by definition.
func Bibliography(entries []types.ResearchEntry, style types.Style) []string {
	seen := make(map[string]bool)
	var lines []string
	for _, e := range entries {
		cite := citation.Format(e.Bibliography, style, types.ContextBibliography)
		if cite == "" || seen[cite] {
			continue
		}
		seen[cite] = true
		lines = append(lines, cite)
	}
	sort.Strings(lines)
	return lines
}

// letterLabel converts a zero-based index to the sub-point label sequence
// a, b, …, z, aa, ab, ….
func letterLabel(i int) string {
	label := ""
	for {
		label = string(rune('a'+i%26)) + label
		i = i/26 - 1
		if i < 0 {
			return label
		}
	}
}
