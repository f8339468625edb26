package chat

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/poiesic/cadsentinel/core"
)

// systemPrompt frames the answering model as a drawing-literate
// engineer and pins it to the retrieved context.
const systemPrompt = `You are an expert mechanical design and manufacturing engineer, specializing in interpreting AutoCAD mechanical drawings, GD&T, tolerances, hydraulic cylinder design, threads, and machining/manufacturing processes.

You are helping a user analyze a single engineering drawing. You will be given:
- A user question.
- Retrieved context chunks: summaries, notes, and dimensions.

Guidelines:
1. Base your answer strictly on the provided context. If critical information is missing, say what is missing instead of guessing.
2. When discussing dimensions, refer to them clearly (e.g., 'the 1.750 PROD DIA').
3. Explain GD&T or tolerances in practical, manufacturing-aware terms.
4. If you suspect standards issues (ASME Y14.5, thread callouts, etc.), explain why.
5. Be concise but technically clear. Use bullets and short paragraphs.
`

// FallbackReply is returned verbatim when retrieval finds nothing for
// the version. The answering model is not consulted in that case.
const FallbackReply = "No indexed context was found for this drawing version, so the question cannot be answered from it. Re-ingest the drawing or ask about a version that has been processed."

// buildUserPrompt pairs the question with the rendered context block.
func buildUserPrompt(question, contextText string) string {
	var b strings.Builder
	b.WriteString("User question:\n")
	b.WriteString(question)
	b.WriteString("\n\nDrawing context (summaries, notes, dimensions):\n")
	b.WriteString(contextText)
	return b.String()
}

// buildContextText renders the retrieved chunks into the class-grouped
// blob the answering model sees.
func buildContextText(summaries, notes, dims []*core.SearchResult) string {
	var lines []string

	if len(summaries) > 0 {
		lines = append(lines, "=== STRUCTURED / SUMMARY CONTEXT ===")
		for _, s := range summaries {
			lines = append(lines, fmt.Sprintf("- [summary #%d] %s", uint64(s.Chunk.Id), s.Chunk.Content))
		}
	}

	if len(notes) > 0 {
		lines = append(lines, "\n=== NOTES / ANNOTATIONS ===")
		for _, n := range notes {
			lines = append(lines, fmt.Sprintf("- [note #%d] %s", uint64(n.Chunk.Id), n.Chunk.Content))
		}
	}

	if len(dims) > 0 {
		lines = append(lines, "\n=== DIMENSIONS ===")
		for _, d := range dims {
			lines = append(lines, renderDimensionLine(d))
		}
	}

	return strings.Join(lines, "\n")
}

// renderDimensionLine prefers the entity's own text and value over the
// embedded chunk content when the detail payload resolved.
func renderDimensionLine(d *core.SearchResult) string {
	text := d.Chunk.Content
	if detail, ok := d.Detail["dim_text"].(string); ok && detail != "" {
		text = detail
	}
	if value, ok := d.Detail["dim_value"].(float64); ok {
		return fmt.Sprintf("- [dim #%d] %s = %s", uint64(d.Chunk.Id), text, strconv.FormatFloat(value, 'f', -1, 64))
	}
	return fmt.Sprintf("- [dim #%d] %s", uint64(d.Chunk.Id), text)
}
