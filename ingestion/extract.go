package ingestion

import (
	"strings"

	"github.com/poiesic/cadsentinel/core"
)

// Note sub-type markers, matched as substrings of the lowercased text.
var (
	toleranceMarkers = []string{"±", "tolerance", "tol"}
	gdtMarkers       = []string{"⌀", "gd&t", "true position", "flatness"}
)

// ExtractEntities classifies parsed entities into dimensions and
// notes. Entity types containing "dim" (DIMENSION_LINEAR,
// DIMENSION_ANGULAR, ...) become dimensions; otherwise types
// containing "text" (TEXT, MTEXT) become notes. Everything else is
// skipped. Missing optional fields flow through as zero values;
// extraction never fails.
func ExtractEntities(versionId core.ID, entities []core.ParsedEntity) ([]*core.Dimension, []*core.Note) {
	var dims []*core.Dimension
	var notes []*core.Note

	for _, ent := range entities {
		entType := strings.ToLower(ent.Type)

		switch {
		case strings.Contains(entType, "dim"):
			dims = append(dims, &core.Dimension{
				VersionId:   versionId,
				EntityIndex: ent.Index,
				DimType:     ent.Type,
				RawTypeCode: ent.RawTypeCode,
				Layer:       ent.Layer,
				Handle:      ent.Handle,
				OwnerHandle: ent.OwnerHandle,
				Text:        ent.Text,
				Value:       ent.Value,
				Units:       ent.Units,
				Geometry:    ent.Geometry,
			})

		case strings.Contains(entType, "text"):
			notes = append(notes, &core.Note{
				VersionId:   versionId,
				EntityIndex: ent.Index,
				NoteType:    classifyNote(ent.Text),
				Text:        ent.Text,
				Layer:       ent.Layer,
				Handle:      ent.Handle,
				Geometry:    ent.Geometry,
			})
		}
	}

	return dims, notes
}

// classifyNote infers the note sub-type from its text. Tolerance
// markers win over GD&T markers; everything else is general.
func classifyNote(text string) string {
	lowered := strings.ToLower(text)

	for _, marker := range toleranceMarkers {
		if strings.Contains(lowered, marker) {
			return core.NoteTypeTolerance
		}
	}
	for _, marker := range gdtMarkers {
		if strings.Contains(lowered, marker) {
			return core.NoteTypeGDT
		}
	}
	return core.NoteTypeGeneral
}
