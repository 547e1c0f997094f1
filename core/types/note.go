// Package types - Calculation notes
package types

// NoteCategory classifies a calculation note
type NoteCategory string

const (
	// NoteAssumption marks a value the engine assumed rather than received
	NoteAssumption NoteCategory = "assumption"

	// NoteEstimate marks a value produced from a default or estimated rate
	NoteEstimate NoteCategory = "estimate"

	// NoteActual marks a value computed from supplied or published data
	NoteActual NoteCategory = "actual"

	// NoteWarning marks a degraded lookup or data-quality concern
	NoteWarning NoteCategory = "warning"

	// NoteInfo marks informational context
	NoteInfo NoteCategory = "info"
)

// CalculationNote is an audit annotation emitted by a pipeline component.
// Notes are generated by the engine, never user-supplied.
type CalculationNote struct {
	// Category classifies the note
	Category NoteCategory `json:"category"`

	// Component names the pipeline component that emitted the note
	Component string `json:"component"`

	// Message is the human-readable annotation
	Message string `json:"message"`

	// Source optionally names the data source behind the note
	Source string `json:"source,omitempty"`

	// Timestamp optionally records when the note's data was current
	Timestamp string `json:"timestamp,omitempty"`
}

// Note builds a calculation note
func Note(category NoteCategory, component, message string) CalculationNote {
	return CalculationNote{Category: category, Component: component, Message: message}
}
