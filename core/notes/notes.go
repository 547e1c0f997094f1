// Package notes aggregates audit annotations for the result envelope.
package notes

import (
	"fmt"
	"strings"
	"time"

	"trade-cost/core/types"
)

const component = "calculation"

// qualityMarkers are the substrings that flag a degraded or assumed value.
// The data-quality warning is derived by scanning component notes for
// them, never hardcoded per component.
var qualityMarkers = []string{"estimat", "default", "assum"}

// Aggregate collects all component notes and appends the envelope-level
// annotations: version and data-snapshot metadata, a route summary, and a
// derived data-quality warning when any upstream note signals an estimate.
func Aggregate(input *types.LandedCostInput, version string, snapshot time.Time,
	componentNotes ...[]types.CalculationNote) []types.CalculationNote {

	var all []types.CalculationNote
	for _, group := range componentNotes {
		all = append(all, group...)
	}

	all = append(all,
		types.CalculationNote{
			Category:  types.NoteInfo,
			Component: component,
			Message:   "calculation version " + version,
		},
		types.CalculationNote{
			Category:  types.NoteInfo,
			Component: component,
			Message:   "rate data snapshot " + snapshot.Format(time.RFC3339),
			Timestamp: snapshot.Format(time.RFC3339),
		},
		types.CalculationNote{
			Category:  types.NoteInfo,
			Component: component,
			Message: fmt.Sprintf("route %s -> %s via %s",
				input.OriginCountry, input.DestinationCountry, input.ShippingMethod),
		},
	)

	if degraded(all) {
		all = append(all, types.CalculationNote{
			Category:  types.NoteWarning,
			Component: component,
			Message:   "one or more components used estimated or default rates; verify against current quotes before committing",
		})
	}

	return all
}

// degraded reports whether any note message carries a quality marker
func degraded(all []types.CalculationNote) bool {
	for _, n := range all {
		msg := strings.ToLower(n.Message)
		for _, marker := range qualityMarkers {
			if strings.Contains(msg, marker) {
				return true
			}
		}
	}
	return false
}
