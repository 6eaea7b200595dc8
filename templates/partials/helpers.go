package partials

import (
	"fmt"
	"strings"

	"streamgrowth_app_go/models"
	"streamgrowth_app_go/services"
	"streamgrowth_app_go/services/leadform"
	"streamgrowth_app_go/templates/components"
)

// formatFileSize renders a byte count for the attachment preview
func formatFileSize(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
	)

	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// fieldVals is the hx-vals payload telling the field handler which input changed
func fieldVals(field string) string {
	return components.Vals("field", field)
}

// goalVals is the hx-vals payload for a goal toggle
func goalVals(label string) string {
	return components.Vals("goal", label)
}

// inputClass marks inputs that currently hold a validation error
func inputClass(errs services.ValidationErrors, field string) string {
	if errs.Has(field) {
		return "input input-error"
	}
	return "input"
}

// stepNumber is the 1-based step shown in the modal header
func stepNumber(phase leadform.Phase) int {
	if phase == leadform.PhaseCollecting {
		return 1
	}
	return 2
}

// planLabel returns the tier name with its price range, e.g. "Growth Tier ($300-$500)"
func planLabel(tier models.PlanTier) string {
	return tier.Name + " (" + tier.PriceRange + ")"
}

// initials is used for the testimonial avatars
func initials(name string) string {
	var b strings.Builder
	for _, part := range strings.Fields(name) {
		b.WriteString(strings.ToUpper(part[:1]))
		if b.Len() == 2 {
			break
		}
	}
	return b.String()
}
