package quality

import (
	"fmt"

	"github.com/flowsmith/flowsmith/pkg/domain"
	"github.com/flowsmith/flowsmith/pkg/dsl"
	"github.com/flowsmith/flowsmith/pkg/pattern"
)

var intentTitles = map[domain.Intent]string{
	domain.IntentCustomerService:    "Customer Service",
	domain.IntentDocumentProcessing: "Document Processing",
	domain.IntentDataAnalysis:       "Data Analysis",
	domain.IntentContentGeneration:  "Content Generation",
	domain.IntentTranslation:        "Translation",
	domain.IntentAPIIntegration:     "API Integration",
	domain.IntentAutomation:         "Automation",
}

var intentIcons = map[domain.Intent]string{
	domain.IntentCustomerService:    "💬",
	domain.IntentDocumentProcessing: "📄",
	domain.IntentDataAnalysis:       "📊",
	domain.IntentContentGeneration:  "✍️",
	domain.IntentTranslation:        "🌐",
	domain.IntentAPIIntegration:     "🔌",
	domain.IntentAutomation:         "⚙️",
}

// appMetadata derives the document's app block from the business intent and
// the chosen archetype.
func appMetadata(profile domain.RequirementProfile, archetypeID string) dsl.App {
	title, ok := intentTitles[profile.Intent]
	if !ok {
		title = "General Purpose"
	}
	icon, ok := intentIcons[profile.Intent]
	if !ok {
		icon = "🤖"
	}

	structure := "workflow"
	if arch, err := pattern.Get(archetypeID); err == nil {
		structure = arch.Label
	}

	return dsl.App{
		Name:           title + " Workflow",
		Description:    fmt.Sprintf("Automatically generated %s for %s requests.", structure, title),
		Icon:           icon,
		IconBackground: "#EFF1F5",
	}
}
