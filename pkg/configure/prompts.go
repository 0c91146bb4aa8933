package configure

import (
	"fmt"
	"strings"

	"github.com/flowsmith/flowsmith/pkg/domain"
)

// roleTemplates keys the system-prompt opening line by intent.
var roleTemplates = map[domain.Intent]string{
	domain.IntentCustomerService:    "You are a customer service assistant for this organization.",
	domain.IntentDocumentProcessing: "You are a document processing assistant that extracts and condenses information accurately.",
	domain.IntentDataAnalysis:       "You are a data analyst producing precise, well-structured findings.",
	domain.IntentContentGeneration:  "You are a professional writer producing clear, engaging content.",
	domain.IntentTranslation:        "You are a professional translator preserving tone and meaning.",
	domain.IntentAPIIntegration:     "You are an integration assistant preparing data for downstream systems.",
	domain.IntentAutomation:         "You are an automation assistant executing one step of a business process.",
	domain.IntentUnknown:            "You are a helpful assistant completing one step of a workflow.",
}

var trailingInstructions = map[domain.Intent]string{
	domain.IntentCustomerService:    "Reply to the customer directly. Be concise and courteous.",
	domain.IntentDocumentProcessing: "Return only the extracted or summarized content.",
	domain.IntentDataAnalysis:       "Present findings as a short structured report.",
	domain.IntentContentGeneration:  "Produce the requested content, ready to publish.",
	domain.IntentTranslation:        "Return only the translated text.",
	domain.IntentAPIIntegration:     "Return the result as structured data.",
	domain.IntentAutomation:         "Return the step result only.",
	domain.IntentUnknown:            "Complete the task and return the result.",
}

var baseGuidelines = []string{
	"Work only from the provided inputs; do not invent facts.",
	"Keep the response focused on the task.",
	"State clearly when the input is insufficient to proceed.",
}

// systemPrompt assembles role line, task description, and a numbered
// guideline list. Business rules contribute extra guidelines: an escalation
// rule adds an escalation guideline, compliance vocabulary adds one about
// regulated data.
func systemPrompt(node *domain.WorkflowNode, profile domain.RequirementProfile) string {
	var b strings.Builder
	b.WriteString(roleTemplates[profile.Intent])
	b.WriteString("\n\nTask: ")
	b.WriteString(node.Title)
	b.WriteString(".\n\nGuidelines:\n")

	guidelines := append([]string{}, baseGuidelines...)
	rules := strings.ToLower(strings.Join(profile.BusinessRules, " "))
	if strings.Contains(rules, "escalat") {
		guidelines = append(guidelines, "Flag the case for escalation when the stated escalation condition is met.")
	}
	if strings.Contains(rules, "compliance") || strings.Contains(rules, "regulat") || len(profile.SecurityNeeds) > 0 {
		guidelines = append(guidelines, "Treat all data as regulated: never echo sensitive fields beyond what the task requires.")
	}

	for i, g := range guidelines {
		fmt.Fprintf(&b, "%d. %s\n", i+1, g)
	}
	return b.String()
}

// userPrompt concatenates start-input references, upstream context
// references, and the intent-specific trailing instruction, using the
// external runtime's variable reference syntax.
func userPrompt(node *domain.WorkflowNode, g *domain.WorkflowGraph, profile domain.RequirementProfile) string {
	var b strings.Builder

	if start := g.StartNode(); start != nil {
		if cfg, ok := start.Config.(domain.StartConfig); ok {
			for _, v := range cfg.Variables {
				fmt.Fprintf(&b, "%s: {{#%s.%s#}}\n", v.Label, start.ID, v.Variable)
			}
		}
	}

	for _, d := range node.DependsOn {
		upstream := g.Node(d.NodeID)
		if upstream == nil {
			continue
		}
		switch upstream.Type {
		case domain.NodeTypeRetrieval:
			fmt.Fprintf(&b, "\nContext:\n{{#%s.result#}}\n", upstream.ID)
		case domain.NodeTypeClassifier:
			fmt.Fprintf(&b, "\nDetected class: {{#%s.class_name#}}\n", upstream.ID)
		case domain.NodeTypeConditional:
			// The branch itself carries no payload; reference its input.
			for _, dd := range upstream.DependsOn {
				if up := g.Node(dd.NodeID); up != nil && up.Type == domain.NodeTypeClassifier {
					fmt.Fprintf(&b, "\nDetected class: {{#%s.class_name#}}\n", up.ID)
				}
			}
		case domain.NodeTypeLLM, domain.NodeTypeTemplate, domain.NodeTypeAggregator:
			fmt.Fprintf(&b, "\nUpstream result:\n{{#%s.text#}}\n", upstream.ID)
		}
	}

	b.WriteString("\n")
	b.WriteString(trailingInstructions[profile.Intent])
	return b.String()
}

func llmConfig(node *domain.WorkflowNode, g *domain.WorkflowGraph, profile domain.RequirementProfile) domain.LLMConfig {
	return domain.LLMConfig{
		Model:        selectModel(node, profile),
		SystemPrompt: systemPrompt(node, profile),
		UserPrompt:   userPrompt(node, g, profile),
		Fallback:     fallbackFor(profile),
		Retry:        defaultRetry(),
		ValidationCriteria: []string{
			"response is non-empty",
			"response addresses the referenced inputs",
			"response follows the numbered guidelines",
		},
	}
}

func classifierConfig(node *domain.WorkflowNode, g *domain.WorkflowGraph, profile domain.RequirementProfile) domain.ClassifierConfig {
	primary := primaryCaseValue(profile)
	return domain.ClassifierConfig{
		Model: selectModel(node, profile),
		Classes: []domain.ClassifierClass{
			{ID: "class-1", Name: primary},
			{ID: "class-2", Name: "other"},
		},
		Instruction: fmt.Sprintf("Classify the request. Use %q when the stated condition applies, otherwise \"other\".", primary),
		Fallback:    "other",
		Retry:       defaultRetry(),
		ValidationCriteria: []string{
			"exactly one class returned",
			"class is one of the declared classes",
		},
	}
}

func fallbackFor(profile domain.RequirementProfile) string {
	if profile.Intent == domain.IntentCustomerService {
		return "I could not process your request automatically. A member of the team will follow up shortly."
	}
	return "The request could not be processed. Please try again or rephrase."
}
