package requirement

import (
	"strings"

	"github.com/flowsmith/flowsmith/pkg/domain"
)

// intentRule pairs an intent with its marker keywords. Rules are checked in
// order and the highest match count wins; ties keep the earlier rule.
type intentRule struct {
	intent  domain.Intent
	markers []string
}

var intentRules = []intentRule{
	{domain.IntentTranslation, []string{"translate", "translation", "localize"}},
	{domain.IntentCustomerService, []string{"customer", "support", "ticket", "inquiry", "complaint", "faq", "escalat"}},
	{domain.IntentDocumentProcessing, []string{"document", "pdf", "contract", "invoice", "extract", "summariz"}},
	{domain.IntentDataAnalysis, []string{"analyz", "analys", "sentiment", "classif", "categor", "insight", "trend"}},
	{domain.IntentContentGeneration, []string{"write", "generate", "draft", "blog", "article", "marketing copy"}},
	{domain.IntentAPIIntegration, []string{"api", "webhook", "sync", "integrat"}},
	{domain.IntentAutomation, []string{"automat", "schedule", "pipeline", "workflow"}},
}

func detectIntent(corpus string) (domain.Intent, float64) {
	best := domain.IntentUnknown
	bestCount := 0
	for _, rule := range intentRules {
		count := 0
		for _, m := range rule.markers {
			if strings.Contains(corpus, m) {
				count++
			}
		}
		if count > bestCount {
			best = rule.intent
			bestCount = count
		}
	}
	if best == domain.IntentUnknown {
		return best, 0.2
	}
	conf := 0.5 + 0.15*float64(bestCount)
	if conf > 0.95 {
		conf = 0.95
	}
	return best, conf
}

// inputMarker maps request vocabulary to a declared data input.
type inputMarker struct {
	markers []string
	input   domain.DataInput
}

var inputMarkers = []inputMarker{
	{[]string{"document", "file", "pdf", "attachment", "upload", "csv", "spreadsheet"},
		domain.DataInput{Name: "document", Type: domain.InputTypeFile, Required: true, Description: "Document to process"}},
	{[]string{"paragraph", "text", "article", "content", "description"},
		domain.DataInput{Name: "input_text", Type: domain.InputTypeParagraph, Required: true, Description: "Text to process"}},
	{[]string{"question", "query", "message", "inquiry", "request from"},
		domain.DataInput{Name: "user_question", Type: domain.InputTypeText, Required: true, Description: "User question"}},
	{[]string{"email"},
		domain.DataInput{Name: "email_content", Type: domain.InputTypeParagraph, Required: true, Description: "Email content"}},
	{[]string{"number", "amount", "quantity", "threshold value"},
		domain.DataInput{Name: "amount", Type: domain.InputTypeNumber, Required: false, Description: "Numeric input"}},
}

func extractInputs(corpus string) []domain.DataInput {
	var inputs []domain.DataInput
	seen := map[string]bool{}
	for _, im := range inputMarkers {
		for _, m := range im.markers {
			if strings.Contains(corpus, m) && !seen[im.input.Name] {
				inputs = append(inputs, im.input)
				seen[im.input.Name] = true
				break
			}
		}
	}
	return inputs
}

// intentOutputs declares the implied primary output per intent. A request
// with a classified intent always has at least one output requirement.
var intentOutputs = map[domain.Intent]domain.OutputRequirement{
	domain.IntentTranslation:        {Name: "translated_text", Description: "Translated version of the input text"},
	domain.IntentCustomerService:    {Name: "response", Description: "Reply to the customer inquiry"},
	domain.IntentDocumentProcessing: {Name: "processed_document", Description: "Extracted or summarized document content"},
	domain.IntentDataAnalysis:       {Name: "analysis_report", Description: "Structured analysis of the input data"},
	domain.IntentContentGeneration:  {Name: "generated_content", Description: "Generated content"},
	domain.IntentAPIIntegration:     {Name: "integration_result", Description: "Result of the integration call"},
	domain.IntentAutomation:         {Name: "result", Description: "Outcome of the automated process"},
}

var outputTopicMarkers = map[string]domain.OutputRequirement{
	"summary":   {Name: "summary", Description: "Summary of the input"},
	"report":    {Name: "report", Description: "Generated report"},
	"sentiment": {Name: "sentiment", Description: "Sentiment assessment"},
	"theme":     {Name: "themes", Description: "Extracted themes"},
	"category":  {Name: "category", Description: "Assigned category"},
	"score":     {Name: "score", Description: "Computed score"},
}

func extractOutputs(corpus string, intent domain.Intent) []domain.OutputRequirement {
	var outputs []domain.OutputRequirement
	if primary, ok := intentOutputs[intent]; ok {
		outputs = append(outputs, primary)
	}
	// Stable scan order keeps output lists deterministic.
	for _, marker := range []string{"summary", "report", "sentiment", "theme", "category", "score"} {
		if strings.Contains(corpus, marker) {
			out := outputTopicMarkers[marker]
			duplicate := false
			for _, existing := range outputs {
				if existing.Name == out.Name {
					duplicate = true
					break
				}
			}
			if !duplicate {
				outputs = append(outputs, out)
			}
		}
	}
	return outputs
}

var ruleMarkers = []string{"if ", "when ", "unless ", "must ", "should ", "escalat", "route", "approve", "reject", "only ", "always ", "never "}

// extractBusinessRules keeps the sentences that read like policy: anything
// carrying a conditional or obligation marker.
func extractBusinessRules(input string, answers map[string]string) []string {
	text := input
	if a, ok := answers["business_rules"]; ok {
		text += ". " + a
	}

	var rules []string
	for _, sentence := range splitSentences(text) {
		lower := strings.ToLower(sentence)
		for _, m := range ruleMarkers {
			if strings.Contains(lower, m) {
				rules = append(rules, sentence)
				break
			}
		}
	}
	return rules
}

func splitSentences(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '\n' || r == ';' || r == '!' || r == '?'
	})
	var out []string
	for _, f := range fields {
		if s := strings.TrimSpace(f); s != "" {
			out = append(out, s)
		}
	}
	return out
}

var (
	integrationMarkers = []string{"knowledge base", "knowledge", "database", "crm", "api", "slack", "email", "webhook", "spreadsheet", "s3", "storage"}
	performanceMarkers = []string{"real-time", "realtime", "fast", "latency", "within seconds", "high volume", "throughput", "concurrent"}
	securityMarkers    = []string{"secure", "security", "pii", "gdpr", "hipaa", "encrypt", "confidential", "compliance", "access control"}
)

// scanSignals collects the markers present in the corpus. Markers match
// at word starts only, so "rapid" does not count as an "api" signal.
func scanSignals(corpus string, markers []string) []string {
	var found []string
	for _, m := range markers {
		if containsMarker(corpus, m, false) {
			found = append(found, m)
		}
	}
	return found
}
