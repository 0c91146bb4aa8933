package domain

// NodeConfig is the typed configuration payload of a workflow node.
// Each node type has its own variant with a statically validated field set,
// constructed once by the configurator. The serializer switches on the
// concrete type to produce the external data map.
type NodeConfig interface {
	ConfigType() NodeType
}

// StartVariable is one typed input slot on the start node.
type StartVariable struct {
	Variable string    `json:"variable"`
	Label    string    `json:"label"`
	Type     InputType `json:"type"`
	Required bool      `json:"required"`

	// Type-specific extras.
	MaxLength    int      `json:"max_length,omitempty"`    // text inputs
	AllowedTypes []string `json:"allowed_types,omitempty"` // file inputs
	MaxSizeMB    int      `json:"max_size_mb,omitempty"`   // file inputs
}

// StartConfig holds one input slot per declared data input.
type StartConfig struct {
	Variables []StartVariable `json:"variables"`
}

func (StartConfig) ConfigType() NodeType { return NodeTypeStart }

// EndOutput is one output slot on the end node.
type EndOutput struct {
	Variable string `json:"variable"`
	Type     string `json:"type"`

	// ValueSelector references the upstream node and field the output
	// reads from, e.g. ["answer-generator", "text"].
	ValueSelector []string `json:"value_selector,omitempty"`
}

// EndConfig holds the end node's output slots.
type EndConfig struct {
	Outputs []EndOutput `json:"outputs"`
}

func (EndConfig) ConfigType() NodeType { return NodeTypeEnd }

// ModelConfig selects the model a processing node runs on.
type ModelConfig struct {
	Provider    string  `json:"provider"`
	Name        string  `json:"name"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

// RetryPolicy bounds automatic retries of a node at execution time.
type RetryPolicy struct {
	MaxRetries int     `json:"max_retries"`
	Backoff    float64 `json:"backoff_multiplier"`
}

// LLMConfig configures a processing (llm) node.
type LLMConfig struct {
	Model        ModelConfig `json:"model"`
	SystemPrompt string      `json:"system_prompt"`
	UserPrompt   string      `json:"user_prompt"`

	Fallback           string      `json:"fallback"`
	Retry              RetryPolicy `json:"retry"`
	ValidationCriteria []string    `json:"validation_criteria,omitempty"`
}

func (LLMConfig) ConfigType() NodeType { return NodeTypeLLM }

// ClassifierClass is one routing class of a classifier node.
type ClassifierClass struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ClassifierConfig configures a question-classifier node.
type ClassifierConfig struct {
	Model       ModelConfig       `json:"model"`
	Classes     []ClassifierClass `json:"classes"`
	Instruction string            `json:"instruction"`

	Fallback           string      `json:"fallback"`
	Retry              RetryPolicy `json:"retry"`
	ValidationCriteria []string    `json:"validation_criteria,omitempty"`
}

func (ClassifierConfig) ConfigType() NodeType { return NodeTypeClassifier }

// RetrievalConfig configures a knowledge-retrieval node. TopK and
// ScoreThreshold are tuned by complexity tier.
type RetrievalConfig struct {
	TopK           int     `json:"top_k"`
	ScoreThreshold float64 `json:"score_threshold"`
	Reranking      bool    `json:"reranking_enabled"`

	Fallback           string      `json:"fallback"`
	Retry              RetryPolicy `json:"retry"`
	ValidationCriteria []string    `json:"validation_criteria,omitempty"`
}

func (RetrievalConfig) ConfigType() NodeType { return NodeTypeRetrieval }

// LogicalOperator combines conditions of a conditional case.
type LogicalOperator string

const (
	OperatorAnd LogicalOperator = "and"
	OperatorOr  LogicalOperator = "or"
)

// Condition is one comparison inside a conditional case.
type Condition struct {
	Variable   string `json:"variable"`
	Comparison string `json:"comparison_operator"`
	Value      string `json:"value"`
}

// ConditionGroup is a nested operator/condition pair, used by enterprise
// tier conditionals which mix AND and OR groups.
type ConditionGroup struct {
	Operator   LogicalOperator `json:"operator"`
	Conditions []Condition     `json:"conditions"`
}

// ConditionalConfig configures an if-else node.
type ConditionalConfig struct {
	Operator   LogicalOperator  `json:"operator"`
	Conditions []Condition      `json:"conditions"`
	Groups     []ConditionGroup `json:"groups,omitempty"`
}

func (ConditionalConfig) ConfigType() NodeType { return NodeTypeConditional }

// AggregatorConfig configures a variable-aggregator node.
type AggregatorConfig struct {
	OutputType string     `json:"output_type"`
	Variables  [][]string `json:"variables"`
}

func (AggregatorConfig) ConfigType() NodeType { return NodeTypeAggregator }

// TemplateConfig configures a template-transform node.
type TemplateConfig struct {
	Template  string   `json:"template"`
	Variables []string `json:"variables"`
}

func (TemplateConfig) ConfigType() NodeType { return NodeTypeTemplate }

// CodeConfig configures a code node.
type CodeConfig struct {
	Language string   `json:"language"`
	Code     string   `json:"code"`
	Inputs   []string `json:"inputs,omitempty"`
	Outputs  []string `json:"outputs,omitempty"`
}

func (CodeConfig) ConfigType() NodeType { return NodeTypeCode }
