// Package dsl holds the external document format: the serialized app
// description consumed by the downstream automation runtime. The shape is
// fixed by that runtime, so field names here are wire names, not Go names.
package dsl

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Version is the document schema version the external runtime expects.
const Version = "0.1.5"

// KindApp is the only document kind this pipeline produces.
const KindApp = "app"

// App is the document's app-level metadata block.
type App struct {
	Description    string `yaml:"description" json:"description"`
	Icon           string `yaml:"icon" json:"icon"`
	IconBackground string `yaml:"icon_background" json:"icon_background"`
	Mode           string `yaml:"mode" json:"mode"`
	Name           string `yaml:"name" json:"name"`
}

// Position places a node on the editor canvas.
type Position struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Node is one serialized workflow node. Data is the type-specific payload
// and always carries a "title" and "type" key.
type Node struct {
	ID       string         `yaml:"id" json:"id"`
	Type     string         `yaml:"type" json:"type"`
	Position Position       `yaml:"position" json:"position"`
	Data     map[string]any `yaml:"data" json:"data"`
}

// Edge is one serialized connection between two node ports.
type Edge struct {
	ID           string `yaml:"id" json:"id"`
	Source       string `yaml:"source" json:"source"`
	Target       string `yaml:"target" json:"target"`
	SourceHandle string `yaml:"sourceHandle" json:"sourceHandle"`
	TargetHandle string `yaml:"targetHandle" json:"targetHandle"`
	Type         string `yaml:"type" json:"type"`
}

// Viewport is the initial canvas view.
type Viewport struct {
	X    float64 `yaml:"x" json:"x"`
	Y    float64 `yaml:"y" json:"y"`
	Zoom float64 `yaml:"zoom" json:"zoom"`
}

// Graph is the serialized node/edge graph.
type Graph struct {
	Nodes    []Node   `yaml:"nodes" json:"nodes"`
	Edges    []Edge   `yaml:"edges" json:"edges"`
	Viewport Viewport `yaml:"viewport" json:"viewport"`
}

// Workflow wraps the graph with runtime-level settings.
type Workflow struct {
	EnvironmentVariables []any          `yaml:"environment_variables" json:"environment_variables"`
	Features             map[string]any `yaml:"features" json:"features"`
	Graph                Graph          `yaml:"graph" json:"graph"`
}

// Document is the complete external document.
type Document struct {
	App      App      `yaml:"app" json:"app"`
	Kind     string   `yaml:"kind" json:"kind"`
	Version  string   `yaml:"version" json:"version"`
	Workflow Workflow `yaml:"workflow" json:"workflow"`
}

// MarshalYAML renders the document as the runtime's YAML import format.
func MarshalYAML(doc Document) ([]byte, error) {
	return yaml.Marshal(doc)
}

// MarshalJSON renders the document as indented JSON, for API responses and
// file export.
func MarshalJSON(doc Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// ParseYAML reads a previously exported document back in.
func ParseYAML(data []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}
