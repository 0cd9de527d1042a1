// SPDX-License-Identifier: Apache-2.0

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/exp/slices"

	"github.com/xataio/csvsanity/internal/json"
	"github.com/xataio/csvsanity/pkg/transformers"
	"github.com/xataio/csvsanity/pkg/transformers/builder"
)

type Result struct {
	Name         string        `json:"name"`
	Transformers []Transformer `json:"transformers"`
}

type Transformer struct {
	Name       string      `json:"name"`
	Parameters []Parameter `json:"parameters"`
}

type Parameter struct {
	Name          string `json:"name"`
	SupportedType string `json:"supported_type"`
	Default       any    `json:"default"`
	Required      bool   `json:"required"`
	Values        []any  `json:"values,omitempty"`
}

func main() {
	output := flag.String("output", "transformers-definition.json", "File where the transformers definition will be written")
	flag.Parse()

	log.Println("Generating transformers definition...")

	result := Result{
		Name:         "transformers",
		Transformers: extractTransformers(definitions()),
	}

	if err := writeJSONToFile(*output, result); err != nil {
		log.Fatalf("failed to write JSON to file: %v", err)
	}

	log.Println("Transformers definition generated successfully")
}

func definitions() map[transformers.TransformerType]*transformers.Definition {
	defs := make(map[transformers.TransformerType]*transformers.Definition, len(builder.TransformersMap))
	for name, t := range builder.TransformersMap {
		defs[name] = t.Definition
	}
	return defs
}

func extractTransformers(definitions map[transformers.TransformerType]*transformers.Definition) []Transformer {
	// Sort the keys to ensure consistent ordering
	keys := make([]string, 0, len(definitions))
	for trName := range definitions {
		keys = append(keys, string(trName))
	}
	slices.Sort(keys)

	transformersList := make([]Transformer, 0, len(definitions))
	for _, trName := range keys {
		transformersList = append(transformersList, Transformer{
			Name:       trName,
			Parameters: extractParameters(definitions[transformers.TransformerType(trName)].Parameters),
		})
	}

	return transformersList
}

func extractParameters(params []transformers.Parameter) []Parameter {
	parameters := make([]Parameter, 0, len(params))
	for _, param := range params {
		parameters = append(parameters, Parameter{
			Name:          param.Name,
			SupportedType: param.SupportedType,
			Default:       param.Default,
			Required:      param.Required,
			Values:        param.Values,
		})
	}
	return parameters
}

func writeJSONToFile(filename string, data any) error {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	if err := os.WriteFile(filename, append(jsonData, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
