// Package fieldtrans rewrites human-readable fields inside decoded
// JSON documents while leaving identifiers, URLs, and other machine
// fields untouched.
package fieldtrans

import (
	"fmt"
	"strings"
)

// Translator rewrites one string value.
type Translator func(text string) (string, error)

// Field names whose string values carry prose worth translating.
var translatableFields = map[string]struct{}{
	"title":       {},
	"subtitle":    {},
	"heading":     {},
	"description": {},
	"summary":     {},
	"content":     {},
	"body":        {},
	"text":        {},
	"caption":     {},
	"label":       {},
	"message":     {},
	"question":    {},
	"answer":      {},
}

// TranslatableField reports whether a JSON field name carries prose.
func TranslatableField(name string) bool {
	_, ok := translatableFields[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Apply walks a decoded JSON document and passes every translatable
// string field through translate. Maps and slices are rebuilt, the
// input is never mutated. The first translation error aborts the walk
// with the field path in the error.
func Apply(document any, translate Translator) (any, error) {
	if translate == nil {
		return nil, fmt.Errorf("translator is required")
	}
	return applyNode(document, "", translate)
}

func applyNode(node any, path string, translate Translator) (any, error) {
	switch value := node.(type) {
	case map[string]any:
		rebuilt := make(map[string]any, len(value))
		for key, child := range value {
			childPath := joinPath(path, key)
			if text, isString := child.(string); isString && TranslatableField(key) {
				if strings.TrimSpace(text) == "" {
					rebuilt[key] = text
					continue
				}
				translated, err := translate(text)
				if err != nil {
					return nil, fmt.Errorf("translate field %s: %w", childPath, err)
				}
				rebuilt[key] = translated
				continue
			}
			walked, err := applyNode(child, childPath, translate)
			if err != nil {
				return nil, err
			}
			rebuilt[key] = walked
		}
		return rebuilt, nil
	case []any:
		rebuilt := make([]any, len(value))
		for i, child := range value {
			walked, err := applyNode(child, fmt.Sprintf("%s[%d]", path, i), translate)
			if err != nil {
				return nil, err
			}
			rebuilt[i] = walked
		}
		return rebuilt, nil
	default:
		return node, nil
	}
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
