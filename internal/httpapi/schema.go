package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/labstack/echo/v4"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const maxRequestBodyBytes = 1 << 20

const translateSchemaJSON = `{
	"type": "object",
	"required": ["text", "target_languages"],
	"additionalProperties": false,
	"properties": {
		"text": {"type": "string", "minLength": 1},
		"source_language": {"type": "string"},
		"domain": {"type": "string"},
		"target_languages": {
			"type": "array",
			"minItems": 1,
			"maxItems": 23,
			"items": {"type": "string", "minLength": 2}
		}
	}
}`

const detectSchemaJSON = `{
	"type": "object",
	"required": ["text"],
	"additionalProperties": false,
	"properties": {
		"text": {"type": "string", "minLength": 1}
	}
}`

const documentSchemaJSON = `{
	"type": "object",
	"required": ["url", "target_languages"],
	"additionalProperties": false,
	"properties": {
		"url": {"type": "string", "minLength": 1, "format": "uri"},
		"source_language": {"type": "string"},
		"target_languages": {
			"type": "array",
			"minItems": 1,
			"maxItems": 23,
			"items": {"type": "string", "minLength": 2}
		}
	}
}`

const fieldsSchemaJSON = `{
	"type": "object",
	"required": ["document", "target_language"],
	"additionalProperties": false,
	"properties": {
		"document": {"type": "object"},
		"source_language": {"type": "string"},
		"target_language": {"type": "string", "minLength": 2}
	}
}`

var (
	translateSchema = jsonschema.MustCompileString("translate.json", translateSchemaJSON)
	detectSchema    = jsonschema.MustCompileString("detect.json", detectSchemaJSON)
	documentSchema  = jsonschema.MustCompileString("document.json", documentSchemaJSON)
	fieldsSchema    = jsonschema.MustCompileString("fields.json", fieldsSchemaJSON)
)

// decodeValidated reads the request body, checks it against schema, and
// unmarshals it into out. The returned field map is non-nil exactly
// when validation failed.
func decodeValidated(c echo.Context, schema *jsonschema.Schema, out any) (map[string]string, error) {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxRequestBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read request body: %w", err)
	}

	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return map[string]string{"body": "must be valid JSON"}, nil
	}

	if err := schema.Validate(raw); err != nil {
		return schemaErrorFields(err), nil
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return map[string]string{"body": err.Error()}, nil
	}
	return nil, nil
}

func schemaErrorFields(err error) map[string]string {
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return map[string]string{"body": err.Error()}
	}

	fields := map[string]string{}
	leaves := validationErr.Causes
	if len(leaves) == 0 {
		leaves = []*jsonschema.ValidationError{validationErr}
	}
	for _, cause := range leaves {
		location := cause.InstanceLocation
		if location == "" {
			location = "body"
		}
		fields[location] = cause.Message
	}
	return fields
}
