package fieldtrans

import (
	"errors"
	"strings"
	"testing"
)

func upper(text string) (string, error) {
	return strings.ToUpper(text), nil
}

func TestApplyTranslatesNestedProseFields(t *testing.T) {
	t.Parallel()

	document := map[string]any{
		"id":    "doc-42",
		"title": "breaking news",
		"url":   "https://example.com/a",
		"sections": []any{
			map[string]any{
				"heading": "first section",
				"body":    "some text here",
				"order":   float64(1),
			},
		},
		"meta": map[string]any{
			"description": "a short blurb",
			"slug":        "breaking-news",
		},
	}

	result, err := Apply(document, upper)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	root := result.(map[string]any)
	if root["title"] != "BREAKING NEWS" {
		t.Fatalf("title not translated: %v", root["title"])
	}
	if root["id"] != "doc-42" || root["url"] != "https://example.com/a" {
		t.Fatalf("machine fields must pass through unchanged: %v", root)
	}

	section := root["sections"].([]any)[0].(map[string]any)
	if section["heading"] != "FIRST SECTION" || section["body"] != "SOME TEXT HERE" {
		t.Fatalf("nested fields not translated: %v", section)
	}
	if section["order"] != float64(1) {
		t.Fatalf("non-string values must pass through: %v", section["order"])
	}

	meta := root["meta"].(map[string]any)
	if meta["description"] != "A SHORT BLURB" || meta["slug"] != "breaking-news" {
		t.Fatalf("unexpected meta result: %v", meta)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	document := map[string]any{"title": "original"}
	if _, err := Apply(document, upper); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if document["title"] != "original" {
		t.Fatalf("input document was mutated: %v", document)
	}
}

func TestApplySkipsEmptyStrings(t *testing.T) {
	t.Parallel()

	calls := 0
	translate := func(text string) (string, error) {
		calls++
		return text, nil
	}

	document := map[string]any{"title": "  ", "body": "real text"}
	if _, err := Apply(document, translate); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if calls != 1 {
		t.Fatalf("blank fields must be skipped, translator called %d times", calls)
	}
}

func TestApplyReportsFieldPathOnError(t *testing.T) {
	t.Parallel()

	boom := errors.New("backend down")
	translate := func(string) (string, error) { return "", boom }

	document := map[string]any{
		"outer": map[string]any{"title": "hello"},
	}
	_, err := Apply(document, translate)
	if err == nil || !errors.Is(err, boom) {
		t.Fatalf("expected wrapped translator error, got %v", err)
	}
	if !strings.Contains(err.Error(), "outer.title") {
		t.Fatalf("error must name the field path: %v", err)
	}
}

func TestTranslatableField(t *testing.T) {
	t.Parallel()

	if !TranslatableField("Title") || !TranslatableField(" description ") {
		t.Fatalf("expected case-insensitive field matching")
	}
	if TranslatableField("url") || TranslatableField("id") {
		t.Fatalf("machine fields must not be translatable")
	}
}
