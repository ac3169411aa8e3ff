package httpapi

import (
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	"horse.fit/localizer/internal/fieldtrans"
	"horse.fit/localizer/internal/language"
	"horse.fit/localizer/internal/provider"
	"horse.fit/localizer/internal/reader"
	"horse.fit/localizer/internal/router"
	"horse.fit/localizer/internal/service"
)

// maxDocumentChars caps how much extracted document text one request
// may translate.
const maxDocumentChars = 20000

type translateRequest struct {
	Text            string   `json:"text"`
	SourceLanguage  string   `json:"source_language"`
	Domain          string   `json:"domain"`
	TargetLanguages []string `json:"target_languages"`
}

type detectRequest struct {
	Text string `json:"text"`
}

type documentRequest struct {
	URL             string   `json:"url"`
	SourceLanguage  string   `json:"source_language"`
	TargetLanguages []string `json:"target_languages"`
}

type fieldsRequest struct {
	Document        map[string]any `json:"document"`
	SourceLanguage  string         `json:"source_language"`
	TargetLanguage  string         `json:"target_language"`
}

type languageEntry struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Regional bool   `json:"regional"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return success(c, map[string]any{
		"service": "localizer",
		"time":    time.Now().UTC(),
	})
}

func (s *Server) handleLanguages(c echo.Context) error {
	codes := language.Codes()
	items := make([]languageEntry, 0, len(codes))
	for _, code := range codes {
		items = append(items, languageEntry{
			Code:     code,
			Name:     language.Name(code),
			Regional: language.IsRegional(code),
		})
	}
	return success(c, map[string]any{"items": items})
}

func (s *Server) handleModels(c echo.Context) error {
	return success(c, map[string]any{
		"bilingual": map[string]any{
			"name":     provider.BilingualName,
			"model":    s.cfg.BilingualModel,
			"endpoint": s.cfg.BilingualEndpoint,
		},
		"multilingual": map[string]any{
			"name":     provider.MultilingualName,
			"model":    s.cfg.MultilingualModel,
			"endpoint": s.cfg.MultilingualEndpoint,
		},
		"registry": s.svc.Registry().Stats(),
	})
}

func (s *Server) handleHistory(c echo.Context) error {
	limit, err := parsePositiveInt(c.QueryParam("limit"), 50, 1, 500)
	if err != nil {
		return failValidation(c, map[string]string{"limit": err.Error()})
	}

	records, err := s.svc.History(c.Request().Context(), limit)
	if err != nil {
		return failUnprocessable(c, "Translation history is not configured")
	}
	return success(c, map[string]any{"items": records})
}

func (s *Server) handleTranslate(c echo.Context) error {
	var req translateRequest
	fields, err := decodeValidated(c, translateSchema, &req)
	if err != nil {
		return internalError(c, "Failed to read request")
	}
	if fields != nil {
		return failValidation(c, fields)
	}

	resp, err := s.svc.Translate(c.Request().Context(), service.Request{
		Text:        req.Text,
		SourceLang:  req.SourceLanguage,
		TargetLangs: req.TargetLanguages,
		Domain:      req.Domain,
	})
	if err != nil {
		return s.translateError(c, err)
	}
	return success(c, resp)
}

func (s *Server) handleDetectLanguage(c echo.Context) error {
	var req detectRequest
	fields, err := decodeValidated(c, detectSchema, &req)
	if err != nil {
		return internalError(c, "Failed to read request")
	}
	if fields != nil {
		return failValidation(c, fields)
	}

	result, err := s.svc.DetectLanguage(c.Request().Context(), req.Text)
	if err != nil {
		return s.translateError(c, err)
	}
	return success(c, result)
}

func (s *Server) handleTranslateDocument(c echo.Context) error {
	var req documentRequest
	fields, err := decodeValidated(c, documentSchema, &req)
	if err != nil {
		return internalError(c, "Failed to read request")
	}
	if fields != nil {
		return failValidation(c, fields)
	}

	text, err := reader.FetchText(c.Request().Context(), req.URL)
	if err != nil {
		s.logger.Warn().Err(err).Str("url", req.URL).Msg("document fetch failed")
		return failUnprocessable(c, "Failed to extract readable text from document")
	}
	text, truncated := reader.TruncateText(text, maxDocumentChars)
	if truncated {
		s.logger.Info().Str("url", req.URL).Msg("extracted document text truncated")
	}

	resp, err := s.svc.Translate(c.Request().Context(), service.Request{
		Text:        text,
		SourceLang:  req.SourceLanguage,
		TargetLangs: req.TargetLanguages,
	})
	if err != nil {
		return s.translateError(c, err)
	}
	return success(c, map[string]any{
		"url":             req.URL,
		"extracted_chars": len([]rune(text)),
		"translation":     resp,
	})
}

func (s *Server) handleTranslateFields(c echo.Context) error {
	var req fieldsRequest
	fields, err := decodeValidated(c, fieldsSchema, &req)
	if err != nil {
		return internalError(c, "Failed to read request")
	}
	if fields != nil {
		return failValidation(c, fields)
	}

	target := language.NormalizeCode(req.TargetLanguage)
	ctx := c.Request().Context()

	translated, err := fieldtrans.Apply(req.Document, func(text string) (string, error) {
		resp, translateErr := s.svc.Translate(ctx, service.Request{
			Text:        text,
			SourceLang:  req.SourceLanguage,
			TargetLangs: []string{target},
		})
		if translateErr != nil {
			return "", translateErr
		}
		result := resp.Results[target]
		if result.Error != "" {
			return "", errors.New(result.Error)
		}
		return result.TranslatedText, nil
	})
	if err != nil {
		return s.translateError(c, err)
	}

	return success(c, map[string]any{
		"target_language": target,
		"document":        translated,
	})
}

func (s *Server) translateError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrEmptyInput):
		return failValidation(c, map[string]string{"text": "must not be empty"})
	case errors.Is(err, service.ErrNoTargets):
		return failValidation(c, map[string]string{"target_languages": "must contain at least one supported code"})
	case errors.Is(err, router.ErrUnsupportedLanguage):
		return failUnprocessable(c, err.Error())
	default:
		s.logger.Error().Err(err).Msg("translation request failed")
		return internalError(c, "Translation failed")
	}
}
