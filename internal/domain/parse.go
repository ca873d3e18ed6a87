package domain

import (
	"encoding/json"
	"strings"
)

// parseAttempt tries to read a verse out of raw model output.
type parseAttempt func(raw string) (Verse, bool)

// recoveryChain is tried in order; the first attempt that succeeds wins.
var recoveryChain = []parseAttempt{
	parseStrict,
	parseEmbedded,
	parsePartial,
	parseRawText,
}

// ParseVerse turns raw model output into a Verse. Well-formed JSON is
// preferred, then a JSON object embedded in surrounding prose, then an
// object carrying only text. Any other non-empty output becomes the verse
// text with ReferenceUnavailable. Empty output is a ShapeError.
func ParseVerse(raw string) (Verse, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Verse{}, &ShapeError{Message: ErrEmptyModelOutput.Error(), Err: ErrEmptyModelOutput}
	}
	for _, attempt := range recoveryChain {
		if v, ok := attempt(raw); ok {
			return v, nil
		}
	}
	// parseRawText accepts any non-empty input.
	return Verse{}, &ShapeError{Message: ErrEmptyModelOutput.Error(), Raw: raw, Err: ErrEmptyModelOutput}
}

func parseStrict(raw string) (Verse, bool) {
	v, ok := decodeVerse(raw)
	return v, ok && v.complete()
}

func parseEmbedded(raw string) (Verse, bool) {
	obj, ok := embeddedObject(raw)
	if !ok {
		return Verse{}, false
	}
	v, ok := decodeVerse(obj)
	return v, ok && v.complete()
}

// parsePartial accepts an object that has text but lacks a reference.
func parsePartial(raw string) (Verse, bool) {
	v, ok := decodeVerse(raw)
	if !ok {
		obj, found := embeddedObject(raw)
		if !found {
			return Verse{}, false
		}
		if v, ok = decodeVerse(obj); !ok {
			return Verse{}, false
		}
	}
	if v.Text == "" {
		return Verse{}, false
	}
	v.Reference = ReferenceUnavailable
	return v, true
}

func parseRawText(raw string) (Verse, bool) {
	if raw == "" {
		return Verse{}, false
	}
	return Verse{Text: raw, Reference: ReferenceUnavailable}, true
}

func decodeVerse(s string) (Verse, bool) {
	var v Verse
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return Verse{}, false
	}
	v.Text = strings.TrimSpace(v.Text)
	v.Reference = strings.TrimSpace(v.Reference)
	return v, true
}

// embeddedObject returns the span from the first '{' to the last '}'.
func embeddedObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}
