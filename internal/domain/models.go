package domain

// ReferenceUnavailable is reported when the model produced verse text
// without a usable citation.
const ReferenceUnavailable = "Reference unavailable"

// Verse is a single scripture verse as returned to callers.
type Verse struct {
	Text      string `json:"text"`
	Reference string `json:"reference"`
}

// complete reports whether both fields are populated.
func (v Verse) complete() bool {
	return v.Text != "" && v.Reference != ""
}
