package http

// VerseRequestBody is the optional JSON body accepted on POST.
type VerseRequestBody struct {
	Feeling string `json:"feeling"`
}

// VerseResponse is the JSON shape returned on success.
type VerseResponse struct {
	Text      string `json:"text"`
	Reference string `json:"reference"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Raw   string `json:"raw,omitempty"`
}
