package pagesum

// UntitledTitle is used when no title can be found in a page.
const UntitledTitle = "Untitled"

// ExtractedContent holds the readable text of a page.
type ExtractedContent struct {
	Title     string `json:"title"`
	Text      string `json:"text"`
	WordCount int    `json:"word_count"`
	CharCount int    `json:"char_count"`
}

// Extractor turns raw HTML into readable text.
type Extractor interface {
	// Extract parses the HTML and returns its title and cleaned text.
	// contentType is the response Content-Type header, if known; its charset
	// is used when the document carries no byte order mark.
	// Extract never fails: malformed input yields empty or near-empty text.
	Extract(html []byte, contentType string) *ExtractedContent
}

// NewExtractedContent builds content from a title and already cleaned text,
// computing the counts. An empty title becomes UntitledTitle.
func NewExtractedContent(title, text string) *ExtractedContent {
	if title == "" {
		title = UntitledTitle
	}
	return &ExtractedContent{
		Title:     title,
		Text:      text,
		WordCount: CountWords(text),
		CharCount: CharCount(text),
	}
}
