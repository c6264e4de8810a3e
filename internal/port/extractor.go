package port

// TextExtractor extracts plain text from a document byte stream.
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}
