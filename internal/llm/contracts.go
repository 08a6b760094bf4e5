package llm

import "context"

// DocumentKind selects which extraction schema and prompt to use.
type DocumentKind string

const (
	KindInvoice  DocumentKind = "invoice"
	KindContract DocumentKind = "contract"
)

// ExtractRequest describes one uploaded document to extract fields from.
// Data carries the raw file bytes when the document is an image or PDF;
// Text carries pre-extracted text when the caller already has it.
type ExtractRequest struct {
	Kind     DocumentKind
	Filename string
	MIMEType string
	Data     []byte
	Text     string
}

// DocumentExtractor is the interface the intake pipeline depends on.
// It returns the model's raw reply; downstream parsing and normalization
// decide what to make of it.
type DocumentExtractor interface {
	ExtractDocument(ctx context.Context, req ExtractRequest) (string, error)
}
