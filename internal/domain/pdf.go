package domain

// PDFEngine names the library used to open PDF documents
type PDFEngine string

const (
	PDFEngineFitz PDFEngine = "fitz"
	PDFEnginePDF  PDFEngine = "pdf"
)

// UploadedFile is the raw upload received from the client
type UploadedFile struct {
	Filename string
	Content  []byte
}

// ExtractedText represents the plain text pulled out of a PDF, bounded by the extraction cap
type ExtractedText struct {
	Content   string `json:"content"`
	PageCount int    `json:"page_count"`
	PagesRead int    `json:"pages_read"`
	Truncated bool   `json:"truncated"`
}
