package domain

// FileType represents the allowed source document types for import.
type FileType string

const (
	FileTypeXLSX FileType = "xlsx"
	FileTypePDF  FileType = "pdf"
)

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"xlsx": FileTypeXLSX,
	"xlsm": FileTypeXLSX,
	"pdf":  FileTypePDF,
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": FileTypeXLSX,
	"application/vnd.ms-excel.sheet.macroEnabled.12":                    FileTypeXLSX,
	"application/pdf": FileTypePDF,
}

// FileStatus represents the lifecycle of an uploaded source document.
type FileStatus string

const (
	FileStatusStored FileStatus = "stored"
	FileStatusFailed FileStatus = "failed"
)

// DocumentKind classifies a textual document by keyword presence,
// first match wins in this order.
type DocumentKind string

const (
	DocumentKindQuote       DocumentKind = "Quote"
	DocumentKindBinder      DocumentKind = "Binder"
	DocumentKindPolicy      DocumentKind = "Policy"
	DocumentKindCertificate DocumentKind = "Certificate"
	DocumentKindUnknown     DocumentKind = "Unknown"
)
