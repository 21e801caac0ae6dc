package constants

import (
	"path/filepath"
	"strings"
)

const (
	MimeXLSX        = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MimeCSV         = "text/csv"
	MimePDF         = "application/pdf"
	MimeOctetStream = "application/octet-stream"
)

// DetectContentTypeFromExt dipakai saat upstream tidak mengirim Content-Type
// untuk file unduhan.
func DetectContentTypeFromExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".xlsx":
		return MimeXLSX
	case ".csv":
		return MimeCSV
	case ".pdf":
		return MimePDF
	default:
		return MimeOctetStream // Tidak diketahui
	}
}
