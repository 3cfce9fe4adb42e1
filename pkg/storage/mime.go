package storage

import (
	"path"
	"strings"
)

// mimeTypes is the canonical extension → MIME mapping. Deliberately a
// fixed table instead of mime.TypeByExtension: the host OS mime
// database must not change what the retrieval contract reports.
var mimeTypes = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".txt":  "text/plain",
}

// MIMEType returns the MIME type for a storage path based on its
// extension, falling back to application/octet-stream.
func MIMEType(storagePath string) string {
	ext := strings.ToLower(path.Ext(storagePath))
	if mt, ok := mimeTypes[ext]; ok {
		return mt
	}
	return "application/octet-stream"
}
