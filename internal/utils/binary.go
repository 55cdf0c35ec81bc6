package utils

import (
	"bytes"
	"io"
	"os"
	"unicode/utf8"
)

// sniffLength caps the number of leading bytes inspected when sniffing a
// file for binary content before the renderer commits to a full read.
const sniffLength = 8000

// IsBinary reports whether data cannot be rendered as a text content block.
// Invalid UTF-8 or any NUL byte marks the content as binary.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	if !utf8.Valid(data) {
		return true
	}
	return bytes.IndexByte(data, 0) >= 0
}

// IsFileBinary sniffs up to sniffLength leading bytes of the file at
// filePath and reports whether they look binary. Files that cannot be
// opened or read are reported as text so the caller surfaces the real
// read error instead.
func IsFileBinary(filePath string) bool {
	fileHandle, openError := os.Open(filePath)
	if openError != nil {
		return false
	}
	defer fileHandle.Close()

	sniffBuffer := make([]byte, sniffLength)
	bytesRead, readError := fileHandle.Read(sniffBuffer)
	if readError != nil && readError != io.EOF {
		return false
	}
	return IsBinary(sniffBuffer[:bytesRead])
}
