// attach.go turns --attach paths into uploads.
//
// Separated so add and edit share it. Every opened file is returned for
// closing even when a later one fails to open.

package notes

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/jpl-au/stash/internal/service"
)

// sniffLen is how much of a file http.DetectContentType looks at.
const sniffLen = 512

// openUploads opens each path as an upload. The caller must closeUploads
// the result, including on error.
func openUploads(paths []string) ([]service.Upload, []*os.File, error) {
	var (
		uploads []service.Upload
		files   []*os.File
	)
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return uploads, files, fmt.Errorf("attach %q: %w", p, err)
		}
		files = append(files, f)

		info, err := f.Stat()
		if err != nil {
			return uploads, files, fmt.Errorf("attach %q: %w", p, err)
		}
		ct, body, err := contentType(f)
		if err != nil {
			return uploads, files, fmt.Errorf("attach %q: %w", p, err)
		}
		uploads = append(uploads, service.Upload{
			Name:        filepath.Base(p),
			ContentType: ct,
			Size:        info.Size(),
			Body:        body,
		})
	}
	return uploads, files, nil
}

// contentType guesses from the extension, falling back to sniffing the
// head of the file. The returned reader yields the whole file.
func contentType(f *os.File) (string, io.Reader, error) {
	if ct := mime.TypeByExtension(filepath.Ext(f.Name())); ct != "" {
		return ct, f, nil
	}
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", nil, err
	}
	head = head[:n]
	return http.DetectContentType(head), io.MultiReader(bytes.NewReader(head), f), nil
}

func closeUploads(files []*os.File) {
	for _, f := range files {
		_ = f.Close()
	}
}
