package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

const maxUploadBytes = 5 << 20 // 5 MiB

// Upload accepts a single image under the multipart field "image" and stores
// it in dir with a timestamp-prefixed name. The returned path is what create
// and update calls reference later; nothing verifies the reference afterwards.
func Upload(dir string, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				respondError(w, http.StatusBadRequest, "file too large (limit 5MB)")
				return
			}
			respondError(w, http.StatusBadRequest, "no file uploaded")
			return
		}
		file, header, err := r.FormFile("image")
		if err != nil {
			respondError(w, http.StatusBadRequest, "no file uploaded")
			return
		}
		defer file.Close()

		// Sniff the real content type rather than trusting the part header.
		head := make([]byte, 512)
		n, err := file.Read(head)
		if err != nil && err != io.EOF {
			respondInternal(w, lg, "read upload", err)
			return
		}
		if !strings.HasPrefix(http.DetectContentType(head[:n]), "image/") {
			respondError(w, http.StatusBadRequest, "only image files are allowed")
			return
		}
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			respondInternal(w, lg, "rewind upload", err)
			return
		}

		name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitizeFilename(header.Filename))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			respondInternal(w, lg, "create upload dir", err)
			return
		}
		dest := filepath.Join(dir, name)
		out, err := os.Create(dest)
		if err != nil {
			respondInternal(w, lg, "create upload file", err)
			return
		}
		defer out.Close()
		if _, err := io.Copy(out, file); err != nil {
			_ = os.Remove(dest)
			respondInternal(w, lg, "write upload file", err)
			return
		}

		lg.Infow("image uploaded", "file", name, "size", header.Size)
		respondJSON(w, http.StatusOK, map[string]string{
			"message":  "image uploaded successfully",
			"filePath": "/uploads/" + name,
		})
	}
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	if name == "." || name == string(filepath.Separator) || name == "" {
		name = "upload"
	}
	return name
}
