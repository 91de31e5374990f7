package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"callagent/internal/export"
)

func HandleListFiles(exporter *export.Exporter, tmpl *template.Template) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		files, err := exporter.List()
		if err != nil {
			http.Error(w, "Failed to list files", http.StatusInternalServerError)
			return
		}

		render(w, tmpl, "file_list.html", struct{ Files []string }{Files: files})
	})
}

func HandleDownload(exporter *export.Exporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		filename := r.PathValue("filename")

		path, err := exporter.Path(filename)
		switch {
		case errors.Is(err, export.ErrInvalidFilename):
			writeErrorResponse(w, http.StatusBadRequest, "invalid filename", nil)
			return
		case err != nil:
			writeErrorResponse(w, http.StatusNotFound, "File not found", nil)
			return
		}

		w.Header().Set("Content-Type", export.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		http.ServeFile(w, r, path)
	})
}
