package handlers

import (
	"html/template"
	"net/http"
)

func HandleHome(tmpl *template.Template) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		render(w, tmpl, "form.html", nil)
	})
}

func HandlePromptGeneratorPage(tmpl *template.Template) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		render(w, tmpl, "prompt_generator.html", nil)
	})
}
