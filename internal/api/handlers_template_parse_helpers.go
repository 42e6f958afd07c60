package api

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
)

const baseTemplateFile = "base.html"

// parsePageTemplates builds one template set per page, each layered on
// base.html so every page shares the nav and the banner stack.
func parsePageTemplates(templateDir string, funcMap template.FuncMap, pages []string) (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		parsed, err := parseTemplateSet(templateDir, "base", funcMap, baseTemplateFile, page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse page template %s: %w", page, err)
		}
		templates[page] = parsed
	}
	return templates, nil
}

// Partials are standalone fragments swapped in by HTMX; they never see base.html.
func parsePartialTemplates(templateDir string, funcMap template.FuncMap, partialFiles []string) (map[string]*template.Template, error) {
	partials := make(map[string]*template.Template, len(partialFiles))
	for _, partial := range partialFiles {
		name := strings.TrimSuffix(partial, ".html")
		parsed, err := parseTemplateSet(templateDir, name, funcMap, partial)
		if err != nil {
			return nil, fmt.Errorf("parse partial %s: %w", partial, err)
		}
		if parsed.Lookup(name) == nil {
			return nil, fmt.Errorf("parse partial %s: missing {{define %q}}", partial, name)
		}
		partials[name] = parsed
	}
	return partials, nil
}

func parseTemplateSet(templateDir string, root string, funcMap template.FuncMap, files ...string) (*template.Template, error) {
	paths := make([]string, 0, len(files))
	for _, file := range files {
		path := filepath.Join(templateDir, file)
		if _, err := os.Stat(path); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return template.New(root).Funcs(funcMap).ParseFiles(paths...)
}
