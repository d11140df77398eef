package web

import (
	"bytes"
	"embed"
	"html/template"
	"strconv"

	"github.com/yuin/goldmark"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates 解析内置页面模板
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"markdown": Markdown,
		"inc":      func(i int) int { return i + 1 },
		"metric":   Metric,
	}).ParseFS(templateFS, "templates/*.html")
}

// Markdown 将 Markdown 片段渲染为 HTML，原始 HTML 会被转义
func Markdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}

// Metric 两位小数，缺失时为 n/a
func Metric(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
