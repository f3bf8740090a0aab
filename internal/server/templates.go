package server

import (
	"html/template"
)

// The index pages are deliberately plain: installers consume the anchor
// tags, humans only glance at them.

var welcomeTmpl = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
  <head><title>Welcome to pindex!</title></head>
  <body>
    <h1>Welcome to pindex!</h1>
    <p>This is a package index serving {{.NumPkgs}} packages.</p>
    <p>To use it with pip:</p>
    <pre>pip install --index-url {{.URL}}simple/ PACKAGE [PACKAGE2...]</pre>
    <p><a href="{{.Simple}}">simple index</a> &middot; <a href="{{.Packages}}">all packages</a></p>
    <p>pindex version: {{.Version}}</p>
  </body>
</html>
`))

var simpleIndexTmpl = template.Must(template.New("simpleIndex").Parse(`<!DOCTYPE html>
<html>
  <head><title>Simple Index</title></head>
  <body>
    <h1>Simple Index</h1>
{{- range .Projects}}
    <a href="{{.}}/">{{.}}</a><br>
{{- end}}
  </body>
</html>
`))

var simpleProjectTmpl = template.Must(template.New("simpleProject").Parse(`<!DOCTYPE html>
<html>
  <head><title>Links for {{.Project}}</title></head>
  <body>
    <h1>Links for {{.Project}}</h1>
{{- range .Links}}
    <a href="{{.Href}}">{{.Text}}</a><br>
{{- end}}
  </body>
</html>
`))

var packagesTmpl = template.Must(template.New("packages").Parse(`<!DOCTYPE html>
<html>
  <head><title>Index of packages</title></head>
  <body>
    <h1>Index of packages</h1>
{{- range .Links}}
    <a href="{{.Href}}">{{.Text}}</a><br>
{{- end}}
  </body>
</html>
`))

// link is one anchor on an index page.
type link struct {
	Text string
	Href string
}
