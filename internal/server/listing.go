package server

import "html/template"

const listingTemplateName = "listing"

// listingTemplate はディレクトリ一覧のHTML
var listingTemplate = template.Must(template.New(listingTemplateName).Parse(`<!DOCTYPE HTML>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Directory listing for {{.Path}}</title>
</head>
<body>
<h1>Directory listing for {{.Path}}</h1>
<hr>
<ul>
{{- range .Entries}}
<li><a href="{{.Href}}">{{.Name}}</a></li>
{{- end}}
</ul>
<hr>
</body>
</html>
`))
