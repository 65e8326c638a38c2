package webui

import (
	"bytes"
	"fmt"
	"html/template"

	"ai-multi/internal/models"
)

// pageData is everything one render of the control page needs
type pageData struct {
	Models      []models.ModelInfo
	MultiSelect bool
	InputTypes  []string

	// sticky form state
	InputType string
	Prompt    string
	Selected  map[string]bool

	// run outcome
	Status   string
	StatusOK bool
	Records  []models.ResultRecord
}

func (d pageData) IsSelected(id string) bool {
	return d.Selected[id]
}

var pageTmpl = template.Must(template.New("index").Parse(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>AI Multi-Model Client</title>
    <link rel="stylesheet" href="/assets/style.css" />
  </head>
  <body>
    <div class="app">
      <aside class="sidebar">
        <div class="brand">
          <div class="avatar"></div>
          <div>
            <b>AI Multi — Controls</b>
            <div class="muted">Choose models &amp; input.</div>
          </div>
        </div>
        <hr />
        <form method="post" action="/run" enctype="multipart/form-data">
          <div class="section-title">Select Model{{if .MultiSelect}}s{{end}}</div>
          {{range .Models}}
          <label class="model-option">
            {{if $.MultiSelect}}
            <input type="checkbox" name="models" value="{{.ID}}" {{if $.IsSelected .ID}}checked{{end}} />
            {{else}}
            <input type="radio" name="model" value="{{.ID}}" {{if $.IsSelected .ID}}checked{{end}} />
            {{end}}
            <span>{{.Title}} — <span class="muted">{{.Desc}}</span></span>
          </label>
          {{end}}
          <div class="section-title">Input Type</div>
          {{range .InputTypes}}
          <label class="model-option">
            <input type="radio" name="inputType" value="{{.}}" {{if eq . $.InputType}}checked{{end}} />
            <span>{{.}}</span>
          </label>
          {{end}}
          <div class="section-title">Prompt (Optional)</div>
          <textarea name="prompt" rows="5">{{.Prompt}}</textarea>
          <div class="section-title">&#128206; Attach file</div>
          <input type="file" name="file" accept=".png,.jpg,.jpeg,.wav,.mp3,.m4a" />
          <button type="submit">Send</button>
        </form>
      </aside>
      <main class="content">
        <div class="header-card">
          <div class="brand">
            <div class="avatar"></div>
            <div>
              <div class="title">AI Multi-Model Client</div>
              <div class="muted">Send text, image, or audio to multiple models.</div>
            </div>
          </div>
        </div>
        {{if .Status}}
        <div class="status {{if .StatusOK}}status-ok{{else}}status-err{{end}}">{{.Status}}</div>
        {{end}}
        {{if .Records}}
        <h3>Results</h3>
        {{range .Records}}
        <div class="resp-card">
          <div class="resp-title">{{.Model}}</div>
          <div class="resp-lat">Latency: {{.Latency}} ms</div>
          <pre class="resp-body">{{.Response}}</pre>
        </div>
        {{end}}
        {{end}}
      </main>
    </div>
  </body>
</html>
`))

// renderPage renders the page into a buffer so a template failure never
// produces a half-written response.
func renderPage(data pageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}
