package render

// Template sources, compiled once by NewRegistry. Names match the template
// ids the page shell has always used.

const sectionTemplate = `{{define "section"}}<div class="card bg-base-100 shadow-md">
  <div class="card-body">
    <h2 class="card-title">{{.Title}}</h2>
    {{if .Analysis}}<p class="analysis{{if isNA .Analysis}} text-base-content/50{{end}}">{{.Analysis}}</p>{{end}}
    {{template "suggestion-list" .Suggestions}}
  </div>
</div>{{end}}`

const suggestionListTemplate = `{{define "suggestion-list"}}{{if .}}<ul class="suggestions list-disc pl-5 space-y-2">
  {{range .}}<li>{{if .Fields}}{{range .Fields}}<div class="suggestion-field"><span class="font-semibold">{{.Label}}:</span> <span{{if isNA .Value}} class="text-base-content/50"{{end}}>{{.Value}}</span></div>{{end}}{{else}}<span{{if isNA .Text}} class="text-base-content/50"{{end}}>{{.Text}}</span>{{end}}</li>
  {{end}}
</ul>{{end}}{{end}}`

const suggestionsOnlyTemplate = `{{define "suggestions-only"}}<div class="card bg-base-100 shadow-md">
  <div class="card-body">
    <h2 class="card-title">{{.Title}}</h2>
    {{template "suggestion-list" .Suggestions}}
  </div>
</div>{{end}}`

const otherSuggestionsTemplate = `{{define "other-suggestions"}}<div class="card bg-base-100 shadow-md">
  <div class="card-body">
    <h2 class="card-title">{{.Title}}</h2>
    <dl class="other-suggestions space-y-3">
      <dt class="font-semibold">Overall Assessment</dt><dd>{{template "maybe" .OverallAssessment}}</dd>
      <dt class="font-semibold">Schema Markup</dt><dd>{{template "maybe" .SchemaMarkup}}</dd>
      <dt class="font-semibold">Mobile Optimization</dt><dd>{{template "maybe" .MobileOptimization}}</dd>
      <dt class="font-semibold">Page Speed</dt><dd>{{template "maybe" .PageSpeed}}</dd>
    </dl>
  </div>
</div>{{end}}`

const maybeTemplate = `{{define "maybe"}}{{if and . (not (isNA .))}}{{.}}{{else}}<span class="text-base-content/50">N/A</span>{{end}}{{end}}`

const errorTemplate = `{{define "error"}}<div role="alert" class="alert alert-error shadow-lg">
  <div>
    <h3 class="font-bold">{{.Title}}{{if .Code}} <span class="badge badge-outline">{{.Code}}</span>{{end}}</h3>
    <div class="text-sm">{{.Message}}</div>
  </div>
  <progress id="error-progress" class="progress w-full" value="{{.Progress}}" max="100"></progress>
</div>{{end}}`

const statsTemplate = `{{define "stats"}}{{range .Stats}}<div class="stat">
  <div class="stat-figure {{.IconClass}}">{{icon .Icon}}</div>
  <div class="stat-title">{{.Title}}</div>
  <div class="stat-value {{.ValueClass}}">{{if .Badge}}<span class="badge {{.Badge.Class}} badge-lg">{{.Badge.Label}}</span>{{else if .Value}}{{.Value}}{{else}}N/A{{end}}</div>
  {{if .Description}}<div class="stat-desc {{.DescClass}}">{{.Description}}</div>{{end}}
</div>
{{end}}{{end}}`

const metadataTemplate = `{{define "metadata"}}{{range .Items}}<li class="metadata-item"><span class="metadata-key">{{.Key}}</span><span class="metadata-value">{{.Value}}</span></li>
{{else}}<li class="empty-text">No metadata found.</li>
{{end}}{{end}}`

const linkRowsTemplate = `{{define "link-rows"}}{{range $i, $l := .Links}}<tr>
  <th>{{inc $i}}</th>
  <td><a href="{{$l.Href}}" target="_blank" rel="noopener noreferrer" class="link link-hover">{{linkText $l.Text}}{{externalIcon $l.Href}}</a></td>
  <td class="break-all">{{$l.Href}}</td>
  <td>{{domainText $l.BaseDomain}}</td>
</tr>
{{else}}<tr><td colspan="4" class="empty-text text-center">No links found.</td></tr>
{{end}}{{end}}`

const internalLinksTemplate = `{{define "internal-links"}}{{template "link-rows" .}}{{end}}`

const externalLinksTemplate = `{{define "external-links"}}{{template "link-rows" .}}{{end}}`

const pageTemplate = `{{define "page"}}<!DOCTYPE html>
<html lang="en" data-theme="light">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>SEO Report</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/daisyui@4/dist/full.min.css">
  <script src="https://cdn.tailwindcss.com"></script>
  <style>.fade-out{opacity:0;transition:opacity .5s ease-out}.empty-text{opacity:.5;font-style:italic}.external-link-icon{display:inline;width:.9em;height:.9em;margin-left:.25em}</style>
</head>
<body class="min-h-screen bg-base-200">
<div class="container mx-auto p-4 space-y-4">
  <form id="urlForm" method="POST" action="/report" class="join w-full">
    <input id="url" name="url" type="text" value="{{.URL}}" placeholder="https://example.com" class="input input-bordered join-item w-full">
    <button type="submit" class="btn btn-primary join-item">Analyze</button>
  </form>
  {{$loading := .R "loading-state"}}<div id="loading-state" class="flex justify-center"{{if not $loading.Visible}} style="display:none"{{end}}><span class="loading loading-spinner loading-lg"></span></div>
  {{$error := .R "error-container"}}<div id="error-container" class="{{$error.Classes}}"{{if not $error.Visible}} style="display:none"{{end}}>{{$error.HTML}}</div>
  {{$main := .R "main-content"}}<div id="main-content"{{if not $main.Visible}} style="display:none"{{end}}>
    <div id="stats-section" class="stats stats-vertical lg:stats-horizontal shadow w-full">{{(.R "stats-section").HTML}}</div>
    <div class="card bg-base-100 shadow-md"><div class="card-body">
      <h2 class="card-title">Metadata</h2>
      <ul id="metadata-list" class="space-y-1">{{(.R "metadata-list").HTML}}</ul>
    </div></div>
    <div class="card bg-base-100 shadow-md"><div class="card-body">
      <h2 class="card-title">Internal Links <span id="internal-link-count-display" class="badge">{{(.R "internal-link-count-display").Text}}</span></h2>
      <table class="table table-zebra"><thead><tr><th>#</th><th>Text</th><th>URL</th><th>Domain</th></tr></thead><tbody id="internal-links-tbody">{{(.R "internal-links-tbody").HTML}}</tbody></table>
    </div></div>
    <div class="card bg-base-100 shadow-md"><div class="card-body">
      <h2 class="card-title">External Links <span id="external-link-count-display" class="badge">{{(.R "external-link-count-display").Text}}</span></h2>
      <table class="table table-zebra"><thead><tr><th>#</th><th>Text</th><th>URL</th><th>Domain</th></tr></thead><tbody id="external-links-tbody">{{(.R "external-links-tbody").HTML}}</tbody></table>
    </div></div>
    {{$seo := .R "seo-content"}}<div id="seo-content" class="space-y-4"{{if not $seo.Visible}} style="display:none"{{end}}>
      <div id="title-analysis-section">{{(.R "title-analysis-section").HTML}}</div>
      <div id="meta-description-analysis-section">{{(.R "meta-description-analysis-section").HTML}}</div>
      <div id="h1-tag-analysis-section">{{(.R "h1-tag-analysis-section").HTML}}</div>
      <div id="content-analysis-section">{{(.R "content-analysis-section").HTML}}</div>
      <div id="link-analysis-section">{{(.R "link-analysis-section").HTML}}</div>
      <div id="keyword-optimization-section">{{(.R "keyword-optimization-section").HTML}}</div>
      <div id="other-suggestions-section">{{(.R "other-suggestions-section").HTML}}</div>
    </div>
  </div>
</div>
<script>
(function () {
  var form = document.getElementById("urlForm");
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws");
  ws.onmessage = function (ev) {
    var u = JSON.parse(ev.data);
    var el = document.getElementById(u.id);
    if (!el) { console.error("Target element not found: " + u.id); return; }
    if (u.html !== undefined) el.innerHTML = u.html;
    if (u.text !== undefined) el.textContent = u.text;
    if (u.visible !== undefined) el.style.display = u.visible ? (u.id === "loading-state" ? "flex" : "block") : "none";
    if (u.classes !== undefined) el.className = u.classes;
    if (u.progress !== undefined) el.value = u.progress;
  };
  form.addEventListener("submit", function (event) {
    if (ws.readyState !== WebSocket.OPEN) return;
    event.preventDefault();
    fetch("/report", {
      method: "POST",
      headers: {"Content-Type": "application/x-www-form-urlencoded", "X-Requested-With": "websocket"},
      body: new URLSearchParams(new FormData(form))
    });
  });
})();
</script>
</body>
</html>{{end}}`

const statusPageTemplate = `{{define "status-page"}}<!DOCTYPE html>
<html lang="en" data-theme="light">
<head>
  <meta charset="UTF-8">
  <title>{{.Code}} {{.Title}}</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/daisyui@4/dist/full.min.css">
</head>
<body class="min-h-screen bg-base-200 flex items-center justify-center">
  <div class="card bg-base-100 shadow-md"><div class="card-body text-center">
    <h1 class="text-5xl font-bold">{{.Code}}</h1>
    <p class="py-4">{{.Title}}</p>
    {{if .Detail}}<p class="text-sm text-base-content/60">{{.Detail}}</p>{{end}}
    <a href="/" class="btn btn-primary">Back to the report</a>
  </div></div>
</body>
</html>{{end}}`

var templateSources = []string{
	sectionTemplate,
	suggestionListTemplate,
	suggestionsOnlyTemplate,
	otherSuggestionsTemplate,
	maybeTemplate,
	errorTemplate,
	statsTemplate,
	metadataTemplate,
	linkRowsTemplate,
	internalLinksTemplate,
	externalLinksTemplate,
	pageTemplate,
	statusPageTemplate,
}
