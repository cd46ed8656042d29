package api

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>AI News Harvester Dashboard</title>
    <link href="https://cdn.jsdelivr.net/npm/bootstrap@5.1.3/dist/css/bootstrap.min.css" rel="stylesheet">
    <style>
        .article-card { border-left: 4px solid #007bff; }
        .stats-card { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; }
        .word-count-badge {
            background-color: #28a745; color: white;
            padding: 2px 8px; border-radius: 12px; font-size: 0.8em;
        }
    </style>
</head>
<body class="bg-light">
    <div class="container-fluid py-4">
        <h1 class="mb-4">AI News Harvester Dashboard</h1>

        <div class="row mb-4">
            <div class="col-md-3">
                <div class="card stats-card"><div class="card-body text-center">
                    <h3>{{.Total}}</h3><p class="mb-0">Total Articles</p>
                </div></div>
            </div>
            <div class="col-md-3">
                <div class="card stats-card"><div class="card-body text-center">
                    <h3>{{.WithContent}}</h3><p class="mb-0">With Full Content</p>
                </div></div>
            </div>
            <div class="col-md-3">
                <div class="card bg-success text-white"><div class="card-body text-center">
                    <h6>{{.Earliest}}</h6><p class="mb-0">Earliest Article</p>
                </div></div>
            </div>
            <div class="col-md-3">
                <div class="card bg-info text-white"><div class="card-body text-center">
                    <h6>{{.Latest}}</h6><p class="mb-0">Latest Article</p>
                </div></div>
            </div>
        </div>

        <div class="card">
            <div class="card-header">
                <h5 class="mb-0">Recent Articles</h5>
                <small class="text-muted">Last updated: {{.LastUpdated}}</small>
            </div>
            <div class="card-body">
                {{if .Articles}}
                    {{range .Articles}}
                    <div class="card article-card mb-3"><div class="card-body"><div class="row">
                        <div class="col-md-8">
                            <h6 class="card-title">
                                {{if .DetailLink}}<a href="{{.DetailLink}}" target="_blank" class="text-decoration-none">{{.Title}}</a>
                                {{else}}{{.Title}}{{end}}
                            </h6>
                            <p class="card-text text-muted">{{.Description}}</p>
                        </div>
                        <div class="col-md-4 text-end">
                            <small class="text-muted d-block">{{.Timestamp}}</small>
                            {{if gt .WordCount 0}}<span class="word-count-badge">{{.WordCount}} words</span>{{end}}
                        </div>
                    </div></div></div>
                    {{end}}
                {{else}}
                    <div class="alert alert-warning" role="alert">
                        <h6>No articles found!</h6>
                        <p class="mb-0">Run the scraper first to see articles here.</p>
                    </div>
                {{end}}
            </div>
        </div>

        <div class="mt-4 text-center">
            <a href="/api/articles" class="btn btn-outline-secondary">Download JSON</a>
        </div>
    </div>
</body>
</html>
`
