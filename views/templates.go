package views

const layoutTemplate = `{{define "layout"}}<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
{{if .Site.Description}}<meta name="description" content="{{.Site.Description}}">{{end}}
<link rel="icon" href="/favicon.svg" type="image/svg+xml">
<link rel="alternate" type="application/rss+xml" title="{{.Site.Name}}" href="/feed.xml">
<link rel="stylesheet" href="/public/styles.css">
<script src="/public/loadmore.js" defer></script>
<script type="application/ld+json">{{websiteJSONLD}}</script>
</head>
<body>
<header class="header"><a href="/" class="logo">{{.Site.Name}}</a></header>
<main class="content">{{block "main" .}}{{end}}</main>
</body>
</html>
{{end}}`

const postItemsTemplate = `{{define "post-items"}}{{range .}}<a class="post" href="{{.Link}}">
<h1>{{.Data.Title}}</h1>
<p>{{.Data.Subtitle}}</p>
<div class="post-info">
<time>{{formatDate .FirstPublicationDate}}</time>
<span class="author">{{.Data.Author}}</span>
</div>
</a>
{{end}}{{end}}`

const loadMoreTemplate = `{{define "load-more"}}<div id="load-more"{{if .OOB}} hx-swap-oob="true"{{end}}>{{if .NextPage}}<a class="button" href="{{loadMoreURL .NextPage}}" hx-get="{{loadMoreURL .NextPage}}" hx-target="#posts" hx-swap="beforeend" hx-sync="this:drop">Carregar mais posts</a>{{end}}</div>{{end}}`

const homeTemplate = `{{define "main"}}<div id="posts" class="posts">{{template "post-items" .Page.Posts}}</div>
{{template "load-more" (loadMore .Page.NextPage)}}
{{if .Page.Preview}}<aside class="exit-preview"><a href="/api/exit-preview">Sair do modo Preview</a></aside>{{end}}
{{end}}`

const postTemplate = `{{define "main"}}{{with .Page.Article}}<script type="application/ld+json">{{postingJSONLD .}}</script>
{{if .Data.Banner.URL}}<img class="banner" src="{{.Data.Banner.URL}}" alt="{{.Data.Banner.Alt}}">{{end}}
<article class="post-page">
<h1>{{.Data.Title}}</h1>
<div class="post-info">
<time>{{formatDate .FirstPublicationDate}}</time>
<span class="author">{{.Data.Author}}</span>
<span class="reading-time">{{.ReadingTime}} min</span>
</div>
{{if .Edited}}<p class="edited">* editado em {{formatDateTime .LastPublicationDate}}</p>{{end}}
{{range .Data.Content}}<section>
<h2>{{.Heading}}</h2>
<div class="post-content">{{richText .Body}}</div>
</section>
{{end}}</article>{{end}}
{{if .Page.Preview}}<aside class="exit-preview"><a href="/api/exit-preview">Sair do modo Preview</a></aside>{{end}}
{{end}}`

const notFoundTemplate = `{{define "main"}}<section class="status-page"><h1>404</h1><p>Página não encontrada.</p><a href="/">Voltar ao início</a></section>{{end}}`

const serverErrorTemplate = `{{define "main"}}<section class="status-page"><h1>500</h1><p>Algo deu errado. Tente novamente em instantes.</p><a href="/">Voltar ao início</a></section>{{end}}`
