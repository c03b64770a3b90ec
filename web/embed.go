// Package web embeds the server-rendered templates and static assets.
package web

import "embed"

// TemplatesFS holds the page templates.
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS holds stylesheets and icons.
//
//go:embed static/*
var StaticFS embed.FS
