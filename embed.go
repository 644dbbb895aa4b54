package pubfront

import "embed"

// EmbeddedAssets contains static assets shipped with the engine:
// loadmore.js
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
