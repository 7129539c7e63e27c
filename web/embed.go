package web

import "embed"

// Static embeds the browser UI assets.
//
//go:embed static/*
var Static embed.FS
