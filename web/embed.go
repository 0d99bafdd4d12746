package web

import "embed"

// Assets holds the built catalog browser served under /_ui/.
//
//go:embed all:dist
var Assets embed.FS
