package questionnaire

import (
	"embed"
	"io/fs"
)

//go:embed schema/*
var embeddedSchema embed.FS

// EmbeddedFS returns the bundled questionnaire definitions. Callers may pass
// this filesystem to LoadFS to use the default configuration.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedSchema, "schema")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}
