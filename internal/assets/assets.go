// Package assets provides embedded static assets for the application.
package assets

import (
	_ "embed"
)

// AnimalBaseImage is the default animal archetype board (600x600 PNG) used
// when no override path or URL is configured. Regenerate with tools/genassets.
//
//go:embed base-images/animal.png
var AnimalBaseImage []byte

// BrainBaseImage is the default brain quadrant board (600x600 PNG).
//
//go:embed base-images/brain.png
var BrainBaseImage []byte

// BaseImageMIMEType is the MIME type of the embedded base images.
const BaseImageMIMEType = "image/png"
