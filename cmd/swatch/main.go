// Swatch - perceptual colour swatches from images
//
// Swatch quantizes an image with median cut and picks the best colour for
// each of six perceptual roles, plus any custom targets.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"github.com/jmylchreest/swatch/internal/cli"
)

func main() {
	cli.Execute()
}
