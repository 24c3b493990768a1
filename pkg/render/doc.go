// Package render turns an avatar image into a [Canvas] of colored block
// glyphs for the terminal.
//
// # Overview
//
// [Renderer.Render] downloads the image, stores it under a unique name in
// the temp directory, decodes it, and resamples it to a fixed width. Each
// pixel becomes one "█" colored with the pixel's RGB value; alpha is
// dropped. The height keeps the image's aspect ratio, scaled by 0.45 since a
// terminal cell is roughly twice as tall as it is wide:
//
//	height = round(h / w * width * 0.45)
//
// The temp file is removed before Render returns, whatever the outcome.
//
//	r := render.NewRenderer(client, render.WithWidth(35), render.WithTempDir(dir))
//	canvas, err := r.Render(ctx, entity.Base().AvatarURL)
//	if err != nil {
//	    return err
//	}
//	canvas.WriteTo(os.Stdout)
//
// # Canvas
//
// A [Canvas] is a list of rows that the [layout] package appends text to.
// Render pads every canvas to at least [MinRows] rows so that the tallest
// layout always fits next to the art.
//
// # Formats
//
// PNG, JPEG and GIF come from the standard library; BMP and TIFF are
// registered by imaging; WebP is registered by golang.org/x/image/webp.
package render
