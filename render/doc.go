// Package render turns PlantUML source into images through a PlantUML
// server.
//
// The source is compressed with raw deflate and written in PlantUML's
// base64 variant, then fetched as GET {server}/{format}/{encoded}:
//
//	r := render.New()
//	svg, err := r.Render(ctx, src, render.FormatSVG)
//
// Any failure, including a non-2xx answer from the server, is returned as
// an *oaserrors.RenderError.
package render
