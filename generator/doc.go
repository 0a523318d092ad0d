// Package generator turns Swagger 2.0 documents into PlantUML diagrams.
//
// A run parses the document, projects it into a diagram view, renders the
// view's property map as PlantUML source and, optionally, fetches images of
// that source from a PlantUML server.
//
// # Quick Start
//
// Generate the full class diagram using functional options:
//
//	result, err := generator.GenerateWithOptions(ctx,
//		generator.WithFilePath("swagger.yaml"),
//		generator.WithSVG(true),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := result.WriteFiles("./diagrams"); err != nil {
//		log.Fatal(err)
//	}
//
// Or use a reusable Generator instance:
//
//	g := generator.New()
//	g.DiagramType = diagram.TypeEntity
//	result, _ := g.Generate(ctx, "swagger.yaml")
//	os.Stdout.Write(result.Source())
//
// # Output
//
// The PlantUML source is always named swagger.puml. Images are named after
// their format, e.g. swagger.svg, and are rendered concurrently.
package generator
