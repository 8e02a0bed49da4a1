package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/weekplan/pkg/render/planner/document"
	"github.com/matzehuels/weekplan/pkg/render/planner/sink"
)

// Render generates output artifacts for doc in the requested formats,
// keyed by [ArtifactName].
func Render(ctx context.Context, doc *document.Document, opts Options) (map[string][]byte, error) {
	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		switch format {
		case FormatSVG:
			for _, p := range opts.Pages {
				data, err := sink.RenderSVG(doc, p, svgOpts...)
				if err != nil {
					return nil, fmt.Errorf("render svg page %d: %w", p, err)
				}
				artifacts[ArtifactName(format, p)] = data
			}
		case FormatPNG:
			for _, p := range opts.Pages {
				data, err := sink.RenderPNG(ctx, doc, p, sink.WithScale(opts.Scale), sink.WithPNGSVGOptions(svgOpts...))
				if err != nil {
					return nil, fmt.Errorf("render png page %d: %w", p, err)
				}
				artifacts[ArtifactName(format, p)] = data
			}
		case FormatPDF:
			data, err := sink.RenderPDF(ctx, doc, sink.WithPDFSVGOptions(svgOpts...))
			if err != nil {
				return nil, fmt.Errorf("render pdf: %w", err)
			}
			artifacts[format] = data
		case FormatJSON:
			var jsonOpts []sink.JSONOption
			if opts.WithOps {
				jsonOpts = append(jsonOpts, sink.WithJSONOps())
			}
			data, err := sink.RenderJSON(doc, jsonOpts...)
			if err != nil {
				return nil, fmt.Errorf("render json: %w", err)
			}
			artifacts[format] = data
		default:
			return nil, ValidateFormat(format)
		}
	}
	return artifacts, nil
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	var out []sink.SVGOption
	if opts.FontFamily != "" {
		out = append(out, sink.WithFontFamily(opts.FontFamily))
	}
	return out
}
