package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// ToPDF converts one or more SVG pages into a single PDF using rsvg-convert.
// Pages appear in argument order.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(ctx context.Context, pages ...[]byte) ([]byte, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("pdf export: no pages")
	}
	if len(pages) == 1 {
		return rsvgConvert(ctx, pages[0], "pdf")
	}

	dir, err := os.MkdirTemp("", "weekplan-pdf-*")
	if err != nil {
		return nil, fmt.Errorf("pdf export: %w", err)
	}
	defer os.RemoveAll(dir)

	args := []string{"-f", "pdf"}
	for i, p := range pages {
		name := filepath.Join(dir, fmt.Sprintf("page-%02d.svg", i))
		if err := os.WriteFile(name, p, 0o600); err != nil {
			return nil, fmt.Errorf("pdf export: %w", err)
		}
		args = append(args, name)
	}
	return run(ctx, nil, "pdf", args)
}

// ToPNG converts SVG bytes to PNG using rsvg-convert with the given scale factor.
// Scale of 2.0 produces a 2x resolution image.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	return rsvgConvert(ctx, svg, "png", "-z", fmt.Sprintf("%.2f", scale))
}

// rsvgConvert pipes a single SVG through rsvg-convert.
func rsvgConvert(ctx context.Context, svg []byte, format string, extraArgs ...string) ([]byte, error) {
	args := append([]string{"-f", format}, extraArgs...)
	return run(ctx, svg, format, args)
}

func run(ctx context.Context, stdin []byte, format string, args []string) ([]byte, error) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		return nil, fmt.Errorf("%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	cmd := exec.CommandContext(ctx, "rsvg-convert", args...)
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("rsvg-convert: %v: %s", err, errBuf.String())
	}
	return out.Bytes(), nil
}
