package cli

import (
	"fmt"
	"image"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/jmylchreest/swatch/internal/colour"
	imageutil "github.com/jmylchreest/swatch/internal/image"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Output formats.
const (
	formatText  = "text"
	formatHex   = "hex"
	formatRGB   = "rgb"
	formatJSON  = "json"
	formatTable = "table"
)

var validFormats = []string{formatText, formatHex, formatRGB, formatJSON, formatTable}

func isValidFormat(f string) bool {
	return slices.Contains(validFormats, f)
}

// Preview modes.
const (
	previewAuto   = "auto"
	previewAlways = "always"
	previewNever  = "never"
)

// extractOptions holds the extract command flags.
type extractOptions struct {
	colours      int
	region       regionValue
	filter       string
	fill         bool
	targets      targetsValue
	format       string
	preview      string
	raw          string
	maxDimension int
	output       string

	warnings []string
}

func newExtractCmd(lookup lookupFunc) *cobra.Command {
	defaults := loadExtractDefaults(lookup)
	opts := &extractOptions{warnings: defaults.Warnings}

	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Extract a colour palette and swatches from an image",
		Long: `Extract a colour palette from an image and select the best colour for each
swatch target.

The image is reduced to at most --colours representative colours with
median-cut quantization. Each colour is then scored against the six base
targets and any custom --target definitions.

Supported image formats: JPEG, PNG, GIF, WebP, BMP, TIFF. Headerless RGBA
dumps (optionally xz-compressed) are read with --raw WIDTHxHEIGHT.

Environment variables SWATCH_COLOURS, SWATCH_FILTER, SWATCH_FILL,
SWATCH_FORMAT and SWATCH_MAX_DIMENSION override the flag defaults.

Examples:
  # Extract 16 colours (default) and the six swatches
  swatch extract wallpaper.jpg

  # Only sample the top banner, ignoring reds, black and white
  swatch extract --region 0,0,1920,200 --filter avoid-red-black-white banner.png

  # Derive missing swatches and print them as a table
  swatch extract --fill --format table photo.webp

  # Score a custom target alongside the base targets
  swatch extract --target name=Pastel,target-light=0.85,max-sat=0.5 photo.png

  # Read a raw xz-compressed RGBA framebuffer dump
  swatch extract --raw 1280x720 frame.rgba.xz`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, opts, args[0])
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&opts.colours, "colours", "c", defaults.Colours, "maximum number of colours to extract (1-256)")
	flags.Var(&opts.region, "region", "region of interest as x0,y0,x1,y1 (default: whole image)")
	flags.StringVar(&opts.filter, "filter", defaults.Filter, "colour filter ("+colour.FilterNameAny+", "+colour.FilterNameAvoidRedBlackWhite+")")
	flags.BoolVar(&opts.fill, "fill", defaults.Fill, "derive missing base swatches from their siblings")
	flags.Var(&opts.targets, "target", "custom target as name=...,base=...,min-sat=...,exclusive=... (repeatable)")
	flags.StringVarP(&opts.format, "format", "f", defaults.Format, "output format ("+strings.Join(validFormats, ", ")+")")
	flags.StringVar(&opts.preview, "preview", previewAuto, "colour previews (auto, always, never)")
	flags.StringVar(&opts.raw, "raw", "", "read headerless RGBA pixels of the given WIDTHxHEIGHT")
	flags.IntVar(&opts.maxDimension, "max-dimension", defaults.MaxDimension, "downscale so neither side exceeds this many pixels (0 disables)")
	flags.StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

// runExtract executes the extract command.
func runExtract(cmd *cobra.Command, opts *extractOptions, imagePath string) error {
	logger := newLogger(cmd)
	for _, w := range opts.warnings {
		logger.Warn(w)
	}

	if !isValidFormat(opts.format) {
		return fmt.Errorf("unsupported format: %s (supported: %s)", opts.format, strings.Join(validFormats, ", "))
	}
	switch opts.preview {
	case previewAuto, previewAlways, previewNever:
	default:
		return fmt.Errorf("invalid preview mode: %s (valid: auto, always, never)", opts.preview)
	}

	config := colour.ExtractorConfig{
		MaxColors:              opts.colours,
		Filter:                 opts.filter,
		Targets:                opts.targets.targets,
		FillMissingBaseTargets: opts.fill,
	}
	extractor, err := colour.NewMedianCutExtractor(config, colour.Options{Logger: logger})
	if err != nil {
		return err
	}

	loader, err := newLoader(opts.raw)
	if err != nil {
		return err
	}

	region := opts.region.rect
	if opts.raw == "" {
		if !imageutil.IsImageFile(imagePath) {
			logger.Warn("unrecognised image extension, detecting format from content", "path", imagePath)
		}
		w, h, err := imageutil.Dimensions(imagePath)
		if err != nil {
			return fmt.Errorf("failed to load image: %w", err)
		}
		if err := checkRegion(region, w, h); err != nil {
			return err
		}
	}

	logger.Debug("loading image", "path", imagePath)
	img, err := loader.Load(imagePath)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	bounds := img.Bounds()
	logger.Debug("image loaded", "width", bounds.Dx(), "height", bounds.Dy())
	if err := checkRegion(region, bounds.Dx(), bounds.Dy()); err != nil {
		return err
	}

	img, scale := imageutil.Downscale(img, opts.maxDimension)
	if scale != 1 {
		scaled := img.Bounds()
		region = imageutil.ScaleRect(region, scale, scaled)
		logger.Debug("image downscaled", "width", scaled.Dx(), "height", scaled.Dy(), "scale", scale)
	}

	palette, err := extractRegion(extractor, img, region)
	if err != nil {
		return fmt.Errorf("failed to extract colours: %w", err)
	}
	logger.Info("extracted palette", "colours", palette.Len(), "swatches", len(palette.Swatches()))

	out := cmd.OutOrStdout()
	var file *os.File
	if opts.output != "" {
		file, err = os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()
		out = file
	}

	output, err := formatPalette(palette, opts.format, showPreview(opts.preview, out))
	if err != nil {
		return err
	}
	if _, err := io.WriteString(out, output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if file != nil {
		if err := file.Close(); err != nil {
			return fmt.Errorf("failed to close output file: %w", err)
		}
		logger.Debug("wrote palette", "path", opts.output)
	}
	return nil
}

// checkRegion rejects a region that does not fit a width x height image.
func checkRegion(region image.Rectangle, width, height int) error {
	if region.Empty() || region.In(image.Rect(0, 0, width, height)) {
		return nil
	}
	return fmt.Errorf("%w: %v not within %dx%d image", colour.ErrRegionOutOfBounds, region, width, height)
}

// extractRegion runs the extractor over region of img. The zero region
// means the whole image.
func extractRegion(e *colour.MedianCutExtractor, img image.Image, region image.Rectangle) (*colour.Palette, error) {
	bm, err := colour.BitmapFromImage(img)
	if err != nil {
		return nil, err
	}
	return e.ExtractBitmap(bm, region)
}

func newLoader(raw string) (imageutil.Loader, error) {
	if raw == "" {
		return imageutil.NewFileLoader(), nil
	}
	w, h, err := imageutil.ParseSize(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid --raw: %w", err)
	}
	return imageutil.NewRawLoader(w, h)
}

// showPreview resolves the preview mode; auto previews only when writing
// to a terminal.
func showPreview(mode string, out io.Writer) bool {
	switch mode {
	case previewAlways:
		return true
	case previewNever:
		return false
	}
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// formatPalette formats the palette according to the specified format.
func formatPalette(palette *colour.Palette, format string, preview bool) (string, error) {
	switch format {
	case formatText:
		return palette.StringWithPreview(preview), nil
	case formatHex:
		return formatColours(palette, preview, colour.Colour.Hex), nil
	case formatRGB:
		return formatColours(palette, preview, colour.Colour.String), nil
	case formatJSON:
		jsonBytes, err := palette.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(jsonBytes) + "\n", nil
	case formatTable:
		return swatchTable(palette).Render(), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: %s)", format, strings.Join(validFormats, ", "))
	}
}

// formatColours prints one quantized colour per line.
func formatColours(palette *colour.Palette, preview bool, text func(colour.Colour) string) string {
	var sb strings.Builder
	for _, pc := range palette.Colors() {
		if preview {
			sb.WriteString(colour.ColourPreview(pc.Colour, 0) + " ")
		}
		sb.WriteString(text(pc.Colour) + "\n")
	}
	return sb.String()
}

// swatchTable lays out the selected swatches.
func swatchTable(palette *colour.Palette) *Table {
	table := NewTable([]string{"TARGET", "HEX", "RGB", "POPULATION", "DERIVED"})
	table.SetAlignRight(3)
	for _, s := range palette.Swatches() {
		derived := ""
		if s.Derived {
			derived = "yes"
		}
		table.AddRow([]string{
			s.Target.Name,
			s.Color.Colour.Hex(),
			s.Color.Colour.String(),
			strconv.Itoa(s.Color.Population),
			derived,
		})
	}
	return table
}
