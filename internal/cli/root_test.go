package cli_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmylchreest/swatch/internal/cli"
	"github.com/jmylchreest/swatch/internal/colour"
)

// writeRedBluePNG writes a 4x4 PNG whose top half is red and bottom half blue.
func writeRedBluePNG(t *testing.T) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c := color.NRGBA{R: 255, A: 255}
			if y >= 2 {
				c = color.NRGBA{B: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "redblue.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode image: %v", err)
	}
	return path
}

// run executes the root command with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	rootCmd := cli.NewRootCmd()
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func TestExtractCommand(t *testing.T) {
	imagePath := writeRedBluePNG(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "hex",
			args: []string{"extract", "--format", "hex", imagePath},
			want: "#f80000\n#0000f8\n",
		},
		{
			name: "rgb",
			args: []string{"extract", "-f", "rgb", imagePath},
			want: "rgb(248, 0, 0)\nrgb(0, 0, 248)\n",
		},
		{
			name: "region",
			args: []string{"extract", "--format", "hex", "--region", "0,2,4,4", imagePath},
			want: "#0000f8\n",
		},
		{
			name: "downscaled region",
			args: []string{"extract", "--format", "hex", "--max-dimension", "2", "--region", "0,0,4,2", imagePath},
			want: "#f80000\n",
		},
		{
			name: "filter",
			args: []string{"extract", "--format", "hex", "--filter", "avoid-red-black-white", imagePath},
			want: "#0000f8\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, tt.args...)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if out != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestExtractJSONWithFill(t *testing.T) {
	imagePath := writeRedBluePNG(t)

	out, _, err := run(t, "extract", "--format", "json", "--fill", imagePath)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var palette colour.PaletteJSON
	if err := json.Unmarshal([]byte(out), &palette); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if palette.Count != 2 {
		t.Errorf("count = %d, want 2", palette.Count)
	}
	if len(palette.Swatches) != 6 {
		t.Errorf("got %d swatches, want 6 with --fill", len(palette.Swatches))
	}
}

func TestExtractCustomTarget(t *testing.T) {
	imagePath := writeRedBluePNG(t)

	out, _, err := run(t, "extract", "--format", "table",
		"--target", "name=Anything,exclusive=false", imagePath)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "Anything") || !strings.Contains(out, "Vibrant") {
		t.Errorf("table output missing targets:\n%s", out)
	}
}

func TestExtractPreview(t *testing.T) {
	imagePath := writeRedBluePNG(t)

	out, _, err := run(t, "extract", "--format", "hex", imagePath)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.Contains(out, "\033[") {
		t.Error("auto preview should be off when not writing to a terminal")
	}

	out, _, err = run(t, "extract", "--format", "hex", "--preview", "always", imagePath)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "\033[48;2;248;0;0m") {
		t.Errorf("expected ANSI preview, got %q", out)
	}
}

func TestExtractOutputFile(t *testing.T) {
	imagePath := writeRedBluePNG(t)
	outPath := filepath.Join(t.TempDir(), "palette.txt")

	stdout, _, err := run(t, "extract", "--format", "hex", "-o", outPath, imagePath)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want nothing", stdout)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if string(data) != "#f80000\n#0000f8\n" {
		t.Errorf("file contents = %q", data)
	}
}

func TestExtractRaw(t *testing.T) {
	pix := make([]byte, 2*2*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = 40, 80, 200, 255
	}
	path := filepath.Join(t.TempDir(), "pixels.rgba")
	if err := os.WriteFile(path, pix, 0o600); err != nil {
		t.Fatalf("Failed to write raw file: %v", err)
	}

	out, _, err := run(t, "extract", "--format", "hex", "--raw", "2x2", path)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "#2850c8\n" {
		t.Errorf("output = %q, want #2850c8", out)
	}
}

func TestExtractEnvironmentDefaults(t *testing.T) {
	imagePath := writeRedBluePNG(t)
	t.Setenv("SWATCH_FORMAT", "hex")
	t.Setenv("SWATCH_COLOURS", "not-a-number")

	out, errOut, err := run(t, "extract", imagePath)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "#f80000\n#0000f8\n" {
		t.Errorf("output = %q, want hex from SWATCH_FORMAT", out)
	}
	if !strings.Contains(errOut, "SWATCH_COLOURS") {
		t.Errorf("expected a warning about SWATCH_COLOURS, got %q", errOut)
	}
}

func TestExtractErrors(t *testing.T) {
	imagePath := writeRedBluePNG(t)
	garbage := filepath.Join(t.TempDir(), "garbage.png")
	if err := os.WriteFile(garbage, []byte("dummy image data"), 0o600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "invalid image", args: []string{"extract", garbage}, wantErr: "failed to load image"},
		{name: "missing image", args: []string{"extract", "/nonexistent/image.png"}, wantErr: "not found"},
		{name: "bad format", args: []string{"extract", "--format", "yaml", imagePath}, wantErr: "unsupported format"},
		{name: "bad preview", args: []string{"extract", "--preview", "sometimes", imagePath}, wantErr: "invalid preview mode"},
		{name: "bad colour count", args: []string{"extract", "-c", "0", imagePath}, wantErr: "colour count"},
		{name: "bad filter", args: []string{"extract", "--filter", "sepia", imagePath}, wantErr: "unknown filter"},
		{name: "bad target", args: []string{"extract", "--target", "min-sat=0.5", imagePath}, wantErr: "needs a name"},
		{name: "bad raw size", args: []string{"extract", "--raw", "big", imagePath}, wantErr: "invalid --raw"},
		{name: "no image", args: []string{"extract"}, wantErr: "accepts 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestExtractRegionOutOfBounds(t *testing.T) {
	imagePath := writeRedBluePNG(t)

	_, _, err := run(t, "extract", "--region", "0,0,8,8", imagePath)
	if !errors.Is(err, colour.ErrRegionOutOfBounds) {
		t.Errorf("error = %v, want ErrRegionOutOfBounds", err)
	}
}

func TestTargetsCommand(t *testing.T) {
	out, _, err := run(t, "targets")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{"LightVibrant", "DarkMuted", "0.35/1.00/1.00", "0.24/0.52/0.24"} {
		if !strings.Contains(out, want) {
			t.Errorf("targets output missing %q:\n%s", want, out)
		}
	}
}

func TestContrastCommand(t *testing.T) {
	out, _, err := run(t, "contrast", "#000000", "#ffffff")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "contrast: 21.00:1") {
		t.Errorf("unexpected output: %q", out)
	}

	out, _, err = run(t, "contrast", "--min-ratio", "4.5", "#c8c8c8", "#ffffff")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "unreachable") {
		t.Errorf("expected unreachable minimum alpha, got %q", out)
	}

	for _, args := range [][]string{
		{"contrast", "#000000", "#ffffff80"},
		{"contrast", "nothex", "#ffffff"},
		{"contrast", "--min-ratio", "30", "#000000", "#ffffff"},
	} {
		if _, _, err := run(t, args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "version")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.HasPrefix(out, "swatch version") {
		t.Errorf("version output = %q", out)
	}
}
