package render

import (
	"context"
	"image"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"
	_ "golang.org/x/image/webp"

	ghferrors "github.com/ghfetch/ghfetch/pkg/errors"
	"github.com/ghfetch/ghfetch/pkg/observability"
)

const (
	// DefaultWidth is the art width in cells.
	DefaultWidth = 35

	// MinRows is the smallest canvas height. The repository layout can
	// write up to row 14.
	MinRows = 15

	// Glyph is the block drawn for every pixel.
	Glyph = "█"

	// cellAspect corrects for terminal cells being taller than wide.
	cellAspect = 0.45

	// gutter separates the art from the text columns.
	gutter = "  "
)

// Downloader fetches raw image bytes.
type Downloader interface {
	Download(ctx context.Context, url string) ([]byte, error)
}

// Renderer converts avatar images into canvases.
type Renderer struct {
	dl      Downloader
	width   int
	tempDir string
	lg      *lipgloss.Renderer
	styles  map[string]lipgloss.Style
}

// Option configures a [Renderer].
type Option func(*Renderer)

// WithWidth sets the art width in cells. Values below 1 are ignored.
func WithWidth(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.width = n
		}
	}
}

// WithTempDir sets where downloaded images are stored while decoding.
func WithTempDir(dir string) Option {
	return func(r *Renderer) {
		if dir != "" {
			r.tempDir = dir
		}
	}
}

// WithLipgloss sets the lipgloss renderer used to color glyphs, which
// decides the color profile (true color, 256, none).
func WithLipgloss(lg *lipgloss.Renderer) Option {
	return func(r *Renderer) {
		if lg != nil {
			r.lg = lg
		}
	}
}

// NewRenderer creates a renderer that downloads images through dl.
func NewRenderer(dl Downloader, opts ...Option) *Renderer {
	r := &Renderer{
		dl:      dl,
		width:   DefaultWidth,
		tempDir: filepath.Join(os.TempDir(), "ghfetch"),
		lg:      lipgloss.DefaultRenderer(),
		styles:  make(map[string]lipgloss.Style),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Width returns the art width in cells.
func (r *Renderer) Width() int { return r.width }

// Render downloads the image at imageURL and returns its canvas, padded to
// at least [MinRows] rows.
func (r *Renderer) Render(ctx context.Context, imageURL string) (*Canvas, error) {
	if err := ghferrors.ValidateURL(imageURL); err != nil {
		return nil, err
	}

	hooks := observability.Render()
	hooks.OnRenderStart(ctx, imageURL)
	start := time.Now()

	c, err := r.render(ctx, imageURL)

	var rows int
	if c != nil {
		rows = c.Len()
	}
	hooks.OnRenderComplete(ctx, imageURL, rows, time.Since(start), err)
	return c, err
}

func (r *Renderer) render(ctx context.Context, imageURL string) (*Canvas, error) {
	path, err := r.download(ctx, imageURL)
	if err != nil {
		return nil, err
	}
	defer os.Remove(path)

	img, err := imaging.Open(path)
	if err != nil {
		return nil, ghferrors.Wrap(ghferrors.ErrCodeUnmapped, err, "decode avatar %s", imageURL)
	}
	return r.Rasterize(img)
}

// download stores the image in a uniquely named temp file. On error no file
// is left behind.
func (r *Renderer) download(ctx context.Context, imageURL string) (string, error) {
	data, err := r.dl.Download(ctx, imageURL)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(r.tempDir, 0o755); err != nil {
		return "", ghferrors.Wrap(ghferrors.ErrCodeUnmapped, err, "create temp dir %s", r.tempDir)
	}
	path := filepath.Join(r.tempDir, "avatar-"+uuid.NewString())
	if err := os.WriteFile(path, data, 0o600); err != nil {
		os.Remove(path)
		return "", ghferrors.Wrap(ghferrors.ErrCodeUnmapped, err, "write %s", path)
	}
	return path, nil
}

// Rasterize converts a decoded image to a canvas.
func (r *Renderer) Rasterize(img image.Image) (*Canvas, error) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, ghferrors.New(ghferrors.ErrCodeUnmapped, "avatar has no pixels")
	}

	height := TargetHeight(b.Dx(), b.Dy(), r.width)
	small := imaging.Resize(img, r.width, height, imaging.Box)

	rows := make([]string, 0, max(height, MinRows))
	var sb strings.Builder
	for y := 0; y < height; y++ {
		sb.Reset()
		for x := 0; x < r.width; x++ {
			px := small.NRGBAAt(x, y)
			hex := colorful.Color{
				R: float64(px.R) / 255,
				G: float64(px.G) / 255,
				B: float64(px.B) / 255,
			}.Hex()
			sb.WriteString(r.style(hex).Render(Glyph))
		}
		sb.WriteString(gutter)
		rows = append(rows, sb.String())
	}

	c := NewCanvas(r.width+len(gutter), rows)
	c.Pad(MinRows)
	return c, nil
}

func (r *Renderer) style(hex string) lipgloss.Style {
	s, ok := r.styles[hex]
	if !ok {
		s = r.lg.NewStyle().Foreground(lipgloss.Color(hex))
		r.styles[hex] = s
	}
	return s
}

// TargetHeight returns the number of rows for an image of w×h pixels drawn
// width cells wide. It is at least 1.
func TargetHeight(w, h, width int) int {
	height := int(math.Round(float64(h) / float64(w) * float64(width) * cellAspect))
	return max(height, 1)
}
