package canvas

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	"image/png"
	"os"

	"github.com/jonathan/cv-generator/internal/theme"
	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp" // register BMP decoder
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WEBP decoder
)

// pixels per point used when rasterising profile pictures
const imageScale = 4

// maxImageSide caps the embedded bitmap size.
const maxImageSide = 800

// ImageError reports a profile picture that could not be used.
type ImageError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ImageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("image %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("image %s: %s", e.Path, e.Message)
}

func (e *ImageError) Unwrap() error {
	return e.Cause
}

// LoadSquareImage decodes the image at path, crops it to a centred square
// and scales it to side pixels as PNG bytes. JPEG, PNG, GIF, BMP, TIFF and
// WEBP inputs are accepted.
func LoadSquareImage(path string, side int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ImageError{Path: path, Message: "cannot open", Cause: err}
	}
	defer func() { _ = f.Close() }()

	src, format, err := image.Decode(f)
	if err != nil {
		return nil, &ImageError{Path: path, Message: "unsupported or corrupt image", Cause: err}
	}

	b := src.Bounds()
	edge := b.Dx()
	if b.Dy() < edge {
		edge = b.Dy()
	}
	if edge == 0 {
		return nil, &ImageError{Path: path, Message: "image is empty"}
	}
	crop := image.Rect(
		b.Min.X+(b.Dx()-edge)/2,
		b.Min.Y+(b.Dy()-edge)/2,
		b.Min.X+(b.Dx()-edge)/2+edge,
		b.Min.Y+(b.Dy()-edge)/2+edge,
	)

	if side <= 0 || side > maxImageSide {
		side = maxImageSide
	}
	if side > edge {
		side = edge
	}
	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, xdraw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, &ImageError{Path: path, Message: "failed to encode " + format, Cause: err}
	}
	return buf.Bytes(), nil
}

// DrawImageInCircle draws the picture at path clipped to a circle centred on
// (cx, cy) and outlines it with border. Failures are logged and reported but
// leave the page untouched.
func (c *Canvas) DrawImageInCircle(path string, cx, cy, r float64, border theme.Color) error {
	data, err := LoadSquareImage(path, int(2*r*imageScale))
	if err != nil {
		c.logger.Warn("skipping profile picture", zap.String("path", path), zap.Error(err))
		return err
	}

	c.images++
	name := fmt.Sprintf("profile-%d", c.images)
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	c.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if err := c.pdf.Error(); err != nil {
		c.pdf.ClearError()
		c.logger.Warn("skipping profile picture", zap.String("path", path), zap.Error(err))
		return &ImageError{Path: path, Message: "failed to embed", Cause: err}
	}

	c.pdf.ClipCircle(cx, cy, r, false)
	c.pdf.ImageOptions(name, cx-r, cy-r, 2*r, 2*r, false, opts, 0, "")
	c.pdf.ClipEnd()

	c.SetLineWidth(2)
	c.SetStrokeColor(border)
	c.Circle(cx, cy, r, false, true)
	c.SetLineWidth(1)
	return nil
}
