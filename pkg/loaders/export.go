package loaders

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
	"go.opentelemetry.io/otel/attribute"

	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/renderer"
	"github.com/df07/go-sdf-raytracer/pkg/telemetry"
)

var (
	// ErrMalformedRaw is wrapped by raw dump parsing errors
	ErrMalformedRaw = errors.New("malformed raw image")
	// ErrSizeMismatch is returned when comparing images of different sizes
	ErrSizeMismatch = errors.New("image sizes differ")
)

// SavePNG writes the image as an 8 bit PNG with pixel y = 0 on the bottom row
func SavePNG(ctx context.Context, filename string, img *renderer.Image) (err error) {
	_, span := telemetry.Tracer().Start(ctx, "loaders.SavePNG")
	defer func() { telemetry.EndSpan(span, err) }()
	span.SetAttributes(attribute.String("file", filename))

	if err := gg.SavePNG(filename, img.ToRGBA()); err != nil {
		return fmt.Errorf("while saving PNG %s: %w", filename, err)
	}
	return nil
}

// LoadPNG reads a PNG written by SavePNG
func LoadPNG(filename string) (*renderer.Image, error) {
	src, err := gg.LoadPNG(filename)
	if err != nil {
		return nil, fmt.Errorf("while loading PNG %s: %w", filename, err)
	}
	return renderer.FromRGBA(src), nil
}

// SaveRaw writes one "r g b" line per pixel in column-major order (x outer,
// y inner), without a header. Values are written with full precision.
func SaveRaw(ctx context.Context, filename string, img *renderer.Image) (err error) {
	_, span := telemetry.Tracer().Start(ctx, "loaders.SaveRaw")
	defer func() { telemetry.EndSpan(span, err) }()
	span.SetAttributes(attribute.String("file", filename))

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("while creating raw file: %w", err)
	}

	w := bufio.NewWriter(file)
	for x := 0; x < img.Width; x++ {
		for y := 0; y < img.Height; y++ {
			c := img.At(x, y)
			w.WriteString(formatFloat(c.X))
			w.WriteByte(' ')
			w.WriteString(formatFloat(c.Y))
			w.WriteByte(' ')
			w.WriteString(formatFloat(c.Z))
			w.WriteByte('\n')
		}
	}

	if err := w.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("while writing raw file %s: %w", filename, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("while closing raw file %s: %w", filename, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// LoadRaw reads a raw dump of a width × height image
func LoadRaw(filename string, width, height int) (*renderer.Image, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("while opening raw file: %w", err)
	}
	defer file.Close()

	img := renderer.NewImage(width, height)
	total := width * height
	count := 0

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if count >= total {
			return nil, fmt.Errorf("%w: more than %d pixels in %s", ErrMalformedRaw, total, filename)
		}
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: pixel %d has %d values", ErrMalformedRaw, count, len(fields))
		}

		var rgb [3]float64
		for i, field := range fields {
			value, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: pixel %d: %v", ErrMalformedRaw, count, err)
			}
			rgb[i] = value
		}

		img.Set(count/height, count%height, core.NewVec3(rgb[0], rgb[1], rgb[2]))
		count++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("while reading raw file %s: %w", filename, err)
	}
	if count != total {
		return nil, fmt.Errorf("%w: expected %d pixels in %s, got %d", ErrMalformedRaw, total, filename, count)
	}
	return img, nil
}

// Compare returns the root mean square difference over every channel of two images
func Compare(a, b *renderer.Image) (float64, error) {
	if a.Width != b.Width || a.Height != b.Height {
		return 0, fmt.Errorf("%w: %dx%d and %dx%d", ErrSizeMismatch, a.Width, a.Height, b.Width, b.Height)
	}
	if a.Width*a.Height == 0 {
		return 0, nil
	}

	sum := 0.0
	for x := 0; x < a.Width; x++ {
		for y := 0; y < a.Height; y++ {
			d := a.At(x, y).Subtract(b.At(x, y))
			sum += d.Dot(d)
		}
	}
	return math.Sqrt(sum / float64(3*a.Width*a.Height)), nil
}
