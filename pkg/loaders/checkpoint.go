package loaders

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang/glog"

	"github.com/df07/go-sdf-raytracer/pkg/renderer"
)

// Checkpointer persists the running average of a progressive render so an
// interrupted render still leaves a usable image behind
type Checkpointer struct {
	Dir      string // Output directory
	RawEvery int    // Write a raw dump every RawEvery passes (0 = never)
}

// NewCheckpointer creates the output directory if needed
func NewCheckpointer(dir string, rawEvery int) (*Checkpointer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("while creating output directory: %w", err)
	}
	return &Checkpointer{Dir: dir, RawEvery: rawEvery}, nil
}

// PNGPath returns the checkpoint image for the given samples per pixel
func (c *Checkpointer) PNGPath(samples int) string {
	return filepath.Join(c.Dir, fmt.Sprintf("output-%05d.png", samples))
}

// RawPath returns the raw dump for the given samples per pixel
func (c *Checkpointer) RawPath(samples int) string {
	return filepath.Join(c.Dir, fmt.Sprintf("raw-output-%05d", samples))
}

// FinalPath returns the path of the finished image
func (c *Checkpointer) FinalPath() string {
	return filepath.Join(c.Dir, "output.png")
}

// OnPass writes the pass checkpoints. It has the signature of a renderer.PassCallback.
func (c *Checkpointer) OnPass(ctx context.Context, result renderer.PassResult) error {
	samples := result.Stats.Samples

	if err := SavePNG(ctx, c.PNGPath(samples), result.Image); err != nil {
		return err
	}
	if c.RawEvery > 0 && result.PassNumber%c.RawEvery == 0 {
		if err := SaveRaw(ctx, c.RawPath(samples), result.Image); err != nil {
			return err
		}
	}

	glog.V(1).Infof("Checkpoint written for pass %d (%d samples/pixel)", result.PassNumber, samples)
	return nil
}

// Finish writes the final image
func (c *Checkpointer) Finish(ctx context.Context, img *renderer.Image) error {
	if err := SavePNG(ctx, c.FinalPath(), img); err != nil {
		return err
	}
	glog.Infof("Render saved as %s", c.FinalPath())
	return nil
}
