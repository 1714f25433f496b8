package shade

import (
	"errors"
	"image"
	"image/color"
	"runtime"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
	"golang.org/x/sync/errgroup"

	"github.com/RonDeBen/valence-sdf/trace"
)

type setImage = interface {
	image.Image
	Set(x, y int, c color.Color)
}

var errBadImage = errors.New("image must be at least 1x1")

// Camera is a pinhole camera. FOV is the vertical field of view in radians.
type Camera struct {
	Origin ms3.Vec
	LookAt ms3.Vec
	Up     ms3.Vec
	FOV    float32
}

// DefaultCamera frames the origin from +Z with Y up.
func DefaultCamera() Camera {
	return Camera{
		Origin: ms3.Vec{Z: 6},
		Up:     ms3.Vec{Y: 1},
		FOV:    math32.Pi / 4,
	}
}

// basis returns the camera's right/up/forward frame.
func (c Camera) basis() (right, up, fwd ms3.Vec) {
	fwd = ms3.Unit(ms3.Sub(c.LookAt, c.Origin))
	right = ms3.Unit(ms3.Cross(fwd, c.Up))
	up = ms3.Cross(right, fwd)
	return right, up, fwd
}

// Ray builds the primary ray through normalized screen coordinates
// (u,v) in [0,1]², v growing downward, at the given aspect ratio.
func (c Camera) Ray(u, v, aspect float32) trace.Ray {
	right, up, fwd := c.basis()
	halfH := math32.Tan(c.FOV / 2)
	halfW := halfH * aspect
	x := (2*u - 1) * halfW
	y := (1 - 2*v) * halfH
	dir := ms3.Add(fwd, ms3.Add(ms3.Scale(x, right), ms3.Scale(y, up)))
	return trace.Ray{Origin: c.Origin, Dir: ms3.Unit(dir)}
}

// Renderer rasterizes a shading pipeline into images, evaluating image rows
// concurrently. The pipeline's scene must not be mutated while rendering.
type Renderer struct {
	Pipeline *Pipeline
	// Workers bounds render concurrency. Zero or negative means GOMAXPROCS.
	Workers int
}

// NewRenderer returns a renderer over pl using all available processors.
func NewRenderer(pl *Pipeline) *Renderer {
	return &Renderer{Pipeline: pl}
}

// RenderImage shades one primary ray per pixel of img through cam. Pixels
// whose rays miss are left untouched so callers control the background.
func (r *Renderer) RenderImage(img setImage, cam Camera) error {
	bb := img.Bounds()
	w, h := bb.Dx(), bb.Dy()
	if w <= 0 || h <= 0 {
		return errBadImage
	}
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	aspect := float32(w) / float32(h)
	var g errgroup.Group
	g.SetLimit(workers)
	for j := 0; j < h; j++ {
		j := j
		g.Go(func() error {
			v := (float32(j) + 0.5) / float32(h)
			for i := 0; i < w; i++ {
				u := (float32(i) + 0.5) / float32(w)
				s, err := r.Pipeline.Shade(cam.Ray(u, v, aspect))
				if err != nil {
					return err
				}
				if !s.Hit {
					continue
				}
				img.Set(bb.Min.X+i, bb.Min.Y+j, s.Color.RGBA8())
			}
			return nil
		})
	}
	return g.Wait()
}
