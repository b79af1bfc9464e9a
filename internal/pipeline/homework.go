package pipeline

import (
	"context"
	"path/filepath"
	"time"

	"github.com/uwimg/uwimg"
	"github.com/uwimg/uwimg/internal/logger"
)

// homework holds the directories the homework steps read from and write to.
type homework struct {
	data, results string
	log           *logger.Logger
}

func (h *homework) load(name string) (*uwimg.Image, error) {
	return uwimg.Load(filepath.Join(h.data, name))
}

func (h *homework) save(im *uwimg.Image, name string) error {
	path := filepath.Join(h.results, name)
	if err := uwimg.Save(im, path); err != nil {
		return err
	}
	h.log.Debugw("saved", "path", path, "size", im.String(), "fingerprint", im.Fingerprint())
	return nil
}

// resize runs f on data/name scaled by num/den and saves the result.
func (h *homework) resize(name, out string, num, den int, f func(*uwimg.Image, int, int) (*uwimg.Image, error)) func(context.Context) error {
	return func(context.Context) error {
		im, err := h.load(name)
		if err != nil {
			return err
		}
		a, err := f(im, im.W*num/den, im.H*num/den)
		if err != nil {
			return err
		}
		return h.save(a, out)
	}
}

// filter convolves data/dog.jpg with the filter returned by build and saves
// the clamped result.
func (h *homework) filter(out string, preserve bool, build func() (*uwimg.Image, error)) func(context.Context) error {
	return func(context.Context) error {
		im, err := h.load("dog.jpg")
		if err != nil {
			return err
		}
		f, err := build()
		if err != nil {
			return err
		}
		a, err := uwimg.Convolve(im, f, preserve)
		if err != nil {
			return err
		}
		uwimg.Clamp(a)
		return h.save(a, out)
	}
}

func fixed(f func() *uwimg.Image) func() (*uwimg.Image, error) {
	return func() (*uwimg.Image, error) { return f(), nil }
}

func (h *homework) thumbnail(context.Context) error {
	im, err := h.load("dog.jpg")
	if err != nil {
		return err
	}
	f, err := uwimg.BoxFilter(7)
	if err != nil {
		return err
	}
	blur, err := uwimg.Convolve(im, f, true)
	if err != nil {
		return err
	}
	a, err := uwimg.NearestResize(im, im.W/7, im.H/7)
	if err != nil {
		return err
	}
	if err = h.save(a, "dog7th-nn"); err != nil {
		return err
	}
	if a, err = uwimg.NearestResize(blur, blur.W/7, blur.H/7); err != nil {
		return err
	}
	return h.save(a, "dog7th-box")
}

// split separates im into its low and high frequency parts.
func split(im *uwimg.Image, sigma float64) (low, high *uwimg.Image, err error) {
	f, err := uwimg.GaussianFilter(sigma)
	if err != nil {
		return nil, nil, err
	}
	if low, err = uwimg.Convolve(im, f, true); err != nil {
		return nil, nil, err
	}
	if high, err = uwimg.Subtract(im, low); err != nil {
		return nil, nil, err
	}
	return low, high, nil
}

func (h *homework) frequencies(context.Context) error {
	im, err := h.load("dog.jpg")
	if err != nil {
		return err
	}
	low, high, err := split(im, 2)
	if err != nil {
		return err
	}
	reconstruct, err := uwimg.Add(low, high)
	if err != nil {
		return err
	}
	if err = h.save(low, "low-frequency"); err != nil {
		return err
	}
	if err = h.save(reconstruct, "reconstruct"); err != nil {
		return err
	}
	// high frequencies are centred on zero
	for c := range high.C {
		if err = uwimg.Shift(high, c, 0.5); err != nil {
			return err
		}
	}
	return h.save(high, "high-frequency")
}

func (h *homework) hybrid(context.Context) error {
	ron, err := h.load("ron.png")
	if err != nil {
		return err
	}
	dumbledore, err := h.load("dumbledore.png")
	if err != nil {
		return err
	}
	low, _, err := split(ron, 2)
	if err != nil {
		return err
	}
	_, high, err := split(dumbledore, 2)
	if err != nil {
		return err
	}
	a, err := uwimg.Add(low, high)
	if err != nil {
		return err
	}
	uwimg.Clamp(a)
	return h.save(a, "ronbledore")
}

func (h *homework) sobel(context.Context) error {
	im, err := h.load("dog.jpg")
	if err != nil {
		return err
	}
	mag, _, err := uwimg.Sobel(im)
	if err != nil {
		return err
	}
	uwimg.FeatureNormalize(mag)
	if err = h.save(mag, "magnitude"); err != nil {
		return err
	}
	c, err := uwimg.ColorizeSobel(im)
	if err != nil {
		return err
	}
	return h.save(c, "sobel-color")
}

func (h *homework) corners(context.Context) error {
	im, err := h.load("dog.jpg")
	if err != nil {
		return err
	}
	n, err := uwimg.DetectAndDrawCorners(im, 2, 50, 3)
	if err != nil {
		return err
	}
	h.log.Infow("corners detected", "count", n)
	return h.save(im, "corners")
}

// sweep writes an animation of dog.jpg blurred with increasing sigma.
func (h *homework) sweep(context.Context) error {
	im, err := h.load("dog.jpg")
	if err != nil {
		return err
	}
	frames := []*uwimg.Image{im}
	for _, sigma := range []float64{0.5, 1, 1.5, 2, 2.5, 3} {
		f, err := uwimg.GaussianFilter(sigma)
		if err != nil {
			return err
		}
		a, err := uwimg.Convolve(im, f, true)
		if err != nil {
			return err
		}
		frames = append(frames, a)
	}
	return uwimg.SaveAnimation(frames, filepath.Join(h.results, "gaussian-sweep.png"), 250*time.Millisecond)
}

// Homework returns a pipeline that reads its inputs from dataDir and writes
// every result to resultsDir. The inputs are dogsmall.jpg, dog.jpg, ron.png
// and dumbledore.png.
func Homework(dataDir, resultsDir string, log *logger.Logger) *Pipeline {
	h := &homework{data: dataDir, results: resultsDir, log: log}
	return New(log).
		Add("nearest-resize-4x", h.resize("dogsmall.jpg", "dog4x-nn", 4, 1, uwimg.NearestResize)).
		Add("nearest-resize-5x", h.resize("dogsmall.jpg", "dog5x-nn", 5, 1, uwimg.NearestResize)).
		Add("bilinear-resize-4x", h.resize("dogsmall.jpg", "dog4x-bl", 4, 1, uwimg.BilinearResize)).
		Add("box-filter", h.filter("dog-box7", true, func() (*uwimg.Image, error) { return uwimg.BoxFilter(7) })).
		Add("thumbnail", h.thumbnail).
		Add("highpass-filter", h.filter("dog-highpass", false, fixed(uwimg.HighpassFilter))).
		Add("sharpen-filter", h.filter("dog-sharpen", true, fixed(uwimg.SharpenFilter))).
		Add("emboss-filter", h.filter("dog-emboss", true, fixed(uwimg.EmbossFilter))).
		Add("gaussian-filter", h.filter("dog-gauss2", true, func() (*uwimg.Image, error) { return uwimg.GaussianFilter(2) })).
		Add("frequencies", h.frequencies).
		Add("hybrid", h.hybrid).
		Add("sobel", h.sobel).
		Add("corners", h.corners).
		Add("gaussian-sweep", h.sweep)
}
