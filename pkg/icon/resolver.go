package icon

import (
	"fmt"
	"image"

	"github.com/manifold/shortcuttray/pkg/logging"
	zaplog "github.com/manifold/shortcuttray/pkg/logging/zap"
)

// Fit says what a strategy does with a candidate that is not Size×Size.
type Fit int

const (
	// FitExact discards wrong-sized candidates.
	FitExact Fit = iota
	// FitResize scales any candidate to Size×Size and always accepts it.
	FitResize
)

// Strategy is one step of the resolution chain.
type Strategy struct {
	Name string
	Fit  Fit
	Fn   func(req *Request) (image.Image, error)
}

// Resolver runs Strategies in order until one produces a usable icon.
type Resolver struct {
	Strategies []Strategy
	// Links are consulted, in order, to find a shortcut's target.
	Links []LinkReader
	Log   logging.Logger
}

// NewResolver builds the standard chain. shellLink and scriptHost may be nil
// on platforms that lack them; their strategies then fail and are skipped.
func NewResolver(shellLink, scriptHost LinkReader, ex Extractor, log logging.Logger) *Resolver {
	if log == nil {
		log = zaplog.Nop()
	}
	return &Resolver{
		Log:   log,
		Links: []LinkReader{shellLink, scriptHost},
		Strategies: []Strategy{
			{Name: "shelllink", Fit: FitExact, Fn: func(req *Request) (image.Image, error) {
				l, err := req.LinkAt(0)
				if err != nil {
					return nil, err
				}
				return extractFromLink(ex, l)
			}},
			{Name: "scripthost", Fit: FitExact, Fn: func(req *Request) (image.Image, error) {
				l, err := req.LinkAt(1)
				if err != nil {
					return nil, err
				}
				return extractFromLink(ex, l)
			}},
			{Name: "target-fileinfo", Fit: FitExact, Fn: func(req *Request) (image.Image, error) {
				target, err := req.Target()
				if err != nil {
					return nil, err
				}
				return ex.FileIcon(target)
			}},
			{Name: "link-fileinfo", Fit: FitExact, Fn: func(req *Request) (image.Image, error) {
				return ex.FileIcon(req.Path)
			}},
			{Name: "target-associated", Fit: FitResize, Fn: func(req *Request) (image.Image, error) {
				target, err := req.Target()
				if err != nil {
					return nil, err
				}
				return ex.AssociatedIcon(target)
			}},
			{Name: "link-associated", Fit: FitResize, Fn: func(req *Request) (image.Image, error) {
				if target, err := req.Target(); err == nil {
					return nil, fmt.Errorf("target %q was resolved, not falling back to the link", target)
				}
				return ex.AssociatedIcon(req.Path)
			}},
		},
	}
}

// Resolve returns the icon for path, or None. It never panics.
func (r *Resolver) Resolve(path string) Outcome {
	req := NewRequest(path, r.Links...)
	for _, s := range r.Strategies {
		img, err := r.try(s, req)
		if err != nil {
			logging.Debug(r.Log, "icon: ", s.Name, " failed for ", path, ": ", err)
			continue
		}
		return Outcome{Image: img, Strategy: s.Name}
	}
	logging.Debug(r.Log, "icon: no icon for ", path)
	return None
}

// Icon is Resolve without the strategy name.
func (r *Resolver) Icon(path string) image.Image {
	return r.Resolve(path).Image
}

func (r *Resolver) try(s Strategy, req *Request) (img image.Image, err error) {
	defer func() {
		if p := recover(); p != nil {
			img, err = nil, fmt.Errorf("panic: %v", p)
		}
	}()
	img, err = s.Fn(req)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, ErrNoIcon
	}
	if isSize(img, Size) {
		return img, nil
	}
	if s.Fit == FitResize {
		return Resize(img, Size), nil
	}
	b := img.Bounds()
	return nil, fmt.Errorf("%w: %dx%d", ErrWrongSize, b.Dx(), b.Dy())
}

func extractFromLink(ex Extractor, l Link) (image.Image, error) {
	if l.IconLocation != "" {
		return ex.ExtractSmall(ExpandEnv(l.IconLocation), l.IconIndex)
	}
	if l.Target == "" {
		return nil, ErrNoTarget
	}
	return ex.ExtractSmall(ExpandEnv(l.Target), 0)
}
