// Package assets loads texture images off the render thread and tracks the
// load state of each one, so the renderer can draw placeholders until an
// image arrives and tests can wait for every asset to settle.
package assets

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"log"
	"os"
	"sort"
	"sync"

	xdraw "golang.org/x/image/draw"
)

// MaxTextureSize caps the longest edge of a decoded texture
const MaxTextureSize = 4096

// State is the load state of one asset
type State int

const (
	Pending State = iota
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Asset is one texture image and its load state
type Asset struct {
	Name  string
	State State
	Image *image.RGBA // Set when Ready
	Err   error       // Set when Failed
}

type result struct {
	name string
	img  *image.RGBA
	err  error
}

// Loader decodes images concurrently. Load and Poll must be called from the
// same goroutine (the frame loop); decoding happens on worker goroutines.
type Loader struct {
	fsys    fs.FS
	assets  map[string]*Asset
	results chan result
	wg      sync.WaitGroup
}

// NewLoader reads assets from dir
func NewLoader(dir string) *Loader {
	return NewLoaderFS(os.DirFS(dir))
}

// NewLoaderFS reads assets from fsys
func NewLoaderFS(fsys fs.FS) *Loader {
	return &Loader{
		fsys:    fsys,
		assets:  make(map[string]*Asset),
		results: make(chan result, 64),
	}
}

// Load starts loading each named asset not already known. It never blocks.
func (l *Loader) Load(names ...string) {
	for _, name := range names {
		if _, ok := l.assets[name]; ok {
			continue
		}
		l.assets[name] = &Asset{Name: name, State: Pending}
		l.wg.Add(1)
		go func(name string) {
			defer l.wg.Done()
			img, err := decodeFile(l.fsys, name)
			l.results <- result{name: name, img: img, err: err}
		}(name)
	}
}

// Poll applies every finished load without blocking and returns the assets
// that settled during this call.
func (l *Loader) Poll() []*Asset {
	var settled []*Asset
	for {
		select {
		case r := <-l.results:
			settled = append(settled, l.settle(r))
		default:
			return settled
		}
	}
}

// Wait blocks until every requested asset has settled or ctx is done
func (l *Loader) Wait(ctx context.Context) ([]*Asset, error) {
	var settled []*Asset
	for !l.AllSettled() {
		select {
		case r := <-l.results:
			settled = append(settled, l.settle(r))
		case <-ctx.Done():
			return settled, ctx.Err()
		}
	}
	return settled, nil
}

func (l *Loader) settle(r result) *Asset {
	a := l.assets[r.name]
	if r.err != nil {
		a.State = Failed
		a.Err = r.err
		log.Printf("assets: %s failed, drawing untextured: %v", r.name, r.err)
	} else {
		a.State = Ready
		a.Image = r.img
	}
	return a
}

// Get returns the named asset
func (l *Loader) Get(name string) (*Asset, bool) {
	a, ok := l.assets[name]
	return a, ok
}

// StateOf returns the state of the named asset. Unknown assets are Failed.
func (l *Loader) StateOf(name string) State {
	if a, ok := l.assets[name]; ok {
		return a.State
	}
	return Failed
}

// Counts returns the number of assets in each state
func (l *Loader) Counts() map[State]int {
	counts := map[State]int{Pending: 0, Ready: 0, Failed: 0}
	for _, a := range l.assets {
		counts[a.State]++
	}
	return counts
}

// AllSettled reports whether no asset is pending
func (l *Loader) AllSettled() bool {
	for _, a := range l.assets {
		if a.State == Pending {
			return false
		}
	}
	return true
}

// AllReady reports whether every asset loaded successfully
func (l *Loader) AllReady() bool {
	for _, a := range l.assets {
		if a.State != Ready {
			return false
		}
	}
	return true
}

// Names returns the known asset names in sorted order
func (l *Loader) Names() []string {
	names := make([]string, 0, len(l.assets))
	for n := range l.assets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Close waits for outstanding decodes to finish
func (l *Loader) Close() {
	go func() {
		for range l.results {
		}
	}()
	l.wg.Wait()
	close(l.results)
}

func decodeFile(fsys fs.FS, name string) (*image.RGBA, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}

	return toRGBA(src), nil
}

// toRGBA converts src to RGBA, downscaling so neither edge exceeds MaxTextureSize
func toRGBA(src image.Image) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > MaxTextureSize || h > MaxTextureSize {
		if w >= h {
			h = h * MaxTextureSize / w
			w = MaxTextureSize
		} else {
			w = w * MaxTextureSize / h
			h = MaxTextureSize
		}
		dst := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
		xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
		return dst
	}
	if rgba, ok := src.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(dst, dst.Bounds(), src, b.Min, xdraw.Src)
	return dst
}
