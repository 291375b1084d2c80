// Package loader decodes texture images off the render thread.
package loader

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"haunted-house/scene"
)

// ErrClosed is recorded on textures requested after Close.
var ErrClosed = errors.New("loader: closed")

// Loader hands out texture handles immediately and fills them from a
// worker pool. Handles are cached by path.
type Loader struct {
	root string
	pool worker.DynamicWorkerPool

	mu       sync.Mutex
	textures map[string]*scene.Texture
	closed   bool
	nextID   int
	pending  sync.WaitGroup
}

// New creates a loader resolving relative paths against root. workers <= 0
// picks one per spare CPU.
func New(root string, workers int) *Loader {
	if workers <= 0 {
		workers = max(runtime.NumCPU()-1, 1)
	}
	return &Loader{
		root:     root,
		pool:     worker.NewDynamicWorkerPool(workers, 64, 2*time.Second),
		textures: make(map[string]*scene.Texture),
	}
}

// Load returns the texture for path. The first call schedules the decode.
func (l *Loader) Load(path string) *scene.Texture {
	l.mu.Lock()
	defer l.mu.Unlock()

	if tex, ok := l.textures[path]; ok {
		return tex
	}
	tex := scene.NewTexture(path)
	if l.closed {
		tex.Fail(ErrClosed)
		return tex
	}
	l.textures[path] = tex

	full := path
	if l.root != "" && !filepath.IsAbs(path) {
		full = filepath.Join(l.root, path)
	}

	l.pending.Add(1)
	id := l.nextID
	l.nextID++
	l.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			defer l.pending.Done()
			w, h, pixels, err := DecodeFile(full)
			if err != nil {
				log.Printf("[Texture] failed to load %s: %v", path, err)
				tex.Fail(err)
				return nil, err
			}
			tex.Resolve(w, h, pixels)
			return nil, nil
		},
	})
	return tex
}

// Wait blocks until every scheduled decode has finished.
func (l *Loader) Wait() {
	l.pending.Wait()
}

// Close stops accepting new work and waits for outstanding decodes.
func (l *Loader) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	l.closed = true
	l.mu.Unlock()
	l.pending.Wait()
	return nil
}

// Stats counts cached textures by state.
func (l *Loader) Stats() (pending, ready, failed int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, t := range l.textures {
		switch t.State() {
		case scene.TextureReady:
			ready++
		case scene.TextureFailed:
			failed++
		default:
			pending++
		}
	}
	return
}

// DecodeFile reads an image file and returns RGBA8 pixels with the first
// row at the bottom, as glTexImage2D expects.
func DecodeFile(path string) (int, int, []byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, nil, err
	}
	defer f.Close()
	return Decode(f)
}

func Decode(r io.Reader) (int, int, []byte, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("decode: %w", err)
	}
	rgba := transform.FlipV(clone.AsRGBA(img))
	b := rgba.Bounds()
	return b.Dx(), b.Dy(), rgba.Pix, nil
}

// Failing returns handles that have already failed. Useful where assembly
// must not depend on disk contents.
type Failing struct {
	Err error
}

func (f Failing) Load(path string) *scene.Texture {
	tex := scene.NewTexture(path)
	err := f.Err
	if err == nil {
		err = fmt.Errorf("loader: %s unavailable", path)
	}
	tex.Fail(err)
	return tex
}
