package media

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"time"

	xdraw "golang.org/x/image/draw"

	"montage/internal/logging"
	"montage/internal/media/ffprobe"
	"montage/internal/services"
)

// Warning records a source that could not be preloaded.
type Warning struct {
	Source string
	Err    error
}

func (w Warning) String() string {
	return fmt.Sprintf("source %s skipped: %v", w.Source, w.Err)
}

// Options configures a Cache.
type Options struct {
	Binary       string
	ProbeBinary  string
	SeekTimeout  time.Duration
	CanvasWidth  int
	CanvasHeight int
	Logger       *slog.Logger
}

// Cache probes sources once and serves decoded frames to the renderer.
// Stills persist for the whole export; video frames live until the next
// Evict call at a batch boundary.
type Cache struct {
	opts   Options
	logger *slog.Logger

	mu       sync.Mutex
	infos    map[string]*Info
	stills   map[string]image.Image
	frames   map[string]image.Image
	lastGood map[string]image.Image

	// probe, loadImage, and loadFrame are swapped out by tests.
	probe     func(ctx context.Context, source string) (ffprobe.Result, error)
	loadImage func(ctx context.Context, source string) (image.Image, error)
	loadFrame func(ctx context.Context, source string, at float64) (image.Image, error)
}

// NewCache builds an empty cache. Preload must run before FrameAt.
func NewCache(opts Options) *Cache {
	if opts.Binary == "" {
		opts.Binary = "ffmpeg"
	}
	if opts.ProbeBinary == "" {
		opts.ProbeBinary = "ffprobe"
	}
	if opts.SeekTimeout <= 0 {
		opts.SeekTimeout = 10 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	c := &Cache{
		opts:     opts,
		logger:   logger,
		infos:    make(map[string]*Info),
		stills:   make(map[string]image.Image),
		frames:   make(map[string]image.Image),
		lastGood: make(map[string]image.Image),
	}
	c.probe = func(ctx context.Context, source string) (ffprobe.Result, error) {
		return ffprobe.Inspect(ctx, opts.ProbeBinary, source)
	}
	c.loadImage = func(ctx context.Context, source string) (image.Image, error) {
		return extractFrame(ctx, opts.Binary, source, 0)
	}
	c.loadFrame = func(ctx context.Context, source string, at float64) (image.Image, error) {
		return extractFrame(ctx, opts.Binary, source, at)
	}
	return c
}

// Preload probes every source and decodes still images up front. A source
// that fails to probe or decode is recorded as a warning and skipped; clips
// referencing it simply do not draw, and the export continues degraded.
func (c *Cache) Preload(ctx context.Context, sources []string) ([]Warning, error) {
	var warnings []Warning
	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			return warnings, err
		}
		if _, done := c.info(source); done {
			continue
		}
		result, err := c.probe(ctx, source)
		if err != nil {
			err = services.Wrap(services.ErrMediaLoad, "preparing", "probe", source, err)
			c.logger.Warn("source skipped",
				logging.String(logging.FieldSource, source),
				logging.Error(err))
			warnings = append(warnings, Warning{Source: source, Err: err})
			continue
		}
		info := infoFromProbe(source, result)
		if info.Kind == KindImage {
			img, err := c.loadImage(ctx, source)
			if err != nil {
				c.logger.Warn("source skipped",
					logging.String(logging.FieldSource, source),
					logging.Error(err))
				warnings = append(warnings, Warning{Source: source, Err: err})
				continue
			}
			img = c.downscale(img)
			c.mu.Lock()
			c.stills[source] = img
			c.mu.Unlock()
			bounds := img.Bounds()
			info.Width = bounds.Dx()
			info.Height = bounds.Dy()
		}
		c.mu.Lock()
		c.infos[source] = info
		c.mu.Unlock()
		c.logger.Debug("source preloaded",
			logging.String(logging.FieldSource, source),
			logging.String("kind", string(info.Kind)))
	}
	return warnings, nil
}

// Info returns the probed metadata for a preloaded source.
func (c *Cache) Info(source string) (*Info, bool) {
	return c.info(source)
}

func (c *Cache) info(source string) (*Info, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	info, ok := c.infos[source]
	return info, ok
}

// FrameAt returns the source's frame for the given source-local timestamp.
// Stills always return the preloaded image. Video seeks that exceed the
// configured timeout reuse the last good frame from the same source.
func (c *Cache) FrameAt(ctx context.Context, source string, at float64) (image.Image, error) {
	info, ok := c.info(source)
	if !ok {
		return nil, services.Wrap(services.ErrMediaLoad, "rendering", "frame",
			fmt.Sprintf("%s was not preloaded", source), nil)
	}
	if info.Kind == KindImage {
		c.mu.Lock()
		still := c.stills[source]
		c.mu.Unlock()
		return still, nil
	}
	if info.Kind == KindAudio {
		return nil, services.Wrap(services.ErrMediaLoad, "rendering", "frame",
			fmt.Sprintf("%s has no video stream", source), nil)
	}

	// Clamp into the decodable range so a clip's final frame never seeks
	// past the end of the file.
	if info.Duration > 0 && at >= info.Duration {
		at = info.Duration - 0.001
	}
	if at < 0 {
		at = 0
	}

	key := frameKey(source, at)
	c.mu.Lock()
	if img, ok := c.frames[key]; ok {
		c.mu.Unlock()
		return img, nil
	}
	c.mu.Unlock()

	seekCtx, cancel := context.WithTimeout(ctx, c.opts.SeekTimeout)
	defer cancel()
	img, err := c.loadFrame(seekCtx, source, at)
	if err != nil {
		if seekCtx.Err() != nil && ctx.Err() == nil {
			c.mu.Lock()
			held := c.lastGood[source]
			c.mu.Unlock()
			if held != nil {
				c.logger.Warn("seek timed out, holding previous frame",
					logging.String(logging.FieldSource, source),
					logging.Float64("timestamp", at))
				return held, nil
			}
		}
		return nil, err
	}

	c.mu.Lock()
	c.frames[key] = img
	c.lastGood[source] = img
	c.mu.Unlock()
	return img, nil
}

// Evict drops cached video frames. The orchestrator calls it between batches
// to keep memory bounded. Stills and held frames survive.
func (c *Cache) Evict() {
	c.mu.Lock()
	c.frames = make(map[string]image.Image)
	c.mu.Unlock()
}

// downscale shrinks a still that is larger than the canvas can ever show,
// keeping aspect so a cover fit loses nothing.
func (c *Cache) downscale(img image.Image) image.Image {
	if c.opts.CanvasWidth <= 0 || c.opts.CanvasHeight <= 0 {
		return img
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return img
	}
	scale := float64(c.opts.CanvasWidth) / float64(w)
	if s := float64(c.opts.CanvasHeight) / float64(h); s > scale {
		scale = s
	}
	if scale >= 1 {
		return img
	}
	dstW := int(float64(w)*scale + 0.5)
	dstH := int(float64(h)*scale + 0.5)
	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)
	return dst
}

func frameKey(source string, at float64) string {
	return fmt.Sprintf("%s@%.4f", source, at)
}
