package export

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"math"
	"os"
	"time"

	"montage/internal/audio"
	"montage/internal/compose"
	"montage/internal/config"
	"montage/internal/encode"
	"montage/internal/jobstore"
	"montage/internal/logging"
	"montage/internal/media"
	"montage/internal/services"
	"montage/internal/staging"
	"montage/internal/timeline"
)

// frameCache is the slice of media.Cache the orchestrator drives directly.
type frameCache interface {
	compose.FrameSource
	Preload(ctx context.Context, sources []string) ([]media.Warning, error)
	Evict()
}

// clipMixer computes the global audio mix and per-clip schedule.
type clipMixer interface {
	Mix(ctx context.Context, items []*timeline.Item, totalDuration float64) (*audio.Result, error)
}

// Orchestrator runs exports end to end. Construct one per export call chain;
// Run must not be invoked concurrently on the same instance.
type Orchestrator struct {
	cfg    *config.Config
	store  *jobstore.Store
	logger *slog.Logger

	// Swapped out by tests.
	newCache  func(canvasWidth, canvasHeight int) frameCache
	newMixer  func() clipMixer
	runEncode func(ctx context.Context, settings encode.Settings, job encode.Job, onProgress func(frame, total int)) error
}

// New wires an orchestrator to the real media, audio, and encoder backends.
// The job store may be nil, in which case no job rows are recorded.
func New(cfg *config.Config, store *jobstore.Store, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = logging.NewNop()
	}
	o := &Orchestrator{cfg: cfg, store: store, logger: logger}
	o.newCache = func(canvasWidth, canvasHeight int) frameCache {
		return media.NewCache(media.Options{
			Binary:       cfg.FFmpeg.Binary,
			ProbeBinary:  cfg.FFmpeg.ProbeBinary,
			SeekTimeout:  time.Duration(cfg.FFmpeg.SeekTimeoutSeconds) * time.Second,
			CanvasWidth:  canvasWidth,
			CanvasHeight: canvasHeight,
			Logger:       logger,
		})
	}
	o.newMixer = func() clipMixer {
		decoder := audio.NewFFmpegDecoder(cfg.FFmpeg.Binary, cfg.FFmpeg.ProbeBinary)
		return audio.NewMixer(decoder, cfg.Export.SampleRate, cfg.Export.Channels, logger)
	}
	o.runEncode = func(ctx context.Context, settings encode.Settings, job encode.Job, onProgress func(frame, total int)) error {
		runner, err := encode.NewRunner(settings, logger)
		if err != nil {
			return err
		}
		return runner.Run(ctx, job, onProgress)
	}
	return o
}

// Run exports the timeline and returns the output file path. Per-clip media
// failures degrade the export and surface as job warnings; encoder failures
// and invalid settings abort it. Staged frames are removed on every path.
func (o *Orchestrator) Run(ctx context.Context, tl *timeline.Timeline, settings Settings, onProgress func(Progress)) (string, error) {
	settings.applyDefaults(o.cfg)

	// Resolve the render canvas. The timeline keeps its own dimensions so the
	// caller's snapshot is never mutated.
	render := *tl
	if settings.Width > 0 && settings.Height > 0 {
		render.Canvas = timeline.Dimension{Width: settings.Width, Height: settings.Height}
	}
	if render.FontPath == "" {
		render.FontPath = o.cfg.Paths.FontPath
	}

	encSettings := encode.Settings{
		Binary:     o.cfg.FFmpeg.Binary,
		Format:     settings.Format,
		Encoder:    settings.Encoder,
		Quality:    settings.Quality,
		FPS:        settings.FPS,
		SampleRate: o.cfg.Export.SampleRate,
		Channels:   o.cfg.Export.Channels,
	}
	encSettings.Normalize()
	if err := encSettings.Validate(); err != nil {
		return "", err
	}

	totalFrames := int(math.Round(render.Duration * encSettings.FPS))
	if totalFrames <= 0 {
		return "", services.Wrap(services.ErrValidation, "preparing", "frames",
			fmt.Sprintf("timeline duration %.3fs produces no frames", render.Duration), nil)
	}

	run, err := o.beginRun(ctx, &render, settings, onProgress)
	if err != nil {
		return "", err
	}
	return run.execute(ctx, encSettings, totalFrames)
}

// exportRun holds the per-invocation state so failure and cancel paths can
// share cleanup.
type exportRun struct {
	o        *Orchestrator
	tl       *timeline.Timeline
	settings Settings
	rep      *reporter
	logger   *slog.Logger

	jobID      string
	outputPath string
	session    *staging.Session
	cache      frameCache
	startBatch int

	sampler      *logging.ProgressSampler
	seenWarnings map[string]struct{}
}

// logProgress emits a log line when the sampler deems the update worth one.
func (run *exportRun) logProgress(phase Phase, frame, total int) {
	if !run.sampler.ShouldLog(run.rep.last, string(phase)) {
		return
	}
	run.logger.Info("export progress",
		logging.String(logging.FieldPhase, string(phase)),
		logging.Float64(logging.FieldProgressPercent, run.rep.last),
		logging.Int(logging.FieldFrame, frame),
		logging.Int(logging.FieldTotalFrames, total))
}

func (o *Orchestrator) beginRun(ctx context.Context, tl *timeline.Timeline, settings Settings, onProgress func(Progress)) (*exportRun, error) {
	run := &exportRun{
		o:            o,
		tl:           tl,
		settings:     settings,
		rep:          newReporter(onProgress),
		sampler:      logging.NewProgressSampler(5),
		seenWarnings: make(map[string]struct{}),
	}

	if settings.ResumeJobID != "" {
		if o.store == nil {
			return nil, services.Wrap(services.ErrConfiguration, "preparing", "resume",
				"resume requires a job store", nil)
		}
		job, err := o.store.Get(ctx, settings.ResumeJobID)
		if err != nil {
			return nil, err
		}
		if job.Status.Terminal() {
			return nil, services.Wrap(services.ErrValidation, "preparing", "resume",
				fmt.Sprintf("job %s already finished with status %s", job.ID, job.Status), nil)
		}
		session, err := staging.Resume(o.cfg.Paths.StagingDir, job.ID)
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "preparing", "resume", job.ID, err)
		}
		run.jobID = job.ID
		run.outputPath = job.OutputPath
		run.session = session
		run.startBatch = job.LastBatch + 1
	} else {
		session, err := staging.Begin(o.cfg.Paths.StagingDir)
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "preparing", "staging", "", err)
		}
		run.jobID = session.ID
		run.session = session

		project := settings.ProjectName
		if project == "" {
			project = tl.Name
		}
		run.outputPath = settings.outputPath(o.cfg, project)
		if o.store != nil {
			if _, err := o.store.Create(ctx, run.jobID, project, run.outputPath); err != nil {
				_ = session.Remove()
				return nil, err
			}
		}
	}

	run.logger = o.logger.With(logging.String(logging.FieldExportID, run.jobID))
	return run, nil
}

func (run *exportRun) execute(ctx context.Context, encSettings encode.Settings, totalFrames int) (string, error) {
	ctx = services.WithExportID(ctx, run.jobID)
	run.rep.report(Progress{Phase: PhasePreparing, TotalFrames: totalFrames})
	run.recordProgress(ctx, PhasePreparing, 0, 0, totalFrames)

	run.cache = run.o.newCache(run.tl.Canvas.Width, run.tl.Canvas.Height)
	preloadWarnings, err := run.cache.Preload(ctx, run.tl.Sources())
	if err != nil {
		return "", run.cancel(ctx, err)
	}
	for _, w := range preloadWarnings {
		run.recordWarning(ctx, "source:"+w.Source, w.String())
	}
	run.rep.report(Progress{Phase: PhasePreparing, Percent: percentPreparingDone, TotalFrames: totalFrames})

	if err := run.renderFrames(ctx, encSettings.FPS, totalFrames); err != nil {
		return "", err
	}

	mix, err := run.mixAudio(ctx)
	if err != nil {
		return "", err
	}

	if err := run.encode(ctx, encSettings, totalFrames, mix); err != nil {
		return "", err
	}

	run.rep.report(Progress{
		Phase:        PhaseFinalizing,
		Percent:      percentEncodingDone,
		CurrentFrame: totalFrames,
		TotalFrames:  totalFrames,
	})
	run.recordProgress(ctx, PhaseFinalizing, percentEncodingDone, totalFrames, totalFrames)

	if err := run.session.Remove(); err != nil {
		run.logger.Warn("staging cleanup failed", logging.Error(err))
	}
	if run.o.store != nil {
		if err := run.o.store.Finish(ctx, run.jobID, jobstore.StatusComplete, ""); err != nil {
			run.logger.Warn("job record not finalized", logging.Error(err))
		}
	}
	run.rep.report(Progress{
		Phase:        PhaseComplete,
		Percent:      100,
		CurrentFrame: totalFrames,
		TotalFrames:  totalFrames,
	})
	run.logger.Info("export complete",
		logging.String("output", run.outputPath),
		logging.Int(logging.FieldTotalFrames, totalFrames))
	return run.outputPath, nil
}

// renderFrames stages every frame as a PNG in strictly increasing order,
// evicting decoded video frames at each batch boundary.
func (run *exportRun) renderFrames(ctx context.Context, fps float64, totalFrames int) error {
	renderer := compose.NewRenderer(run.cache, nil, run.logger)
	batchSize := BatchSize(run.tl.Canvas.PixelCount())
	numBatches := (totalFrames + batchSize - 1) / batchSize

	run.logger.Info("rendering frames",
		logging.Int(logging.FieldTotalFrames, totalFrames),
		logging.Int("batch_size", batchSize),
		logging.Int("batches", numBatches))

	done := run.startBatch * batchSize
	if done > totalFrames {
		done = totalFrames
	}
	if done > 0 {
		run.rep.rendering(done, totalFrames)
	}

	for batch := run.startBatch; batch < numBatches; batch++ {
		if err := ctx.Err(); err != nil {
			return run.cancel(ctx, err)
		}
		first := batch * batchSize
		last := first + batchSize
		if last > totalFrames {
			last = totalFrames
		}
		for i := first; i < last; i++ {
			if err := ctx.Err(); err != nil {
				return run.cancel(ctx, err)
			}
			t := float64(i) / fps
			img, warnings, err := renderer.RenderFrame(ctx, run.tl, t)
			if err != nil {
				return run.fail(ctx, PhaseRendering, err)
			}
			for _, w := range warnings {
				run.recordWarning(ctx, "item:"+w.ItemID, w.String())
			}
			if err := writePNG(run.session.FramePath(i), img); err != nil {
				return run.fail(ctx, PhaseRendering, err)
			}
			run.rep.rendering(i+1, totalFrames)
			run.logProgress(PhaseRendering, i+1, totalFrames)
		}
		run.cache.Evict()
		if run.o.store != nil {
			if err := run.o.store.MarkBatch(ctx, run.jobID, batch); err != nil {
				run.logger.Warn("batch not recorded", logging.Error(err))
			}
		}
		run.recordProgress(ctx, PhaseRendering, run.rep.last, last, totalFrames)
	}
	return nil
}

// mixAudio computes the global mix once; frame order never affects it.
func (run *exportRun) mixAudio(ctx context.Context) (*audio.Result, error) {
	mixer := run.o.newMixer()
	result, err := mixer.Mix(ctx, audio.Clips(run.tl), run.tl.Duration)
	if err != nil {
		return nil, run.cancel(ctx, err)
	}
	for _, w := range result.Warnings {
		run.recordWarning(ctx, "audio:"+w.Source, w.String())
	}
	return result, nil
}

func (run *exportRun) encode(ctx context.Context, encSettings encode.Settings, totalFrames int, mix *audio.Result) error {
	run.rep.encoding(0, totalFrames)
	run.recordProgress(ctx, PhaseEncoding, run.rep.last, 0, totalFrames)

	job := encode.Job{
		FramePattern: run.session.FramePattern(),
		FrameCount:   totalFrames,
		Clips:        mix.Schedule,
		Duration:     run.tl.Duration,
		OutputPath:   run.outputPath,
	}
	err := run.o.runEncode(ctx, encSettings, job, func(frame, total int) {
		run.rep.encoding(frame, total)
		run.logProgress(PhaseEncoding, frame, total)
	})
	if err != nil {
		if ctx.Err() != nil {
			return run.cancel(ctx, ctx.Err())
		}
		// A failed encode may leave a partial container behind; a fatal
		// failure must never hand back a corrupt output file.
		_ = os.Remove(run.outputPath)
		return run.fail(ctx, PhaseEncoding, err)
	}
	return nil
}

// fail is the fatal path: staged artifacts are removed, the job row is marked
// failed, and the error phase is reported once.
func (run *exportRun) fail(ctx context.Context, phase Phase, err error) error {
	run.logger.Error("export failed",
		logging.String(logging.FieldPhase, string(phase)),
		logging.Error(err))
	if removeErr := run.session.Remove(); removeErr != nil {
		run.logger.Warn("staging cleanup failed", logging.Error(removeErr))
	}
	if run.o.store != nil {
		if storeErr := run.o.store.Finish(ctx, run.jobID, jobstore.StatusFailed, err.Error()); storeErr != nil {
			run.logger.Warn("job record not finalized", logging.Error(storeErr))
		}
	}
	run.rep.fail(err)
	return err
}

// cancel is the cooperative-stop path: cleanup runs, the job is recorded as
// canceled, and the context error propagates unchanged. Cancellation is a
// normal terminal state, so no error phase is reported.
func (run *exportRun) cancel(ctx context.Context, err error) error {
	run.logger.Info("export canceled")
	if removeErr := run.session.Remove(); removeErr != nil {
		run.logger.Warn("staging cleanup failed", logging.Error(removeErr))
	}
	if run.o.store != nil {
		// The context is already done; job bookkeeping gets its own deadline.
		storeCtx, cancelStore := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancelStore()
		if storeErr := run.o.store.Finish(storeCtx, run.jobID, jobstore.StatusCanceled, ""); storeErr != nil {
			run.logger.Warn("job record not finalized", logging.Error(storeErr))
		}
	}
	return err
}

// recordWarning persists one degraded-clip warning, once per key per run.
func (run *exportRun) recordWarning(ctx context.Context, key, message string) {
	if _, seen := run.seenWarnings[key]; seen {
		return
	}
	run.seenWarnings[key] = struct{}{}
	run.logger.Warn("export degraded", logging.String("warning", message))
	if run.o.store != nil {
		if err := run.o.store.AppendWarning(ctx, run.jobID, message); err != nil {
			run.logger.Warn("warning not recorded", logging.Error(err))
		}
	}
}

func (run *exportRun) recordProgress(ctx context.Context, phase Phase, percent float64, frame, total int) {
	if run.o.store == nil {
		return
	}
	if err := run.o.store.UpdateProgress(ctx, run.jobID, string(phase), percent, frame, total); err != nil {
		run.logger.Warn("progress not recorded", logging.Error(err))
	}
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("stage frame: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("stage frame %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("stage frame %s: %w", path, err)
	}
	return nil
}
