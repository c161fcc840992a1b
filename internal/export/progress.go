package export

import "time"

// Phase names the pipeline stage a progress update belongs to.
type Phase string

const (
	PhasePreparing  Phase = "preparing"
	PhaseRendering  Phase = "rendering"
	PhaseEncoding   Phase = "encoding"
	PhaseFinalizing Phase = "finalizing"
	PhaseComplete   Phase = "complete"
	PhaseError      Phase = "error"
)

// Progress is one callback update during an export.
type Progress struct {
	Phase        Phase
	Percent      float64
	CurrentFrame int
	TotalFrames  int
	ETA          time.Duration
	Err          error
}

// Percent bands per phase. Rendering owns [5,75], encoding [75,95].
const (
	percentPreparingDone = 5.0
	percentRenderingSpan = 70.0
	percentEncodingDone  = 95.0
	percentEncodingSpan  = 20.0
)

// reporter delivers monotonically non-decreasing progress to the callback.
// Phase transitions are driven by the orchestrator's sequential control flow,
// so a phase can never be revisited; the reporter only has to clamp percent
// regressions within a phase.
type reporter struct {
	onProgress func(Progress)
	phase      Phase
	last       float64

	renderStart time.Time
}

func newReporter(onProgress func(Progress)) *reporter {
	return &reporter{onProgress: onProgress}
}

func (r *reporter) report(p Progress) {
	if r.onProgress == nil {
		return
	}
	if p.Phase == r.phase && p.Percent < r.last {
		p.Percent = r.last
	}
	r.phase = p.Phase
	r.last = p.Percent
	r.onProgress(p)
}

// fail reports the error phase at the last observed percent.
func (r *reporter) fail(err error) {
	r.report(Progress{Phase: PhaseError, Percent: r.last, Err: err})
}

// rendering reports frame progress inside the [5,75] band, deriving an ETA
// from the observed rendering rate.
func (r *reporter) rendering(done, total int) {
	if r.renderStart.IsZero() {
		r.renderStart = time.Now()
	}
	percent := percentPreparingDone
	var eta time.Duration
	if total > 0 {
		percent += percentRenderingSpan * float64(done) / float64(total)
		if done > 0 && done < total {
			elapsed := time.Since(r.renderStart)
			eta = time.Duration(float64(elapsed) / float64(done) * float64(total-done))
		}
	}
	r.report(Progress{
		Phase:        PhaseRendering,
		Percent:      percent,
		CurrentFrame: done,
		TotalFrames:  total,
		ETA:          eta,
	})
}

// encoding reports encoder frame progress inside the [75,95] band.
func (r *reporter) encoding(done, total int) {
	percent := percentPreparingDone + percentRenderingSpan
	if total > 0 {
		percent += percentEncodingSpan * float64(done) / float64(total)
	}
	if percent > percentEncodingDone {
		percent = percentEncodingDone
	}
	r.report(Progress{
		Phase:        PhaseEncoding,
		Percent:      percent,
		CurrentFrame: done,
		TotalFrames:  total,
	})
}
