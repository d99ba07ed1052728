package firlab

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-firlab/dsp/conv"
	"github.com/cwbudde/algo-firlab/dsp/core"
	"github.com/cwbudde/algo-firlab/dsp/filter/fir"
	"github.com/cwbudde/algo-firlab/dsp/signal"
	"github.com/cwbudde/algo-firlab/dsp/spectrogram"
	"github.com/cwbudde/algo-firlab/dsp/spectrum"
	"github.com/cwbudde/algo-firlab/stats/frequency"
	timestats "github.com/cwbudde/algo-firlab/stats/time"
)

// ErrSampleRateMismatch is returned when the filter spec names a sample rate
// different from the signal's.
var ErrSampleRateMismatch = errors.New("firlab: filter and signal sample rates differ")

// ErrInvalidProbe is returned for a requested probe frequency outside
// [0, sampleRate/2].
var ErrInvalidProbe = errors.New("firlab: probe frequency out of range")

// Request describes one pipeline run.
type Request struct {
	// Filter is the filter to design. A zero SampleRate takes the signal's.
	Filter fir.Spec
	// Analysis controls response resolution, spectrogram framing and the
	// display limit. Zero fields fall back to core.DefaultAnalysisConfig.
	Analysis core.AnalysisConfig
	// Probes are frequencies at which attenuation is measured, each within
	// [0, sampleRate/2]. When empty, probes are derived from the filter
	// kind and cutoffs.
	Probes []float64
}

// Pipeline runs requests. It holds no per-run state and is safe for
// concurrent use.
type Pipeline struct {
	logger      *zap.Logger
	concurrency int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithConcurrency bounds the number of analyses running at once. Values
// below one leave the analyses unbounded.
func WithConcurrency(n int) Option {
	return func(p *Pipeline) { p.concurrency = n }
}

// New returns a pipeline configured by opts.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Run is shorthand for New(opts...).Run(ctx, sig, req).
func Run(ctx context.Context, sig signal.Signal, req Request, opts ...Option) (*Report, error) {
	return New(opts...).Run(ctx, sig, req)
}

// Run designs the filter, applies it to sig and computes every diagnostic.
// Cancellation of ctx is honoured between stages.
func (p *Pipeline) Run(ctx context.Context, sig signal.Signal, req Request) (*Report, error) {
	if sig.Len() == 0 {
		return nil, signal.ErrEmptySignal
	}
	fs := sig.SampleRate()

	spec := req.Filter
	if spec.SampleRate == 0 {
		spec.SampleRate = fs
	} else if spec.SampleRate != fs {
		return nil, fmt.Errorf("%w: filter %g Hz, signal %g Hz", ErrSampleRateMismatch, spec.SampleRate, fs)
	}
	for _, hz := range req.Probes {
		if !(hz >= 0 && hz <= fs/2) {
			return nil, fmt.Errorf("%w: %g Hz (sample rate %g Hz)", ErrInvalidProbe, hz, fs)
		}
	}
	analysis := resolveAnalysis(req.Analysis)

	log := p.logger.With(
		zap.Stringer("kind", spec.Kind),
		zap.Float64("sample_rate", fs),
		zap.Int("samples", sig.Len()),
	)

	var design fir.Design
	if err := p.stage(ctx, log, "design", func() (err error) {
		design, err = fir.New(spec)
		return err
	}); err != nil {
		return nil, err
	}
	for _, adj := range design.Adjustments {
		log.Warn("filter adjusted",
			zap.String("detail", adj.String()),
			zap.Int("requested", adj.Requested),
			zap.Int("applied", adj.Applied),
		)
	}

	x := sig.Samples()
	var y []float64
	if err := p.stage(ctx, log, "apply", func() (err error) {
		y, err = conv.Apply(x, design.Coefficients)
		return err
	}); err != nil {
		return nil, err
	}
	filtered, err := sig.Derive(y)
	if err != nil {
		return nil, fmt.Errorf("firlab: %w", err)
	}

	report := &Report{
		SampleRate: fs,
		MaxFreq:    analysis.MaxFreq,
		Design:     design,
		Original:   sig,
		Filtered:   filtered,
	}

	g, gctx := errgroup.WithContext(ctx)
	if p.concurrency > 0 {
		g.SetLimit(p.concurrency)
	}

	specOpts := []spectrogram.Option{spectrogram.WithWindowLength(analysis.SpectrogramWindow)}
	if analysis.SpectrogramOverlap > 0 {
		specOpts = append(specOpts, spectrogram.WithOverlap(analysis.SpectrogramOverlap))
	}

	g.Go(func() error {
		return p.stage(gctx, log, "original spectrum", func() (err error) {
			report.OriginalSpectrum, err = spectrum.MagnitudeSpectrum(x, fs)
			return err
		})
	})
	g.Go(func() error {
		return p.stage(gctx, log, "filtered spectrum", func() (err error) {
			report.FilteredSpectrum, err = spectrum.MagnitudeSpectrum(y, fs)
			return err
		})
	})
	g.Go(func() error {
		return p.stage(gctx, log, "filter response", func() (err error) {
			report.Response, err = spectrum.FilterResponse(design.Coefficients, fs, analysis.Resolution)
			return err
		})
	})
	g.Go(func() error {
		return p.stage(gctx, log, "original spectrogram", func() (err error) {
			report.OriginalSpectrogram, err = spectrogram.Compute(x, fs, specOpts...)
			return err
		})
	})
	g.Go(func() error {
		return p.stage(gctx, log, "filtered spectrogram", func() (err error) {
			report.FilteredSpectrogram, err = spectrogram.Compute(y, fs, specOpts...)
			return err
		})
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := p.stage(ctx, log, "difference", func() (err error) {
		report.Difference, err = spectrum.DifferenceOf(report.OriginalSpectrum, report.FilteredSpectrum)
		return err
	}); err != nil {
		return nil, err
	}

	probes := req.Probes
	if len(probes) == 0 {
		probes = DefaultProbes(design.Spec)
	}
	if err := p.stage(ctx, log, "summary", func() (err error) {
		report.Summary, err = summarize(report, probes)
		return err
	}); err != nil {
		return nil, err
	}

	log.Info("analysis complete",
		zap.Int("taps", design.Taps()),
		zap.Float64("peak_hz", report.Summary.Original.PeakHz),
		zap.Float64("filtered_peak_hz", report.Summary.Filtered.PeakHz),
	)
	return report, nil
}

// stage runs fn unless ctx is done and logs how long it took.
func (p *Pipeline) stage(ctx context.Context, log *zap.Logger, name string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	if err := fn(); err != nil {
		return fmt.Errorf("firlab: %s: %w", name, err)
	}
	log.Debug("stage done", zap.String("stage", name), zap.Duration("elapsed", time.Since(start)))
	return nil
}

func resolveAnalysis(cfg core.AnalysisConfig) core.AnalysisConfig {
	return core.ApplyAnalysisOptions(
		core.WithResolution(cfg.Resolution),
		core.WithSpectrogramWindow(cfg.SpectrogramWindow),
		core.WithSpectrogramOverlap(cfg.SpectrogramOverlap),
		core.WithMaxFreq(cfg.MaxFreq),
	)
}

// DefaultProbes returns one passband, one edge and one stopband frequency
// for the filter. Frequencies above Nyquist are dropped.
func DefaultProbes(spec fir.Spec) []float64 {
	var probes []float64
	switch spec.Kind {
	case fir.KindLowpass:
		probes = []float64{spec.Cutoff / 2, spec.Cutoff, spec.Cutoff * 4}
	case fir.KindHighpass:
		probes = []float64{spec.Cutoff * 4, spec.Cutoff, spec.Cutoff / 4}
	case fir.KindBandpass:
		probes = []float64{
			math.Sqrt(spec.Cutoff * spec.CutoffHigh),
			spec.Cutoff,
			spec.CutoffHigh,
			spec.Cutoff / 4,
			spec.CutoffHigh * 4,
		}
	}

	nyquist := spec.SampleRate / 2
	out := probes[:0]
	for _, f := range probes {
		if f > 0 && f <= nyquist {
			out = append(out, f)
		}
	}
	return out
}

func summarize(r *Report, probes []float64) (Summary, error) {
	var (
		s   Summary
		err error
	)

	f, m := frequency.OneSided(r.OriginalSpectrum.Frequencies, r.OriginalSpectrum.Magnitude)
	if s.Original, err = frequency.Calculate(f, m); err != nil {
		return Summary{}, err
	}
	f, m = frequency.OneSided(r.FilteredSpectrum.Frequencies, r.FilteredSpectrum.Magnitude)
	if s.Filtered, err = frequency.Calculate(f, m); err != nil {
		return Summary{}, err
	}

	x := r.Original.Samples()
	y := r.Filtered.Samples()
	s.OriginalLevels = timestats.Calculate(x)
	s.FilteredLevels = timestats.Calculate(y)

	s.Probes = make([]Probe, 0, len(probes))
	for _, hz := range probes {
		orig, err := spectrum.ToneMagnitude(x, hz, r.SampleRate)
		if err != nil {
			return Summary{}, err
		}
		filt, err := spectrum.ToneMagnitude(y, hz, r.SampleRate)
		if err != nil {
			return Summary{}, err
		}
		s.Probes = append(s.Probes, Probe{
			FrequencyHz:   hz,
			OriginalDB:    core.AmplitudeToDB(orig),
			FilteredDB:    core.AmplitudeToDB(filt),
			AttenuationDB: core.AmplitudeToDB(orig) - core.AmplitudeToDB(filt),
			ResponseDB:    r.Design.MagnitudeDB(hz),
		})
	}
	return s, nil
}
