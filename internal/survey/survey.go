package survey

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/debresearch/licensetrend/internal/archive"
	"github.com/debresearch/licensetrend/internal/config"
	"github.com/debresearch/licensetrend/internal/model"
)

// PackageLister provides the package universe.
// *archive.Client implements it; tests substitute a fixed list.
type PackageLister interface {
	PackageList(ctx context.Context) ([]string, error)
}

// Detector classifies one package in one channel.
// *archive.Detector implements it.
type Detector interface {
	Detect(ctx context.Context, channel model.Channel, name string) (model.Detection, error)
}

// Surveyor runs the full survey: sample the package universe once, then
// walk the same sample through every release channel sequentially,
// tallying license tokens per channel.
//
// There is deliberately no concurrency here. The bottleneck is the
// paced fetch rate, and a sequential walk keeps the cache access
// pattern and the log output trivially ordered.
type Surveyor struct {
	lister   PackageLister
	detector Detector
	logger   *slog.Logger

	// maxPackages caps the sample size.
	maxPackages int

	// seed fixes the sample shuffle; see config.DefaultSampleSeed.
	seed int64

	// channels are surveyed oldest first.
	channels []model.Channel
}

// Option configures a Surveyor.
type Option func(*Surveyor)

// WithMaxPackages caps the sample size.
func WithMaxPackages(n int) Option {
	return func(s *Surveyor) {
		s.maxPackages = n
	}
}

// WithSeed overrides the sample shuffle seed.
func WithSeed(seed int64) Option {
	return func(s *Surveyor) {
		s.seed = seed
	}
}

// WithChannels overrides the surveyed channels, oldest first.
func WithChannels(channels []model.Channel) Option {
	return func(s *Surveyor) {
		s.channels = channels
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Surveyor) {
		s.logger = logger
	}
}

// NewSurveyor creates a Surveyor with the given collaborators.
func NewSurveyor(lister PackageLister, detector Detector, opts ...Option) *Surveyor {
	s := &Surveyor{
		lister:      lister,
		detector:    detector,
		logger:      slog.Default(),
		maxPackages: config.DefaultMaxPackages,
		seed:        config.DefaultSampleSeed,
		channels:    model.DefaultChannels(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes the survey and returns the completed summary.
//
// Per-package failures are contained: a package missing from a channel
// is skipped silently, and any other detection failure is logged and
// skipped. Only context cancellation and a failure to obtain the
// package universe abort the run.
func (s *Surveyor) Run(ctx context.Context) (*model.Summary, error) {
	names, err := s.lister.PackageList(ctx)
	if err != nil {
		return nil, err
	}

	sample := SamplePackages(names, s.maxPackages, s.seed)
	s.logger.Info("sampled package universe",
		"universe", len(names),
		"sample", len(sample),
	)

	summary := model.NewSummary(s.channels)
	summary.SampleSize = len(sample)

	for _, channel := range s.channels {
		counter := summary.Counter(channel)
		for _, name := range sample {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			det, err := s.detector.Detect(ctx, channel, name)
			switch {
			case errors.Is(err, archive.ErrPackageNotFound):
				// A package legitimately may exist in only some channels.
				continue
			case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
				return nil, err
			case err != nil:
				s.logger.Error("detection failed",
					"package", name,
					"channel", channel.String(),
					"error", err,
				)
				continue
			}
			counter.Update(det.Licenses)
		}
		s.logger.Info("channel surveyed",
			"channel", channel.String(),
			"classified", counter.Total(),
		)
	}

	summary.GeneratedAt = time.Now()
	return summary, nil
}

// SamplePackages extracts a random but predictable subset of the package
// universe: the same seed and the same input always produce the same
// sample, in the same order, which keeps results comparable across runs
// and across channels.
func SamplePackages(names []string, max int, seed int64) []string {
	sample := append([]string(nil), names...)
	r := rand.New(rand.NewSource(seed)) //nolint:gosec // Deterministic sampling is the point
	r.Shuffle(len(sample), func(i, j int) {
		sample[i], sample[j] = sample[j], sample[i]
	})
	if max > 0 && max < len(sample) {
		sample = sample[:max]
	}
	return sample
}
