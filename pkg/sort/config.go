package sort

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	defaultMaxSampleAttempts = 1024
)

// Parameters of one sample sort. Fixed for the lifetime of a sort.
type Config struct {
	Threads    int
	SampleSize int

	// Base seed for the per-rank random sources. Rank r uses Seed+r+1.
	Seed int64

	// Maximum number of random draws spent on a single sample slot before
	// giving up with ErrSampleExhausted.
	MaxSampleAttempts int

	Logger *logrus.Logger
}

type Option func(*Config)

func DefaultConfig() *Config {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.WarnLevel)

	return &Config{
		Threads:           1,
		SampleSize:        1,
		MaxSampleAttempts: defaultMaxSampleAttempts,
		Logger:            logger,
	}
}

func NewConfig(opts ...Option) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func WithThreads(n int) Option {
	return func(c *Config) {
		c.Threads = n
	}
}

func WithSampleSize(n int) Option {
	return func(c *Config) {
		c.SampleSize = n
	}
}

func WithSeed(seed int64) Option {
	return func(c *Config) {
		c.Seed = seed
	}
}

func WithMaxSampleAttempts(n int) Option {
	return func(c *Config) {
		c.MaxSampleAttempts = n
	}
}

// WithLogger routes worker and coordinator logs to logger. A nil logger keeps
// the default (discard).
func WithLogger(logger *logrus.Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// Number of list elements owned by each rank
func (self *Config) ChunkSize(listSize int) int {
	return listSize / self.Threads
}

// Number of samples drawn by each rank
func (self *Config) LocalSampleSize() int {
	return self.SampleSize / self.Threads
}

// Check that a list of listSize keys can be sorted with this configuration.
func (self *Config) Validate(listSize int) error {
	if self.Threads <= 0 {
		return errors.Wrapf(ErrInvalidThreads, "Got %v threads", self.Threads)
	}
	if listSize <= 0 {
		return errors.Wrapf(ErrEmptyList, "Got list size %v", listSize)
	}
	if listSize%self.Threads != 0 {
		return errors.Wrapf(ErrIndivisibleList, "List size %v, %v threads", listSize, self.Threads)
	}
	if self.SampleSize <= 0 || self.SampleSize%self.Threads != 0 {
		return errors.Wrapf(ErrIndivisibleSample, "Sample size %v, %v threads", self.SampleSize, self.Threads)
	}
	if self.LocalSampleSize() > self.ChunkSize(listSize) {
		return errors.Wrapf(ErrSampleTooLarge, "%v samples from a chunk of %v",
			self.LocalSampleSize(), self.ChunkSize(listSize))
	}
	if self.MaxSampleAttempts <= 0 {
		return errors.Errorf("Invalid max sample attempts: %v", self.MaxSampleAttempts)
	}
	return nil
}
