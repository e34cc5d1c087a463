package usecase

import (
	"time"

	"github.com/itsyanis/1Day1Quote/internal/domain"
	"github.com/itsyanis/1Day1Quote/internal/validate"
)

type Settings struct {
	Fields validate.Fields
	// SourceTimeout bounds every single call to a quote or author source.
	SourceTimeout time.Duration
	// LowWaterMark triggers a preload when fewer quotes remain after FetchQuote.
	LowWaterMark int
	// TargetSize is the cache size at which Preload does nothing.
	TargetSize int
	BatchSize  int
	// StoreFetched remembers every shown quote so no later preload queues it again.
	StoreFetched  bool
	PortraitWidth int
}

func DefaultSettings() Settings {
	return Settings{
		Fields:        validate.DefaultFields,
		SourceTimeout: 5 * time.Second,
		LowWaterMark:  3,
		TargetSize:    3,
		BatchSize:     3,
		PortraitWidth: domain.PortraitWidth,
	}
}

func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.Fields.Text == "" {
		s.Fields.Text = d.Fields.Text
	}
	if s.Fields.Author == "" {
		s.Fields.Author = d.Fields.Author
	}
	if s.SourceTimeout <= 0 {
		s.SourceTimeout = d.SourceTimeout
	}
	if s.BatchSize <= 0 {
		s.BatchSize = d.BatchSize
	}
	if s.PortraitWidth <= 0 {
		s.PortraitWidth = d.PortraitWidth
	}
	if s.LowWaterMark < 0 {
		s.LowWaterMark = 0
	}
	if s.TargetSize < 0 {
		s.TargetSize = 0
	}
	return s
}
