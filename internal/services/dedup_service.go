// Package services – DedupService
//
// This file implements DedupService, the decision engine at the core of the
// backend. Each inbound group message runs one terminal processing cycle:
// filter, normalize + fingerprint, windowed lookup, duplicate-or-novel
// decision, then a retention sweep. The service owns the injected GORM
// handle and the civil clock; transports stay thin.
//
// Observability: Process is OpenTelemetry-instrumented; spans carry the
// chat identifier and the final outcome, and Prometheus counters track
// outcomes and eviction volume.
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tbourn/go-dedup-backend/internal/dedup"
	"github.com/tbourn/go-dedup-backend/internal/domain"
	"github.com/tbourn/go-dedup-backend/internal/repo"
	"github.com/tbourn/go-dedup-backend/internal/timeutil"

	// OpenTelemetry
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Outcome statuses for a processed message.
const (
	OutcomeSkipped   = "skipped"
	OutcomeNovel     = "novel"
	OutcomeDuplicate = "duplicate"
)

// Default engine parameters; all overridable via config.
const (
	DefaultWindow       = 24 * time.Hour
	DefaultRetention    = 7 * 24 * time.Hour
	DefaultMinTextRunes = 5 // short on purpose: phone numbers must still dedup
)

// InboundMessage is one group-chat text message handed in by a transport.
type InboundMessage struct {
	ChatID     int64
	AuthorID   int64
	AuthorName string // best effort; falls back to the stringified AuthorID
	Text       string
}

// Outcome is the terminal result of one processing cycle.
//
// Notice is populated only for duplicates: it is the reply text the
// transport should post back into the originating chat. Novel and skipped
// outcomes produce no reply.
type Outcome struct {
	Status string                `json:"outcome"`
	Notice string                `json:"notice,omitempty"`
	Record *domain.MessageRecord `json:"-"`
}

// DedupService coordinates lookup, decision, persistence, and eviction.
type DedupService struct {
	DB    *gorm.DB
	Clock *timeutil.Clock

	// Window is the dedup lookback: a stored fingerprint suppresses
	// reposts while younger than this.
	Window time.Duration
	// Retention is the age at which records are purged outright.
	Retention time.Duration
	// MinTextRunes is the filter threshold; shorter messages are
	// discarded without touching the store.
	MinTextRunes int
}

// NewDedupService constructs a DedupService with the default window,
// retention, and filter threshold.
func NewDedupService(db *gorm.DB, clock *timeutil.Clock) *DedupService {
	return &DedupService{
		DB:           db,
		Clock:        clock,
		Window:       DefaultWindow,
		Retention:    DefaultRetention,
		MinTextRunes: DefaultMinTextRunes,
	}
}

// Process runs one full dedup cycle for msg.
//
// A duplicate hit leaves the stored record untouched: only a genuinely
// novel message (first sighting, or a repost after the window expired)
// writes to the store. The retention sweep runs on every cycle that
// reached the store; a sweep failure is logged and counted but never
// fails the message.
func (s *DedupService) Process(ctx context.Context, msg InboundMessage) (*Outcome, error) {
	tr := otel.Tracer("services/DedupService")
	ctx, span := tr.Start(ctx, "Process",
		trace.WithAttributes(attribute.Int64("chat.id", msg.ChatID)),
	)
	defer span.End()

	if msg.ChatID == 0 {
		return nil, ErrInvalidChat
	}

	// Filter: short messages never reach the store.
	if utf8.RuneCountInString(strings.TrimSpace(msg.Text)) < s.MinTextRunes {
		dedupOutcomes.WithLabelValues(OutcomeSkipped).Inc()
		span.SetAttributes(attribute.String("dedup.outcome", OutcomeSkipped))
		return &Outcome{Status: OutcomeSkipped}, nil
	}

	fingerprint := dedup.FingerprintText(msg.Text)
	now := s.Clock.Now()
	windowStart := s.Clock.FormatStorage(now.Add(-s.Window))

	out, err := s.decide(ctx, msg, fingerprint, now, windowStart)
	if err != nil {
		dedupOutcomes.WithLabelValues("error").Inc()
		return nil, err
	}

	s.sweep(ctx)

	dedupOutcomes.WithLabelValues(out.Status).Inc()
	span.SetAttributes(attribute.String("dedup.outcome", out.Status))
	return out, nil
}

// decide performs the windowed lookup and either formats the duplicate
// notice or records the message as novel.
func (s *DedupService) decide(ctx context.Context, msg InboundMessage, fingerprint string, now time.Time, windowStart string) (*Outcome, error) {
	existing, err := repo.FindLiveRecord(ctx, s.DB, msg.ChatID, fingerprint, windowStart)
	switch {
	case err == nil:
		notice, nerr := s.formatNotice(existing, msg, now)
		if nerr != nil {
			return nil, fmt.Errorf("%w: format notice: %v", ErrStore, nerr)
		}
		return &Outcome{Status: OutcomeDuplicate, Notice: notice, Record: existing}, nil

	case errors.Is(err, repo.ErrNotFound):
		rec := &domain.MessageRecord{
			ChatID:       msg.ChatID,
			Fingerprint:  fingerprint,
			OriginalText: msg.Text,
			AuthorID:     msg.AuthorID,
			AuthorName:   s.displayName(msg),
			RecordedAt:   s.Clock.FormatStorage(now),
		}
		if uerr := repo.UpsertRecord(ctx, s.DB, rec); uerr != nil {
			return nil, fmt.Errorf("%w: upsert: %v", ErrStore, uerr)
		}
		return &Outcome{Status: OutcomeNovel, Record: rec}, nil

	default:
		return nil, fmt.Errorf("%w: lookup: %v", ErrStore, err)
	}
}

// Sweep evicts records older than the retention horizon, across all chats,
// and returns the number of rows removed. Exposed for the on-demand
// maintenance endpoint; Process calls it on every cycle.
func (s *DedupService) Sweep(ctx context.Context) (int64, error) {
	horizon := s.Clock.FormatStorage(s.Clock.Now().Add(-s.Retention))
	deleted, err := repo.EvictRecordsBefore(ctx, s.DB, horizon)
	if err != nil {
		dedupSweepFailures.Inc()
		return 0, fmt.Errorf("%w: evict: %v", ErrStore, err)
	}
	if deleted > 0 {
		dedupEvicted.Add(float64(deleted))
		log.Debug().Int64("deleted", deleted).Str("horizon", horizon).Msg("retention sweep")
	}
	return deleted, nil
}

// sweep is the per-message best-effort variant: failures are logged and
// counted, never surfaced to the message being processed.
func (s *DedupService) sweep(ctx context.Context) {
	if _, err := s.Sweep(ctx); err != nil {
		log.Error().Err(err).Msg("retention sweep failed")
	}
}

// formatNotice renders the duplicate reply: the stored original plus both
// sightings in civil display time.
func (s *DedupService) formatNotice(orig *domain.MessageRecord, msg InboundMessage, now time.Time) (string, error) {
	firstSeen, err := s.Clock.ParseStored(orig.RecordedAt)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"Duplicate message detected\nOriginal: %s\n%s : %s (first seen)\n%s : %s (this time)",
		orig.OriginalText,
		orig.AuthorName, s.Clock.FormatDisplay(firstSeen),
		s.displayName(msg), s.Clock.FormatDisplay(now),
	), nil
}

// displayName falls back to the stringified author ID when the source
// supplied no name.
func (s *DedupService) displayName(msg InboundMessage) string {
	if name := strings.TrimSpace(msg.AuthorName); name != "" {
		return name
	}
	return strconv.FormatInt(msg.AuthorID, 10)
}
