// Package service implements the live meetup registry and the per-session
// lifecycle state machine. All session state is guarded by one service-wide
// mutex: timer fires, button presses and creation requests serialize through
// it, so admission checks always observe already-applied mutations even
// while sends are still in flight.
package service

import (
	"context"
	"log"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/frostbyte-gg/meetup/internal/chat"
	"github.com/frostbyte-gg/meetup/internal/meetup/domain"
	"github.com/frostbyte-gg/meetup/internal/meetup/interaction"
	"github.com/frostbyte-gg/meetup/internal/meetup/render"
	"github.com/frostbyte-gg/meetup/internal/meetup/schedule"
)

// Config holds session policy knobs.
type Config struct {
	// MaxSessionAge, when positive, forces the Over transition that long
	// after the start instant even if the voice space never drains.
	MaxSessionAge time.Duration
}

// Service owns the live session collection. Sessions are added only by
// CreateMeetup and removed only by their own terminal transition.
type Service struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	nextID   int64

	port      chat.Port
	scheduler *schedule.Scheduler
	buttons   *interaction.Registry
	renderer  *render.Renderer
	clock     func() time.Time
	cfg       Config
	tracer    trace.Tracer
}

// New creates a service. A nil clock defaults to time.Now.
func New(port chat.Port, scheduler *schedule.Scheduler, buttons *interaction.Registry, renderer *render.Renderer, clock func() time.Time, cfg Config) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{
		sessions:  make(map[int64]*Session),
		port:      port,
		scheduler: scheduler,
		buttons:   buttons,
		renderer:  renderer,
		clock:     clock,
		cfg:       cfg,
		tracer:    otel.Tracer("meetup/service"),
	}
}

// CreateInput describes one session-creation request from the command layer.
type CreateInput struct {
	Owner      domain.User
	Topic      string
	StartClock string
	Capacity   int
	// ChannelID is the channel the request came from; the general
	// announcement is posted there.
	ChannelID string
}

// CreateMeetup validates the request, constructs the session, registers its
// buttons, dispatches the initial renders and schedules its timers. The
// session is fully initialized before CreateMeetup returns.
func (s *Service) CreateMeetup(ctx context.Context, in CreateInput) (*Session, error) {
	ctx, span := s.tracer.Start(ctx, "CreateMeetup")
	defer span.End()

	now := s.clock()
	info, err := domain.NormalizeCreateInput(domain.CreateInput{
		Owner:      in.Owner,
		Topic:      in.Topic,
		StartClock: in.StartClock,
		Capacity:   in.Capacity,
	}, now)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	sess := &Session{
		svc:          s,
		id:           s.nextID,
		info:         info,
		channelID:    in.ChannelID,
		phase:        domain.PhaseScheduled,
		participants: []domain.User{info.Owner},
		slots:        make(map[domain.Slot]chat.MessageHandle),
		userCancels:  make(map[string]chat.Button),
		maybeCancels: make(map[string]chat.Button),
	}

	if err := sess.registerButtons(); err != nil {
		s.buttons.RemoveAll(sess.tokens)
		return nil, err
	}

	s.sessions[sess.id] = sess
	span.SetAttributes(
		attribute.Int64("meetup.id", sess.id),
		attribute.String("meetup.topic", info.Topic),
	)

	sess.sendInitialMessages(ctx)
	sess.scheduleLifecycle(ctx, now)

	log.Printf("meetup %d created for %s %s", sess.id, info.Topic, domain.FormatClockTime(info.StartsAt))
	return sess, nil
}

// Find returns the live session with the given id.
func (s *Service) Find(id int64) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// List returns the live sessions in unspecified order.
func (s *Service) List() []*Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess)
	}
	return out
}

// withSession runs fn against a live, non-terminal session under the service
// lock. Late timer fires and stale presses land here after removal and fall
// through without effect.
func (s *Service) withSession(id int64, fn func(*Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok || sess.phase.Terminal() {
		return
	}
	fn(sess)
}

// remove drops the session from the live collection. Called exactly once,
// by the session's own terminal transition, with the lock held.
func (s *Service) remove(id int64) {
	delete(s.sessions, id)
}
