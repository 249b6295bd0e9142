package command

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/frostbyte-gg/meetup/internal/chat"
	"github.com/frostbyte-gg/meetup/internal/chat/chatfakes"
	"github.com/frostbyte-gg/meetup/internal/meetup/domain"
	"github.com/frostbyte-gg/meetup/internal/meetup/interaction"
	"github.com/frostbyte-gg/meetup/internal/meetup/render"
	"github.com/frostbyte-gg/meetup/internal/meetup/schedule"
	"github.com/frostbyte-gg/meetup/internal/meetup/service"
)

var requester = domain.User{ID: "u1", Name: "frost"}

func newDispatcher(t *testing.T) (*Dispatcher, *chatfakes.Fake, *service.Service) {
	t.Helper()
	port := chatfakes.New()
	sched := schedule.New()
	t.Cleanup(sched.Stop)
	clock := func() time.Time { return time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC) }
	svc := service.New(port, sched, interaction.NewRegistry(), render.New(render.Printer("en")), clock, service.Config{})

	d := NewDispatcher("!", port)
	d.Register(GameMeet(svc))
	return d, port, svc
}

func lastReply(t *testing.T, port *chatfakes.Fake) string {
	t.Helper()
	sends := port.Sends()
	if len(sends) == 0 {
		t.Fatal("expected a reply")
	}
	return sends[len(sends)-1].Msg.Content
}

func TestHandleMessageIgnoresUnprefixed(t *testing.T) {
	d, port, _ := newDispatcher(t)

	if d.HandleMessage(context.Background(), requester, "lobby", "hello there") {
		t.Fatal("expected plain chatter to be ignored")
	}
	if len(port.Sends()) != 0 {
		t.Fatal("expected no reply to plain chatter")
	}
}

func TestHandleMessageIgnoresBarePrefix(t *testing.T) {
	d, _, _ := newDispatcher(t)

	if d.HandleMessage(context.Background(), requester, "lobby", "!   ") {
		t.Fatal("expected bare prefix to be ignored")
	}
}

func TestUnknownCommandGetsHint(t *testing.T) {
	d, port, _ := newDispatcher(t)

	if !d.HandleMessage(context.Background(), requester, "lobby", "!frobnicate") {
		t.Fatal("expected prefixed message to be handled")
	}
	if reply := lastReply(t, port); !strings.Contains(reply, "!help") {
		t.Fatalf("expected help hint, got %q", reply)
	}
}

func TestHelpListsCommands(t *testing.T) {
	d, port, _ := newDispatcher(t)

	d.HandleMessage(context.Background(), requester, "lobby", "!help")

	reply := lastReply(t, port)
	if !strings.Contains(reply, "!gamemeet <topic> <HH:MM> [capacity]") {
		t.Fatalf("expected gamemeet usage in %q", reply)
	}
}

func TestHelpForSingleCommand(t *testing.T) {
	d, port, _ := newDispatcher(t)

	d.HandleMessage(context.Background(), requester, "lobby", "!help gamemeet")

	reply := lastReply(t, port)
	if !strings.Contains(reply, "schedule a game meetup") {
		t.Fatalf("expected command help in %q", reply)
	}
}

func TestGameMeetCreatesSession(t *testing.T) {
	d, port, svc := newDispatcher(t)

	d.HandleMessage(context.Background(), requester, "lobby", "!gamemeet Board Games 18:00 4")

	sessions := svc.List()
	if len(sessions) != 1 {
		t.Fatalf("expected one session, got %d", len(sessions))
	}
	info := sessions[0].Info()
	if info.Topic != "board-games" {
		t.Fatalf("unexpected topic %q", info.Topic)
	}
	if info.Capacity != 4 {
		t.Fatalf("unexpected capacity %d", info.Capacity)
	}
	if info.Owner != requester {
		t.Fatalf("unexpected owner %+v", info.Owner)
	}

	// The announcement lands in the requesting channel; no extra reply.
	for _, s := range port.Sends() {
		if s.To == chat.Channel("lobby") && s.Msg.Title == "" {
			t.Fatalf("unexpected bare reply %q", s.Msg.Content)
		}
	}
}

func TestGameMeetOmittedCapacityIsUnbounded(t *testing.T) {
	d, _, svc := newDispatcher(t)

	d.HandleMessage(context.Background(), requester, "lobby", "!gamemeet catan 18:00")

	sessions := svc.List()
	if len(sessions) != 1 {
		t.Fatalf("expected one session, got %d", len(sessions))
	}
	if got := sessions[0].Info().Capacity; got != domain.Unbounded {
		t.Fatalf("expected unbounded capacity, got %d", got)
	}
}

func TestGameMeetRejectsExplicitZeroCapacity(t *testing.T) {
	d, port, svc := newDispatcher(t)

	d.HandleMessage(context.Background(), requester, "lobby", "!gamemeet catan 18:00 0")

	if len(svc.List()) != 0 {
		t.Fatal("expected no session for zero capacity")
	}
	reply := lastReply(t, port)
	if !strings.Contains(reply, domain.ErrNonPositiveCapacity.Error()) {
		t.Fatalf("expected capacity error in %q", reply)
	}
	if !strings.Contains(reply, "usage: !gamemeet") {
		t.Fatalf("expected usage in %q", reply)
	}
}

func TestGameMeetReportsBadTime(t *testing.T) {
	d, port, svc := newDispatcher(t)

	d.HandleMessage(context.Background(), requester, "lobby", "!gamemeet catan 9:5")

	if len(svc.List()) != 0 {
		t.Fatal("expected no session for bad time")
	}
	if reply := lastReply(t, port); !strings.Contains(reply, domain.ErrBadClockTime.Error()) {
		t.Fatalf("expected time error in %q", reply)
	}
}

func TestGameMeetMissingArgs(t *testing.T) {
	d, port, _ := newDispatcher(t)

	d.HandleMessage(context.Background(), requester, "lobby", "!gamemeet catan")

	if reply := lastReply(t, port); !strings.Contains(reply, "usage: !gamemeet") {
		t.Fatalf("expected usage in %q", reply)
	}
}

func TestInternalErrorGetsGenericReply(t *testing.T) {
	d, port, _ := newDispatcher(t)
	d.Register(Command{
		Name:  "boom",
		Usage: "boom",
		Run: func(ctx context.Context, req Request) (string, error) {
			return "", errors.New("backend unavailable")
		},
	})

	d.HandleMessage(context.Background(), requester, "lobby", "!boom")

	reply := lastReply(t, port)
	if strings.Contains(reply, "backend unavailable") {
		t.Fatalf("expected internal detail hidden, got %q", reply)
	}
	if !strings.Contains(reply, "something went wrong") {
		t.Fatalf("expected generic reply, got %q", reply)
	}
}
