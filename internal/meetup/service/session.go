package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/frostbyte-gg/meetup/internal/chat"
	"github.com/frostbyte-gg/meetup/internal/meetup/domain"
	"github.com/frostbyte-gg/meetup/internal/meetup/interaction"
	"github.com/frostbyte-gg/meetup/internal/meetup/render"
	"github.com/frostbyte-gg/meetup/internal/meetup/schedule"
	"github.com/frostbyte-gg/meetup/internal/platform/timeouts"
)

// Session is one live meetup. All fields are guarded by the owning service's
// mutex; every method below assumes it is held.
type Session struct {
	svc       *Service
	id        int64
	info      domain.Info
	channelID string
	phase     domain.Phase

	// participants holds confirmed attendees in join order; the owner is
	// always the first entry and cannot leave. maybes holds undecided users
	// in join order. The two sets are mutually exclusive.
	participants []domain.User
	maybes       []domain.User

	// slots maps message positions to delivered handles. A missing entry
	// means the message was never sent or has been withdrawn.
	slots map[domain.Slot]chat.MessageHandle

	workspace   chat.Workspace
	provisioned bool

	timers []schedule.Handle
	tokens []string

	joinBtn        chat.Button
	maybeBtn       chat.Button
	cancelBtn      chat.Button
	maybeCancelBtn chat.Button
	ownerBtn       chat.Button
	// userCancels and maybeCancels hold per-user cancel buttons, issued
	// lazily the first time a user's direct message needs one.
	userCancels  map[string]chat.Button
	maybeCancels map[string]chat.Button
}

// ID returns the session identifier.
func (sess *Session) ID() int64 { return sess.id }

// Info returns the immutable creation metadata.
func (sess *Session) Info() domain.Info { return sess.info }

// Phase returns the current lifecycle phase.
func (sess *Session) Phase() domain.Phase {
	sess.svc.mu.Lock()
	defer sess.svc.mu.Unlock()
	return sess.phase
}

// Participants returns a copy of the confirmed attendees in join order.
func (sess *Session) Participants() []domain.User {
	sess.svc.mu.Lock()
	defer sess.svc.mu.Unlock()
	return append([]domain.User(nil), sess.participants...)
}

// Maybes returns a copy of the undecided attendees in join order.
func (sess *Session) Maybes() []domain.User {
	sess.svc.mu.Lock()
	defer sess.svc.mu.Unlock()
	return append([]domain.User(nil), sess.maybes...)
}

// Workspace returns the provisioned workspace, zero until provisioning ran.
func (sess *Session) Workspace() chat.Workspace {
	sess.svc.mu.Lock()
	defer sess.svc.mu.Unlock()
	return sess.workspace
}

// register binds a button action routed back through the service lock, and
// tracks the token for removal at the terminal transition.
func (sess *Session) register(label string, style chat.ButtonStyle, fn func(*Session, context.Context, interaction.Press)) (chat.Button, error) {
	id := sess.id
	svc := sess.svc
	btn, err := svc.buttons.Register(label, style, func(p interaction.Press) {
		svc.withSession(id, func(s *Session) { fn(s, context.Background(), p) })
	})
	if err != nil {
		return chat.Button{}, err
	}
	sess.tokens = append(sess.tokens, btn.Token)
	return btn, nil
}

func (sess *Session) registerButtons() error {
	var err error
	if sess.joinBtn, err = sess.register("Join", chat.StyleSuccess, func(s *Session, ctx context.Context, p interaction.Press) {
		s.addParticipant(ctx, p.User)
	}); err != nil {
		return err
	}
	if sess.maybeBtn, err = sess.register("Maybe", chat.StyleSecondary, func(s *Session, ctx context.Context, p interaction.Press) {
		s.addMaybeParticipant(ctx, p.User)
	}); err != nil {
		return err
	}
	if sess.cancelBtn, err = sess.register("Cancel", chat.StyleDanger, func(s *Session, ctx context.Context, p interaction.Press) {
		s.withdrawParticipant(ctx, p.User)
	}); err != nil {
		return err
	}
	if sess.maybeCancelBtn, err = sess.register("Cancel", chat.StyleDanger, func(s *Session, ctx context.Context, p interaction.Press) {
		s.withdrawMaybeParticipant(ctx, p.User)
	}); err != nil {
		return err
	}
	// Owner-only: presses from anyone else are dropped.
	if sess.ownerBtn, err = sess.register("Cancel", chat.StyleDanger, func(s *Session, ctx context.Context, p interaction.Press) {
		if p.User.ID != s.info.Owner.ID {
			return
		}
		s.cancel(ctx)
	}); err != nil {
		return err
	}
	return nil
}

// participantCancel returns the per-user cancel button for a confirmed
// participant's direct message, registering it on first use.
func (sess *Session) participantCancel(u domain.User) chat.Button {
	if btn, ok := sess.userCancels[u.ID]; ok {
		return btn
	}
	target := u
	btn, err := sess.register("Cancel", chat.StyleDanger, func(s *Session, ctx context.Context, _ interaction.Press) {
		s.withdrawParticipant(ctx, target)
	})
	if err != nil {
		log.Printf("meetup %d: register cancel for %s: %v", sess.id, u.ID, err)
		return sess.cancelBtn
	}
	sess.userCancels[u.ID] = btn
	return btn
}

// maybeCancel is the maybe-set counterpart of participantCancel.
func (sess *Session) maybeCancel(u domain.User) chat.Button {
	if btn, ok := sess.maybeCancels[u.ID]; ok {
		return btn
	}
	target := u
	btn, err := sess.register("Cancel", chat.StyleDanger, func(s *Session, ctx context.Context, _ interaction.Press) {
		s.withdrawMaybeParticipant(ctx, target)
	})
	if err != nil {
		log.Printf("meetup %d: register maybe cancel for %s: %v", sess.id, u.ID, err)
		return sess.maybeCancelBtn
	}
	sess.maybeCancels[u.ID] = btn
	return btn
}

// confirm is the join action relabeled for maybe direct messages.
func (sess *Session) confirm() chat.Button {
	btn := sess.joinBtn
	btn.Label = "Confirm"
	return btn
}

func (sess *Session) renderState() render.State {
	return render.State{
		ID:             sess.id,
		Topic:          sess.info.Topic,
		Owner:          sess.info.Owner.Name,
		StartsAt:       sess.info.StartsAt,
		Capacity:       sess.info.Capacity,
		Participants:   sess.participants,
		Maybes:         sess.maybes,
		VoiceID:        sess.workspace.VoiceID,
		GeneralButtons: []chat.Button{sess.joinBtn, sess.maybeBtn},
		OwnerButtons:   []chat.Button{sess.ownerBtn},
	}
}

func (sess *Session) full() bool {
	return sess.info.Capacity != domain.Unbounded && len(sess.participants) >= sess.info.Capacity
}

func indexOf(users []domain.User, id string) int {
	for i, u := range users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func removeAt(users []domain.User, i int) []domain.User {
	return append(users[:i], users[i+1:]...)
}

// sendInitialMessages posts the general announcement and the owner's direct
// message. Send failures leave the slot empty and are logged; the session
// stays live.
func (sess *Session) sendInitialMessages(ctx context.Context) {
	state := sess.renderState()
	svc := sess.svc

	if h, err := svc.port.SendMessage(ctx, chat.Channel(sess.channelID), svc.renderer.General(state)); err != nil {
		log.Printf("meetup %d: send general message: %v", sess.id, err)
	} else {
		sess.slots[domain.SlotGeneral] = h
	}

	if h, err := svc.port.SendMessage(ctx, chat.User(sess.info.Owner.ID), svc.renderer.Owner(state)); err != nil {
		log.Printf("meetup %d: send owner message: %v", sess.id, err)
	} else {
		sess.slots[domain.SlotOwner] = h
	}
}

// fire adapts a session method to a scheduler callback. The session is
// re-resolved through the live map at fire time, so callbacks racing a
// terminal transition fall through harmlessly.
func (sess *Session) fire(fn func(*Session, context.Context)) func() {
	id := sess.id
	svc := sess.svc
	return func() {
		svc.withSession(id, func(s *Session) { fn(s, context.Background()) })
	}
}

// scheduleLifecycle arms the timer chain relative to now. Already-elapsed
// leads degrade per step: the reminder is skipped, provisioning runs
// synchronously, the start fires immediately.
func (sess *Session) scheduleLifecycle(ctx context.Context, now time.Time) {
	svc := sess.svc
	start := sess.info.StartsAt

	if d := start.Add(-timeouts.ReminderLead).Sub(now); d > 0 {
		sess.timers = append(sess.timers, svc.scheduler.After(d, sess.fire((*Session).reminder)))
	}

	if d := start.Add(-timeouts.ProvisionLead).Sub(now); d > 0 {
		sess.timers = append(sess.timers, svc.scheduler.After(d, sess.fire((*Session).provision)))
	} else {
		sess.provision(ctx)
	}

	sess.timers = append(sess.timers, svc.scheduler.After(start.Sub(now), sess.fire((*Session).started)))

	if d := start.Add(timeouts.AbsenceDelay).Sub(now); d > 0 {
		sess.timers = append(sess.timers, svc.scheduler.After(d, sess.fire((*Session).absenceCheck)))
	}

	if svc.cfg.MaxSessionAge > 0 {
		d := start.Add(svc.cfg.MaxSessionAge).Sub(now)
		sess.timers = append(sess.timers, svc.scheduler.After(d, sess.fire((*Session).forceOver)))
	}
}

// addParticipant admits a user into the confirmed set. Duplicates and
// over-capacity presses are ignored without feedback. A user arriving from
// the maybe set keeps their direct message: the slot transfers and the next
// render pass reshapes it.
func (sess *Session) addParticipant(ctx context.Context, u domain.User) {
	if indexOf(sess.participants, u.ID) >= 0 {
		return
	}
	if sess.full() {
		return
	}

	if i := indexOf(sess.maybes, u.ID); i >= 0 {
		if h, ok := sess.slots[domain.SlotMaybe(u.ID)]; ok {
			sess.slots[domain.SlotParticipant(u.ID)] = h
			delete(sess.slots, domain.SlotMaybe(u.ID))
		}
		sess.maybes = removeAt(sess.maybes, i)
		sess.participants = append(sess.participants, u)
		sess.updateMessages(ctx)
		return
	}

	sess.participants = append(sess.participants, u)
	state := sess.renderState()
	msg := sess.svc.renderer.Participant(state, sess.participantCancel(u))
	if h, err := sess.svc.port.SendMessage(ctx, chat.User(u.ID), msg); err != nil {
		log.Printf("meetup %d: send participant message to %s: %v", sess.id, u.ID, err)
	} else {
		sess.slots[domain.SlotParticipant(u.ID)] = h
	}
	sess.updateMessages(ctx)
}

// addMaybeParticipant admits a user into the undecided set. The owner is a
// permanent confirmed member and cannot demote; other confirmed participants
// move over with their message slot.
func (sess *Session) addMaybeParticipant(ctx context.Context, u domain.User) {
	if u.ID == sess.info.Owner.ID {
		return
	}
	if indexOf(sess.maybes, u.ID) >= 0 {
		return
	}

	if i := indexOf(sess.participants, u.ID); i >= 0 {
		if h, ok := sess.slots[domain.SlotParticipant(u.ID)]; ok {
			sess.slots[domain.SlotMaybe(u.ID)] = h
			delete(sess.slots, domain.SlotParticipant(u.ID))
		}
		sess.participants = removeAt(sess.participants, i)
		sess.maybes = append(sess.maybes, u)
		sess.updateMessages(ctx)
		return
	}

	sess.maybes = append(sess.maybes, u)
	state := sess.renderState()
	msg := sess.svc.renderer.Maybe(state, sess.confirm(), sess.maybeCancel(u))
	if h, err := sess.svc.port.SendMessage(ctx, chat.User(u.ID), msg); err != nil {
		log.Printf("meetup %d: send maybe message to %s: %v", sess.id, u.ID, err)
	} else {
		sess.slots[domain.SlotMaybe(u.ID)] = h
	}
	sess.updateMessages(ctx)
}

// withdrawParticipant removes a confirmed participant. Their own message is
// finalized in place before the slot is dropped, so later render passes
// leave it untouched. The owner cannot withdraw.
func (sess *Session) withdrawParticipant(ctx context.Context, u domain.User) {
	if u.ID == sess.info.Owner.ID {
		return
	}
	i := indexOf(sess.participants, u.ID)
	if i < 0 {
		return
	}

	if h, ok := sess.slots[domain.SlotParticipant(u.ID)]; ok {
		if err := sess.svc.port.EditMessage(ctx, h, sess.svc.renderer.Withdrawn(sess.renderState())); err != nil {
			log.Printf("meetup %d: finalize message for %s: %v", sess.id, u.ID, err)
		}
		delete(sess.slots, domain.SlotParticipant(u.ID))
	}
	sess.participants = removeAt(sess.participants, i)
	sess.updateMessages(ctx)
}

// withdrawMaybeParticipant removes an undecided participant, finalizing
// their message the same way.
func (sess *Session) withdrawMaybeParticipant(ctx context.Context, u domain.User) {
	i := indexOf(sess.maybes, u.ID)
	if i < 0 {
		return
	}

	if h, ok := sess.slots[domain.SlotMaybe(u.ID)]; ok {
		if err := sess.svc.port.EditMessage(ctx, h, sess.svc.renderer.Withdrawn(sess.renderState())); err != nil {
			log.Printf("meetup %d: finalize message for %s: %v", sess.id, u.ID, err)
		}
		delete(sess.slots, domain.SlotMaybe(u.ID))
	}
	sess.maybes = removeAt(sess.maybes, i)
	sess.updateMessages(ctx)
}

// updateMessages re-renders every live slot from current state. Edits carry
// the complete content, so the pass is idempotent and safe to run after any
// mutation. Stale targets are logged and kept; they are not retried.
func (sess *Session) updateMessages(ctx context.Context) {
	state := sess.renderState()
	svc := sess.svc

	for slot, h := range sess.slots {
		var msg chat.Message
		switch {
		case slot == domain.SlotGeneral:
			msg = svc.renderer.General(state)
		case slot == domain.SlotOwner:
			msg = svc.renderer.Owner(state)
		case slot == domain.SlotChannel:
			msg = svc.renderer.ChannelAnnouncement(state)
		case strings.HasPrefix(string(slot), "participant:"):
			u := sess.userAt(strings.TrimPrefix(string(slot), "participant:"))
			msg = svc.renderer.Participant(state, sess.participantCancel(u))
		case strings.HasPrefix(string(slot), "maybe:"):
			u := sess.userAt(strings.TrimPrefix(string(slot), "maybe:"))
			msg = svc.renderer.Maybe(state, sess.confirm(), sess.maybeCancel(u))
		default:
			continue
		}
		if err := svc.port.EditMessage(ctx, h, msg); err != nil {
			log.Printf("meetup %d: edit %s message: %v", sess.id, slot, err)
		}
	}
}

func (sess *Session) userAt(id string) domain.User {
	if i := indexOf(sess.participants, id); i >= 0 {
		return sess.participants[i]
	}
	if i := indexOf(sess.maybes, id); i >= 0 {
		return sess.maybes[i]
	}
	return domain.User{ID: id}
}

// provision creates the session workspace and posts the in-workspace
// announcement. A failure is logged and leaves the session Scheduled; the
// start timer still fires.
func (sess *Session) provision(ctx context.Context) {
	if !sess.phase.CanTransition(domain.PhaseResourcesProvisioned) {
		return
	}
	svc := sess.svc

	ws, err := svc.port.ProvisionWorkspace(ctx, sess.info.Topic+"-game-meetup")
	if err != nil {
		log.Printf("meetup %d: provision workspace: %v", sess.id, err)
		return
	}
	sess.workspace = ws
	sess.provisioned = true
	sess.phase = domain.PhaseResourcesProvisioned

	if h, err := svc.port.SendMessage(ctx, chat.Channel(ws.TextID), svc.renderer.ChannelAnnouncement(sess.renderState())); err != nil {
		log.Printf("meetup %d: send channel message: %v", sess.id, err)
	} else {
		sess.slots[domain.SlotChannel] = h
	}
	log.Printf("meetup %d provisioned workspace %s", sess.id, ws.CategoryID)
}

// absentParticipants returns the confirmed participants not currently in the
// session's voice space. Without a voice space everyone counts as absent.
func (sess *Session) absentParticipants(ctx context.Context) []domain.User {
	if sess.workspace.VoiceID == "" {
		return append([]domain.User(nil), sess.participants...)
	}
	members, err := sess.svc.port.VoiceMembers(ctx, sess.workspace.VoiceID)
	if err != nil {
		log.Printf("meetup %d: voice members: %v", sess.id, err)
		return append([]domain.User(nil), sess.participants...)
	}
	present := make(map[string]bool, len(members))
	for _, id := range members {
		present[id] = true
	}
	var absent []domain.User
	for _, p := range sess.participants {
		if !present[p.ID] {
			absent = append(absent, p)
		}
	}
	return absent
}

// notify sends a transient direct message to each user. Handles are not
// retained; notices never participate in the re-render pass.
func (sess *Session) notify(ctx context.Context, users []domain.User, msg chat.Message) {
	for _, u := range users {
		if _, err := sess.svc.port.SendMessage(ctx, chat.User(u.ID), msg); err != nil {
			log.Printf("meetup %d: notify %s: %v", sess.id, u.ID, err)
		}
	}
}

// reminder nudges participants who are not yet in voice shortly before start.
func (sess *Session) reminder(ctx context.Context) {
	sess.notify(ctx, sess.absentParticipants(ctx), sess.svc.renderer.Reminder(sess.renderState()))
}

// started marks the start instant: announce in the workspace, ping absent
// participants, and begin the repeating occupancy check that eventually ends
// the session.
func (sess *Session) started(ctx context.Context) {
	if !sess.phase.CanTransition(domain.PhaseStarted) {
		return
	}
	sess.phase = domain.PhaseStarted
	svc := sess.svc
	state := sess.renderState()

	if sess.provisioned {
		if _, err := svc.port.SendMessage(ctx, chat.Channel(sess.workspace.TextID), svc.renderer.Started(state, false)); err != nil {
			log.Printf("meetup %d: send start announcement: %v", sess.id, err)
		}
	}
	sess.notify(ctx, sess.absentParticipants(ctx), svc.renderer.Started(state, true))

	sess.timers = append(sess.timers, svc.scheduler.Every(timeouts.OccupancyCheckPeriod, sess.fire((*Session).occupancyCheck)))
	log.Printf("meetup %d started", sess.id)
}

// absenceCheck runs once shortly after start: absent participants get a
// final nudge, and undecided users are told while seats remain.
func (sess *Session) absenceCheck(ctx context.Context) {
	if sess.phase != domain.PhaseStarted {
		return
	}
	svc := sess.svc
	state := sess.renderState()

	sess.notify(ctx, sess.absentParticipants(ctx), svc.renderer.Absent(state))

	if sess.info.Capacity == domain.Unbounded || len(sess.maybes) == 0 {
		return
	}
	occupancy, err := svc.port.VoiceOccupancy(ctx, sess.workspace.VoiceID)
	if err != nil {
		log.Printf("meetup %d: voice occupancy: %v", sess.id, err)
		return
	}
	if seats := state.SeatsLeft(occupancy); seats > 0 {
		sess.notify(ctx, sess.maybes, svc.renderer.StillRoom(state, seats))
	}
}

// occupancyCheck ends the session once the voice space is empty.
func (sess *Session) occupancyCheck(ctx context.Context) {
	if sess.phase != domain.PhaseStarted {
		return
	}
	occupancy, err := sess.svc.port.VoiceOccupancy(ctx, sess.workspace.VoiceID)
	if err != nil {
		log.Printf("meetup %d: voice occupancy: %v", sess.id, err)
		return
	}
	if occupancy == 0 {
		sess.over(ctx)
	}
}

// cancel is the owner's terminal transition, reachable from any non-terminal
// phase.
func (sess *Session) cancel(ctx context.Context) {
	if !sess.phase.CanTransition(domain.PhaseCancelled) {
		return
	}
	sess.phase = domain.PhaseCancelled
	sess.replaceAllMessages(ctx, sess.svc.renderer.Cancelled(sess.renderState()))
	sess.finalize(ctx)
	log.Printf("meetup %d cancelled", sess.id)
}

// over is the natural terminal transition, reachable only from Started.
func (sess *Session) over(ctx context.Context) {
	if !sess.phase.CanTransition(domain.PhaseOver) {
		return
	}
	sess.phase = domain.PhaseOver
	sess.replaceAllMessages(ctx, sess.svc.renderer.Over(sess.renderState()))
	sess.finalize(ctx)
	log.Printf("meetup %d over", sess.id)
}

// forceOver is the hard session-age ceiling. A session that somehow never
// started is cancelled instead so it still cleans up.
func (sess *Session) forceOver(ctx context.Context) {
	if sess.phase.CanTransition(domain.PhaseOver) {
		log.Printf("meetup %d: max session age reached", sess.id)
		sess.over(ctx)
		return
	}
	sess.cancel(ctx)
}

// replaceAllMessages swaps every live slot for the terminal notice. General,
// owner and maybe messages are edited in place; participant messages are
// deleted and resent so the notice lands as a fresh ping. The in-workspace
// message goes down with the workspace.
func (sess *Session) replaceAllMessages(ctx context.Context, msg chat.Message) {
	svc := sess.svc
	for slot, h := range sess.slots {
		switch {
		case slot == domain.SlotChannel:
		case strings.HasPrefix(string(slot), "participant:"):
			userID := strings.TrimPrefix(string(slot), "participant:")
			if err := svc.port.DeleteMessage(ctx, h); err != nil {
				log.Printf("meetup %d: delete %s message: %v", sess.id, slot, err)
			}
			if _, err := svc.port.SendMessage(ctx, chat.User(userID), msg); err != nil {
				log.Printf("meetup %d: resend to %s: %v", sess.id, userID, err)
			}
		default:
			if err := svc.port.EditMessage(ctx, h, msg); err != nil {
				log.Printf("meetup %d: edit %s message: %v", sess.id, slot, err)
			}
		}
	}
}

// finalize drains everything the session owns. Runs exactly once: both
// terminal transitions flip the phase before calling it, and the phase gate
// in withSession keeps later callbacks out.
func (sess *Session) finalize(ctx context.Context) {
	svc := sess.svc

	svc.scheduler.CancelAll(sess.timers)
	sess.timers = nil
	svc.buttons.RemoveAll(sess.tokens)
	sess.tokens = nil

	if sess.provisioned {
		if err := svc.port.TeardownWorkspace(ctx, sess.workspace); err != nil {
			log.Printf("meetup %d: teardown workspace: %v", sess.id, err)
		}
	}
	svc.remove(sess.id)
}
