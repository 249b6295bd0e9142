package command

import (
	"context"
	"strconv"
	"strings"

	"github.com/frostbyte-gg/meetup/internal/meetup/domain"
	"github.com/frostbyte-gg/meetup/internal/meetup/service"
)

// GameMeet builds the command that schedules a meetup. The argument layout is
// `<topic words...> <HH:MM> [capacity]`: a trailing integer is the capacity,
// the token before it the start time, everything else the topic.
func GameMeet(svc *service.Service) Command {
	return Command{
		Name:  "gamemeet",
		Usage: "gamemeet <topic> <HH:MM> [capacity]",
		Help:  "schedule a game meetup starting at the given time today, or tomorrow if it already passed",
		Run: func(ctx context.Context, req Request) (string, error) {
			args := req.Args
			capacity := domain.Unbounded
			if len(args) >= 3 {
				if n, err := strconv.Atoi(args[len(args)-1]); err == nil {
					// Unbounded capacity is expressed by omission; an
					// explicit value must be positive.
					if n < 1 {
						return "", domain.ErrNonPositiveCapacity
					}
					capacity = n
					args = args[:len(args)-1]
				}
			}
			if len(args) < 2 {
				return "", domain.ErrEmptyTopic
			}

			_, err := svc.CreateMeetup(ctx, service.CreateInput{
				Owner:      req.User,
				Topic:      strings.Join(args[:len(args)-1], " "),
				StartClock: args[len(args)-1],
				Capacity:   capacity,
				ChannelID:  req.ChannelID,
			})
			if err != nil {
				return "", err
			}
			return "", nil
		},
	}
}
