// Package command routes prefixed chat messages to registered commands and
// reports usage and validation errors back to the requesting channel.
package command

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/frostbyte-gg/meetup/internal/chat"
	"github.com/frostbyte-gg/meetup/internal/meetup/domain"
)

// Request carries one parsed command invocation.
type Request struct {
	User      domain.User
	ChannelID string
	Args      []string
}

// Command is one registered command. Run returns the text to post back to
// the requesting channel; empty means no reply.
type Command struct {
	Name  string
	Usage string
	Help  string
	Run   func(ctx context.Context, req Request) (string, error)
}

// Dispatcher matches inbound messages against a command prefix and invokes
// the named command. Registration happens at startup, before serving;
// HandleMessage does not mutate the command set.
type Dispatcher struct {
	prefix   string
	port     chat.Port
	commands map[string]Command
}

// NewDispatcher creates a dispatcher answering to the given prefix.
func NewDispatcher(prefix string, port chat.Port) *Dispatcher {
	return &Dispatcher{
		prefix:   prefix,
		port:     port,
		commands: make(map[string]Command),
	}
}

// Register adds a command. Re-registering a name replaces it.
func (d *Dispatcher) Register(cmd Command) {
	d.commands[cmd.Name] = cmd
}

// HandleMessage inspects one inbound message and runs the named command if
// the message carries the prefix. It reports whether the message was treated
// as a command.
func (d *Dispatcher) HandleMessage(ctx context.Context, user domain.User, channelID, content string) bool {
	if !strings.HasPrefix(content, d.prefix) {
		return false
	}
	fields := strings.Fields(strings.TrimPrefix(content, d.prefix))
	if len(fields) == 0 {
		return false
	}
	name, args := fields[0], fields[1:]

	if name == "help" {
		d.reply(ctx, channelID, d.helpText(args))
		return true
	}

	cmd, ok := d.commands[name]
	if !ok {
		d.reply(ctx, channelID, fmt.Sprintf("unknown command %q, try %shelp", name, d.prefix))
		return true
	}

	out, err := cmd.Run(ctx, Request{User: user, ChannelID: channelID, Args: args})
	if err != nil {
		if domain.IsValidation(err) {
			d.reply(ctx, channelID, fmt.Sprintf("%v\nusage: %s%s", err, d.prefix, cmd.Usage))
		} else {
			log.Printf("command %s: %v", name, err)
			d.reply(ctx, channelID, "something went wrong, please try again")
		}
		return true
	}
	if out != "" {
		d.reply(ctx, channelID, out)
	}
	return true
}

func (d *Dispatcher) helpText(args []string) string {
	if len(args) > 0 {
		if cmd, ok := d.commands[args[0]]; ok {
			return fmt.Sprintf("%s%s\n%s", d.prefix, cmd.Usage, cmd.Help)
		}
		return fmt.Sprintf("unknown command %q", args[0])
	}

	names := make([]string, 0, len(d.commands))
	for name := range d.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("commands:")
	for _, name := range names {
		fmt.Fprintf(&b, "\n%s%s", d.prefix, d.commands[name].Usage)
	}
	return b.String()
}

func (d *Dispatcher) reply(ctx context.Context, channelID, text string) {
	if _, err := d.port.SendMessage(ctx, chat.Channel(channelID), chat.Message{Content: text}); err != nil {
		log.Printf("command reply: %v", err)
	}
}
