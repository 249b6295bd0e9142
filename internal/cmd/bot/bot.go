// Package bot parses bot command flags and wires the meetup service to the
// chat gateway.
package bot

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/frostbyte-gg/meetup/internal/chat"
	"github.com/frostbyte-gg/meetup/internal/command"
	"github.com/frostbyte-gg/meetup/internal/meetup/domain"
	"github.com/frostbyte-gg/meetup/internal/meetup/interaction"
	"github.com/frostbyte-gg/meetup/internal/meetup/render"
	"github.com/frostbyte-gg/meetup/internal/meetup/schedule"
	"github.com/frostbyte-gg/meetup/internal/meetup/service"
	"github.com/frostbyte-gg/meetup/internal/platform/config"
	platformotel "github.com/frostbyte-gg/meetup/internal/platform/otel"
	"github.com/frostbyte-gg/meetup/internal/platform/timeouts"
)

// Config holds bot command configuration.
type Config struct {
	HTTPAddr       string        `env:"MEETUP_HTTP_ADDR"        envDefault:":8090"`
	GatewayBaseURL string        `env:"MEETUP_GATEWAY_BASE_URL"`
	GatewayToken   string        `env:"MEETUP_GATEWAY_TOKEN"`
	CommandPrefix  string        `env:"MEETUP_COMMAND_PREFIX"   envDefault:"!"`
	Locale         string        `env:"MEETUP_LOCALE"           envDefault:"en"`
	MaxSessionAge  time.Duration `env:"MEETUP_MAX_SESSION_AGE"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "webhook listen address")
	fs.StringVar(&cfg.GatewayBaseURL, "gateway-base-url", cfg.GatewayBaseURL, "chat gateway base URL")
	fs.StringVar(&cfg.GatewayToken, "gateway-token", cfg.GatewayToken, "chat gateway bearer token")
	fs.StringVar(&cfg.CommandPrefix, "command-prefix", cfg.CommandPrefix, "chat command prefix")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "message locale (BCP 47)")
	fs.DurationVar(&cfg.MaxSessionAge, "max-session-age", cfg.MaxSessionAge, "hard ceiling on session lifetime after start, 0 for none")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run wires the bot and serves the gateway webhook until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	if cfg.GatewayBaseURL == "" {
		return fmt.Errorf("gateway base URL is required")
	}

	shutdownTracing, err := platformotel.Setup(ctx, "meetup-bot")
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Printf("shutdown tracing: %v", err)
		}
	}()

	gateway, err := chat.NewGateway(chat.GatewayConfig{
		BaseURL: cfg.GatewayBaseURL,
		Token:   cfg.GatewayToken,
	})
	if err != nil {
		return fmt.Errorf("create gateway client: %w", err)
	}

	scheduler := schedule.New()
	defer scheduler.Stop()
	registry := interaction.NewRegistry()
	renderer := render.New(render.Printer(cfg.Locale))
	svc := service.New(gateway, scheduler, registry, renderer, nil, service.Config{
		MaxSessionAge: cfg.MaxSessionAge,
	})

	dispatcher := command.NewDispatcher(cfg.CommandPrefix, gateway)
	dispatcher.Register(command.GameMeet(svc))

	events := chat.NewEventHandler(chat.EventHandlerConfig{
		Token: cfg.GatewayToken,
		OnMessage: func(r *http.Request, userID, userName, channelID, content string) {
			user := domain.User{ID: userID, Name: userName}
			dispatcher.HandleMessage(r.Context(), user, channelID, content)
		},
		OnPress: func(r *http.Request, userID, userName, token string) {
			registry.Dispatch(token, interaction.Press{User: domain.User{ID: userID, Name: userName}})
		},
	})

	mux := http.NewServeMux()
	mux.Handle("POST /events", events)
	server := &http.Server{Addr: cfg.HTTPAddr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", cfg.HTTPAddr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve webhook: %w", err)
	}
}
