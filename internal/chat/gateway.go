package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/frostbyte-gg/meetup/internal/platform/timeouts"
)

// GatewayConfig holds configuration for creating a Gateway.
type GatewayConfig struct {
	// BaseURL is the base URL of the chat gateway (e.g., "http://localhost:7700").
	BaseURL string
	// Token authenticates the bot against the gateway.
	Token string
	// HTTPClient is used for all requests. If nil, http.DefaultClient is used.
	HTTPClient *http.Client
	// Logger is used for structured logging. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Gateway implements Port against the chat gateway's REST API.
type Gateway struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewGateway creates a chat gateway client.
func NewGateway(config GatewayConfig) (*Gateway, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("chat: BaseURL is required")
	}
	if _, err := url.Parse(config.BaseURL); err != nil {
		return nil, fmt.Errorf("chat: invalid BaseURL %q: %w", config.BaseURL, err)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Gateway{
		baseURL:    strings.TrimSuffix(config.BaseURL, "/"),
		token:      config.Token,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

type sendMessageResponse struct {
	ChannelID string `json:"channel_id"`
	MessageID string `json:"message_id"`
}

type provisionRequest struct {
	Name string `json:"name"`
}

type occupancyResponse struct {
	Count   int      `json:"count"`
	Members []string `json:"members"`
}

// SendMessage posts rendered content to a user's direct messages or a channel.
func (g *Gateway) SendMessage(ctx context.Context, to Recipient, msg Message) (MessageHandle, error) {
	var path string
	switch to.Kind {
	case RecipientUser:
		path = "/api/v1/users/" + url.PathEscape(to.ID) + "/messages"
	case RecipientChannel:
		path = "/api/v1/channels/" + url.PathEscape(to.ID) + "/messages"
	default:
		return MessageHandle{}, fmt.Errorf("chat: unknown recipient kind %q", to.Kind)
	}

	var out sendMessageResponse
	if err := g.do(ctx, http.MethodPost, path, msg, &out); err != nil {
		return MessageHandle{}, fmt.Errorf("send message: %w", err)
	}
	return MessageHandle{ChannelID: out.ChannelID, MessageID: out.MessageID}, nil
}

// EditMessage replaces the full content of a delivered message.
func (g *Gateway) EditMessage(ctx context.Context, handle MessageHandle, msg Message) error {
	path := "/api/v1/channels/" + url.PathEscape(handle.ChannelID) + "/messages/" + url.PathEscape(handle.MessageID)
	if err := g.do(ctx, http.MethodPatch, path, msg, nil); err != nil {
		return fmt.Errorf("edit message: %w", err)
	}
	return nil
}

// DeleteMessage removes a delivered message.
func (g *Gateway) DeleteMessage(ctx context.Context, handle MessageHandle) error {
	path := "/api/v1/channels/" + url.PathEscape(handle.ChannelID) + "/messages/" + url.PathEscape(handle.MessageID)
	if err := g.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}

// ProvisionWorkspace creates the category, text and voice spaces for a session.
func (g *Gateway) ProvisionWorkspace(ctx context.Context, name string) (Workspace, error) {
	var ws Workspace
	if err := g.do(ctx, http.MethodPost, "/api/v1/workspaces", provisionRequest{Name: name}, &ws); err != nil {
		return Workspace{}, &ProvisionError{Name: name, Err: err}
	}
	return ws, nil
}

// TeardownWorkspace deletes provisioned spaces. Each delete is best effort;
// the first hard failure is returned after all three are attempted.
func (g *Gateway) TeardownWorkspace(ctx context.Context, ws Workspace) error {
	var firstErr error
	for _, channelID := range []string{ws.VoiceID, ws.TextID, ws.CategoryID} {
		if channelID == "" {
			continue
		}
		path := "/api/v1/channels/" + url.PathEscape(channelID)
		if err := g.do(ctx, http.MethodDelete, path, nil, nil); err != nil && !errors.Is(err, ErrNotFound) {
			g.logger.Warn("teardown channel failed", "channel_id", channelID, "error", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("teardown channel %s: %w", channelID, err)
			}
		}
	}
	return firstErr
}

// VoiceOccupancy reports how many users currently occupy a voice space.
func (g *Gateway) VoiceOccupancy(ctx context.Context, voiceID string) (int, error) {
	var out occupancyResponse
	path := "/api/v1/channels/" + url.PathEscape(voiceID) + "/voice"
	if err := g.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return 0, fmt.Errorf("voice occupancy: %w", err)
	}
	return out.Count, nil
}

// VoiceMembers lists the ids of the users currently in a voice space.
func (g *Gateway) VoiceMembers(ctx context.Context, voiceID string) ([]string, error) {
	var out occupancyResponse
	path := "/api/v1/channels/" + url.PathEscape(voiceID) + "/voice"
	if err := g.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, fmt.Errorf("voice members: %w", err)
	}
	return out.Members, nil
}

// do issues one JSON request against the gateway. A nil body sends no
// payload; a nil out discards the response body. 404 maps to ErrNotFound so
// callers can treat stale edit targets uniformly.
func (g *Gateway) do(ctx context.Context, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, timeouts.GatewayRequest)
	defer cancel()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
