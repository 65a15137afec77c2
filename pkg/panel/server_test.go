// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Radia Labs

package panel

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/radialab/sweepbench/pkg/sweep"
)

func postRun(t *testing.T, url, user, pass, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url+"/api/run", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.SetBasicAuth(user, pass)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestServerStartsRun(t *testing.T) {
	started := make(chan RunRequest, 1)
	run := func(ctx context.Context, req RunRequest, sink sweep.Sink) ([]sweep.Result, error) {
		started <- req
		return nil, nil
	}

	server := httptest.NewServer(NewServer(run, "", "", nil).Handler())
	defer server.Close()

	resp := postRun(t, server.URL, "", "",
		`{"board_no":1,"channel_no":2,"pulse_width":"00 01","prt":"0A AB 00 00"}`)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	select {
	case req := <-started:
		require.Equal(t, 1, req.Board)
		require.Equal(t, 2, req.Channel)
		require.Equal(t, "00 01", req.PulseWidth)
		require.Equal(t, "0A AB 00 00", req.PRT)
	case <-time.After(2 * time.Second):
		t.Fatal("run function was never invoked")
	}
}

func TestServerRejectsConcurrentRuns(t *testing.T) {
	release := make(chan struct{})
	running := make(chan struct{})
	run := func(ctx context.Context, req RunRequest, sink sweep.Sink) ([]sweep.Result, error) {
		close(running)
		<-release
		return nil, nil
	}

	server := httptest.NewServer(NewServer(run, "", "", nil).Handler())
	defer server.Close()

	first := postRun(t, server.URL, "", "", `{"board_no":1}`)
	require.Equal(t, http.StatusAccepted, first.StatusCode)

	select {
	case <-running:
	case <-time.After(2 * time.Second):
		t.Fatal("first run never started")
	}

	second := postRun(t, server.URL, "", "", `{"board_no":2}`)
	require.Equal(t, http.StatusConflict, second.StatusCode)

	close(release)
}

func TestServerRejectsBadRequests(t *testing.T) {
	run := func(ctx context.Context, req RunRequest, sink sweep.Sink) ([]sweep.Result, error) {
		t.Error("run function invoked for a bad request")
		return nil, nil
	}
	server := httptest.NewServer(NewServer(run, "", "", nil).Handler())
	defer server.Close()

	t.Run("wrong method", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/api/run")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})

	t.Run("malformed body", func(t *testing.T) {
		resp := postRun(t, server.URL, "", "", `{"board_no":`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestServerBasicAuth(t *testing.T) {
	run := func(ctx context.Context, req RunRequest, sink sweep.Sink) ([]sweep.Result, error) {
		return nil, nil
	}
	server := httptest.NewServer(NewServer(run, "operator", "secret", nil).Handler())
	defer server.Close()

	t.Run("missing credentials", func(t *testing.T) {
		resp := postRun(t, server.URL, "", "", `{}`)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Contains(t, resp.Header.Get("WWW-Authenticate"), "Basic")
	})

	t.Run("wrong password", func(t *testing.T) {
		resp := postRun(t, server.URL, "operator", "wrong", `{}`)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid credentials", func(t *testing.T) {
		resp := postRun(t, server.URL, "operator", "secret", `{}`)
		require.Equal(t, http.StatusAccepted, resp.StatusCode)
	})
}

func TestServerCloseCancelsActiveRun(t *testing.T) {
	cancelled := make(chan error, 1)
	run := func(ctx context.Context, req RunRequest, sink sweep.Sink) ([]sweep.Result, error) {
		<-ctx.Done()
		cancelled <- ctx.Err()
		return nil, ctx.Err()
	}

	srv := NewServer(run, "", "", nil)
	server := httptest.NewServer(srv.Handler())
	defer server.Close()

	resp := postRun(t, server.URL, "", "", `{"board_no":1}`)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	srv.Close()

	select {
	case err := <-cancelled:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("run context was never cancelled")
	}
}

func TestServerEventStreamRejectsNonGet(t *testing.T) {
	run := func(ctx context.Context, req RunRequest, sink sweep.Sink) ([]sweep.Result, error) {
		return nil, nil
	}
	server := httptest.NewServer(NewServer(run, "", "", nil).Handler())
	defer server.Close()

	resp, err := http.Post(server.URL+"/ws/events", "application/json", strings.NewReader("{}"))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestServerEventStream(t *testing.T) {
	run := func(ctx context.Context, req RunRequest, sink sweep.Sink) ([]sweep.Result, error) {
		return nil, nil
	}
	srv := NewServer(run, "", "", nil)
	server := httptest.NewServer(srv.Handler())
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/events"
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer client.Close()

	require.Eventually(t, func() bool { return srv.Hub().ClientCount() == 1 },
		2*time.Second, 10*time.Millisecond)

	srv.Hub().Notify(sweep.Event{Status: sweep.StatusRunning, Message: "Starting automation sequence..."})

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, frame, err := client.ReadMessage()
	require.NoError(t, err)
	got, err := DecodeEvent(frame)
	require.NoError(t, err)
	require.Equal(t, sweep.StatusRunning, got.Status)
	require.Equal(t, "Starting automation sequence...", got.Message)
}
