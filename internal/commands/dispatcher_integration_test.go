package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
)

type flakyRenderCommand struct {
	Topic string
}

func (flakyRenderCommand) Type() string { return "article.test.flaky_render" }

func (flakyRenderCommand) Validate() error { return nil }

func TestDispatcherRetriesFlakyRender(t *testing.T) {
	cases := []struct {
		name      string
		retries   int
		failures  int
		wantErr   bool
		wantCalls int
	}{
		{name: "recovers after one retry", retries: 1, failures: 1, wantCalls: 2},
		{name: "exhausts retries", retries: 2, failures: 5, wantErr: true, wantCalls: 3},
		{name: "no retries needed", retries: 3, failures: 0, wantCalls: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var calls int
			handler := NewHandler(func(ctx context.Context, msg flakyRenderCommand) error {
				calls++
				if calls <= tc.failures {
					return errors.New("sink unavailable: " + msg.Topic)
				}
				return nil
			}, WithTimeout[flakyRenderCommand](time.Second))

			sub := dispatcher.SubscribeCommand(handler, runner.WithMaxRetries(tc.retries))
			defer sub.Unsubscribe()

			err := dispatcher.Dispatch(context.Background(), flakyRenderCommand{Topic: "AI Trends"})
			if tc.wantErr && err == nil {
				t.Fatal("expected error after exhausting retries")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("dispatch: %v", err)
			}
			if calls != tc.wantCalls {
				t.Fatalf("expected %d calls, got %d", tc.wantCalls, calls)
			}
		})
	}
}
