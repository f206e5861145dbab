package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

type testMessage struct{}

func (testMessage) Type() string { return "markers.test.message" }

func (testMessage) Validate() error { return nil }

type invalidMessage struct{}

func (invalidMessage) Type() string { return "markers.test.invalid" }

func (invalidMessage) Validate() error {
	return validationError()
}

func validationError() error {
	return errors.New("invalid")
}

func TestHandlerExecuteSuccess(t *testing.T) {
	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !called {
		t.Fatal("expected handler to be invoked")
	}
}

func TestHandlerValidationShortCircuitsExecution(t *testing.T) {
	called := false
	h := NewHandler[invalidMessage](func(ctx context.Context, msg invalidMessage) error {
		called = true
		return nil
	})

	err := h.Execute(context.Background(), invalidMessage{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when validation fails")
	}
}

func TestHandlerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	err := h.Execute(ctx, testMessage{})
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when context is cancelled")
	}
}

func TestHandlerWrapsExecutionError(t *testing.T) {
	execErr := errors.New("boom")
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return execErr
	})

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected wrapped execution error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if !goerrors.HasCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category to propagate, got %v", err)
	}
}

func TestHandlerHonoursTimeoutOption(t *testing.T) {
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(20 * time.Millisecond):
			return nil
		}
	}, WithTimeout[testMessage](10*time.Millisecond))

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category for timeout, got %v", err)
	}
}

type fieldMessage struct {
	Name string
}

func (fieldMessage) Type() string { return "markers.test.fields" }

func TestHandlerTelemetryReceivesOutcome(t *testing.T) {
	var got []TelemetryInfo
	execErr := errors.New("boom")
	h := NewHandler[fieldMessage](
		func(ctx context.Context, msg fieldMessage) error {
			if msg.Name == "bad" {
				return execErr
			}
			return nil
		},
		WithOperation[fieldMessage]("markers.test"),
		WithMessageFields[fieldMessage](func(msg fieldMessage) map[string]any {
			return map[string]any{"name": msg.Name}
		}),
		WithTelemetry[fieldMessage](func(_ context.Context, _ fieldMessage, info TelemetryInfo) {
			got = append(got, info)
		}),
	)

	if err := h.Execute(context.Background(), fieldMessage{Name: "good"}); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if err := h.Execute(context.Background(), fieldMessage{Name: "bad"}); !errors.Is(err, execErr) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected two telemetry calls, got %d", len(got))
	}
	if got[0].Status != TelemetryStatusSuccess || got[0].Command != "markers.test.fields" || got[0].Operation != "markers.test" {
		t.Fatalf("unexpected success info %+v", got[0])
	}
	if got[0].Fields["name"] != "good" {
		t.Fatalf("expected message fields, got %v", got[0].Fields)
	}
	if got[1].Status != TelemetryStatusFailed || !errors.Is(got[1].Error, execErr) {
		t.Fatalf("unexpected failure info %+v", got[1])
	}
}

func TestHandlerTimeoutReportsContextError(t *testing.T) {
	var status TelemetryStatus
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		<-ctx.Done()
		return ctx.Err()
	},
		WithTimeout[testMessage](5*time.Millisecond),
		WithTelemetry[testMessage](func(_ context.Context, _ testMessage, info TelemetryInfo) {
			status = info.Status
		}),
	)

	err := h.Execute(context.Background(), testMessage{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if status != TelemetryStatusContextError {
		t.Fatalf("expected context error status, got %q", status)
	}
}

func TestHandlerErrorTextCodes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error { return nil })

	cases := map[string]struct {
		err  error
		want string
	}{
		"cancelled": {err: h.Execute(ctx, testMessage{}), want: commandContextCanceled},
		"invalid":   {err: NewHandler[invalidMessage](func(context.Context, invalidMessage) error { return nil }).Execute(context.Background(), invalidMessage{}), want: commandValidationCode},
	}
	for name, tc := range cases {
		var rich *goerrors.Error
		if !goerrors.As(tc.err, &rich) {
			t.Fatalf("%s: expected go-errors error, got %v", name, tc.err)
		}
		if rich.TextCode != tc.want {
			t.Fatalf("%s: expected %s, got %s", name, tc.want, rich.TextCode)
		}
	}
}

func TestHandlerKeepsTaggedErrors(t *testing.T) {
	tagged := goerrors.Wrap(errors.New("bad markers"), goerrors.CategoryBadInput, "marker order").WithTextCode("MARKER_ORDER")
	h := NewHandler[testMessage](func(context.Context, testMessage) error { return tagged })

	err := h.Execute(context.Background(), testMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryBadInput) {
		t.Fatalf("expected the original category to survive, got %v", err)
	}
}
