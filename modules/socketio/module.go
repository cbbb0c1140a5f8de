package socketio

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/vk/gridtask/internal/ctxlog"
	"github.com/vk/gridtask/internal/handlers"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Kind is the action kind used in `run` blocks.
const Kind = "socketio"

const defaultTimeout = 10 * time.Second

// Module implements the handlers.Module interface for this package.
type Module struct{}

// Input defines the arguments for the socketio action.
type Input struct {
	URL       string    `hcl:"url"`
	Namespace string    `hcl:"namespace,optional"`
	Event     string    `hcl:"event"`
	Data      cty.Value `hcl:"data,optional"`
	// AckEvent, when set, is awaited after the emit and its payload becomes
	// the action's output.
	AckEvent           string `hcl:"ack_event,optional"`
	Timeout            string `hcl:"timeout,optional"`
	InsecureSkipVerify bool   `hcl:"insecure_skip_verify,optional"`
}

// Output defines the data structure returned by the action.
type Output struct {
	ResponseData any
}

// opResult is a private struct to safely pass results through the done channel.
type opResult struct {
	value *Output
	err   error
}

// OnRunSocketIO connects, emits one event, and optionally waits for a reply.
func OnRunSocketIO(ctx context.Context, input *Input) (any, error) {
	logger := ctxlog.FromContext(ctx).With("action", Kind, "url", input.URL, "event", input.Event, "ackEvent", input.AckEvent)
	logger.Debug("Handler started.")
	defer logger.Debug("Handler finished.")

	timeout := defaultTimeout
	if input.Timeout != "" {
		d, err := time.ParseDuration(input.Timeout)
		if err != nil {
			return nil, fmt.Errorf("failed to parse timeout %q: %w", input.Timeout, err)
		}
		timeout = d
	}

	payload, err := toPayload(input.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to convert data: %w", err)
	}

	parsedURL, err := url.Parse(input.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("invalid socket.io URL %q", input.URL)
	}
	namespace := input.Namespace
	if namespace == "" {
		namespace = "/"
	}

	var isConnected atomic.Bool
	done := make(chan opResult, 1)
	finish := func(r opResult) {
		select {
		case done <- r:
		default:
		}
	}

	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	if input.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification.")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(namespace, opts)
	defer func() {
		logger.Debug("Disconnecting socket client.")
		io.Disconnect()
	}()

	if input.AckEvent != "" {
		io.Once(types.EventName(input.AckEvent), func(data ...any) {
			var responseData any
			if len(data) > 0 {
				responseData = data[0]
			}
			finish(opResult{value: &Output{ResponseData: responseData}})
		})
	}

	io.Once(types.EventName("connect"), func(...any) {
		isConnected.Store(true)
		logger.Info("Successfully connected.", "namespace", namespace, "sid", io.Id())
		logger.Debug("Emitting event.", "data", payload)
		io.Emit(input.Event, payload)
		if input.AckEvent == "" {
			finish(opResult{value: &Output{}})
		}
	})

	io.On(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("socket.io connection failed")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = fmt.Errorf("socket.io connection failed: %w", e)
			}
		}
		finish(opResult{err: err})
	})

	io.Connect()

	select {
	case <-opCtx.Done():
		if isConnected.Load() {
			return nil, fmt.Errorf("timed out after connecting while waiting for event '%s'", input.AckEvent)
		}
		return nil, fmt.Errorf("timed out while waiting for initial connection")
	case res := <-done:
		if res.err != nil {
			return nil, res.err
		}
		return res.value, nil
	}
}

// toPayload converts an HCL value into plain Go data for the JSON encoder
// used by the socket.io client.
func toPayload(val cty.Value) (any, error) {
	if val.IsNull() {
		return nil, nil
	}
	if !val.IsWhollyKnown() {
		return nil, errors.New("value is not known")
	}
	raw, err := json.Marshal(ctyjson.SimpleJSONValue{Value: val})
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Register registers the handler with the engine.
func (m *Module) Register(h *handlers.Handlers) {
	handlers.Register(h, Kind, OnRunSocketIO)
}
