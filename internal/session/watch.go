package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sync"

	"github.com/specialistvlad/propgraph/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Watch connects to a running server and writes every render delta it
// receives to out, one JSON document per line, until ctx is done.
func Watch(ctx context.Context, rawURL string, out io.Writer) error {
	logger := ctxlog.FromContext(ctx).With("url", rawURL)

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return fmt.Errorf("failed to parse URL: %q needs a scheme and a host", rawURL)
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	opts := socket.DefaultOptions()
	if parsedURL.Path != "" && parsedURL.Path != "/" {
		opts.SetPath(parsedURL.Path)
	}
	opts.SetTransports(types.NewSet(transports.Polling, transports.WebSocket))

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket("/", opts)
	defer func() {
		logger.Debug("Disconnecting watch client")
		io.Disconnect()
	}()

	failed := make(chan error, 1)
	var writeMu sync.Mutex

	io.On(types.EventName("connect"), func(...any) {
		logger.Info("Watching.", "sid", io.Id())
	})
	io.On(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connection failed")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		select {
		case failed <- err:
		default:
		}
	})
	io.On(types.EventName(EventRender), func(data ...any) {
		if len(data) == 0 {
			return
		}
		buf, err := json.Marshal(data[0])
		if err != nil {
			logger.Warn("Dropping undecodable delta.", "error", err)
			return
		}
		writeMu.Lock()
		defer writeMu.Unlock()
		fmt.Fprintln(out, string(buf))
	})
	io.On(types.EventName(EventActionError), func(data ...any) {
		logger.Warn("Server rejected an action.", "detail", data)
	})

	io.Connect()

	select {
	case <-ctx.Done():
		return nil
	case err := <-failed:
		return fmt.Errorf("watch %s: %w", rawURL, err)
	}
}
