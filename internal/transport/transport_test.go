package transport_test

import (
	"context"
	"encoding/binary"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/release-sanity/release-sanity/internal/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		response   []byte
		status     int
		hang       time.Duration
		serverDown bool

		body      any
		timeout   time.Duration
		cancelCtx bool

		want       any
		wantErr    error
		wantAnyErr bool
	}{
		"Posts JSON and returns the parsed response": {
			response: []byte(`{"status": "ok"}`),
			want:     map[string]any{"status": "ok"},
		},
		"Response status is not checked": {
			response: []byte(`{"error": "boom"}`),
			status:   http.StatusServiceUnavailable,
			want:     map[string]any{"error": "boom"},
		},
		"Array response body": {
			response: []byte(`[1, 2]`),
			want:     []any{float64(1), float64(2)},
		},
		"UTF-8 BOM is stripped before parsing": {
			response: append([]byte{0xEF, 0xBB, 0xBF}, []byte(`{"status": "ok"}`)...),
			want:     map[string]any{"status": "ok"},
		},
		"UTF-16 response is decoded before parsing": {
			response: utf16LE(t, `{"status": "ok"}`),
			want:     map[string]any{"status": "ok"},
		},

		"Error on non-JSON response":    {response: []byte("<html>down for maintenance</html>"), wantErr: transport.ErrNotJSON},
		"Error on unreachable server":   {serverDown: true, wantErr: transport.ErrSendFailure},
		"Error on canceled context":     {response: []byte(`{}`), cancelCtx: true, wantErr: transport.ErrSendFailure},
		"Error when the timeout is hit": {response: []byte(`{}`), hang: 300 * time.Millisecond, timeout: 50 * time.Millisecond, wantErr: transport.ErrSendFailure},
		"Error on unencodable request":  {response: []byte(`{}`), body: make(chan int), wantAnyErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var gotMethod, gotContentType, gotBody string
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotMethod = r.Method
				gotContentType = r.Header.Get("Content-Type")
				b, err := io.ReadAll(r.Body)
				if err != nil {
					t.Errorf("Setup: could not read request body: %v", err)
				}
				gotBody = string(b)

				if tc.hang > 0 {
					time.Sleep(tc.hang)
				}
				if tc.status != 0 {
					w.WriteHeader(tc.status)
				}
				_, _ = w.Write(tc.response)
			}))
			t.Cleanup(ts.Close)
			if tc.serverDown {
				ts.Close()
			}

			if tc.body == nil {
				tc.body = map[string]any{"id": 1}
			}

			ctx := context.Background()
			if tc.cancelCtx {
				var cancel context.CancelFunc
				ctx, cancel = context.WithCancel(ctx)
				cancel()
			}

			opts := []transport.Options{}
			if tc.timeout > 0 {
				opts = append(opts, transport.WithTimeout(tc.timeout))
			}
			c := transport.New(slog.Default(), opts...)

			got, err := c.Send(ctx, ts.URL, tc.body)
			if tc.wantAnyErr {
				require.Error(t, err, "Send should have failed")
				return
			}
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr, "Send returned the wrong error")
				return
			}
			require.NoError(t, err, "Send should not have failed")

			assert.Equal(t, tc.want, got, "unexpected parsed response")
			assert.Equal(t, http.MethodPost, gotMethod, "request method should be POST")
			assert.Equal(t, "application/json", gotContentType, "unexpected content type")
			assert.JSONEq(t, `{"id": 1}`, gotBody, "unexpected request body")
		})
	}
}

// utf16LE encodes s as UTF-16 little-endian with a leading byte-order mark.
func utf16LE(t *testing.T, s string) []byte {
	t.Helper()

	require.True(t, isASCII(s), "Setup: utf16LE helper only handles ASCII input")

	out := []byte{0xFF, 0xFE}
	for _, r := range s {
		out = binary.LittleEndian.AppendUint16(out, uint16(r))
	}
	return out
}

func isASCII(s string) bool {
	for _, r := range s {
		if r > 127 {
			return false
		}
	}
	return true
}
