package translation

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{err: nil, want: false},
		{err: errors.New("json.Unmarshal(abc) > invalid character"), want: true},
		{err: errors.New("unexpected end of JSON input"), want: true},
		{err: errors.New("dial tcp: connection refused"), want: true},
		{err: errors.New("read: i/o timeout"), want: true},
		{err: errors.New("response error 503: unavailable"), want: true},
		{err: errors.New("response error 429: slow down"), want: true},
		{err: errors.New("response error 400: bad request"), want: false},
		{err: ErrNotConfigured, want: false},
	}

	for _, tt := range tests {
		name := "nil"
		if tt.err != nil {
			name = tt.err.Error()
		}
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestRetry(t *testing.T) {
	tests := []struct {
		name      string
		attempts  uint
		errs      []error
		wantCalls int
		wantErr   bool
	}{
		{
			name:      "succeeds first time",
			attempts:  2,
			errs:      []error{nil},
			wantCalls: 1,
		},
		{
			name:      "retries retryable errors",
			attempts:  2,
			errs:      []error{fmt.Errorf("response error 500: oops"), nil},
			wantCalls: 2,
		},
		{
			name:      "stops on a non-retryable error",
			attempts:  2,
			errs:      []error{fmt.Errorf("response error 403: forbidden")},
			wantCalls: 1,
			wantErr:   true,
		},
		{
			name:     "gives up after the retry budget",
			attempts: 1,
			errs: []error{
				fmt.Errorf("response error 500: oops"),
				fmt.Errorf("response error 500: oops"),
			},
			wantCalls: 2,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Retry(context.Background(), tt.attempts, func() error {
				err := tt.errs[calls]
				calls++
				return err
			})
			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
