package log

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activationEvent(build, variant string, at time.Time) Event {
	return Event{
		Timestamp: at,
		BuildID:   build,
		Category:  CategoryActivation,
		Board:     "arduino-due",
		Variant:   variant,
		Activation: &ActivationEvent{
			Tags:        []string{"sam3x", "sam3_e", "rt"},
			PAC:         "atsam3x8e",
			RuntimeShim: true,
			Fingerprint: "abcd",
		},
	}
}

func TestEncodeDecodeEvent(t *testing.T) {
	ev := activationEvent("b1", "sam3x8e", time.Date(2026, 1, 2, 3, 4, 5, 6, time.UTC))

	data, err := EncodeEvent(ev)
	require.NoError(t, err)

	got, err := DecodeEvent(data)
	require.NoError(t, err)
	assert.True(t, ev.Timestamp.Equal(got.Timestamp))
	assert.Equal(t, ev.Activation, got.Activation)
	assert.Equal(t, "sam3x8e", got.Variant)
	assert.Nil(t, got.Rejection)
}

func TestFileLoggerAndReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resolve.rlog")

	logger, err := NewFileLogger(path)
	require.NoError(t, err)

	base := time.Now()
	logger.Log(Event{Timestamp: base, BuildID: "b1", Category: CategorySelection, Variant: "sam3x8e", Selection: &SelectionEvent{WantsRuntime: true}})
	logger.Log(activationEvent("b1", "sam3x8e", base.Add(time.Millisecond)))
	logger.Log(Event{Timestamp: base.Add(2 * time.Millisecond), BuildID: "b2", Category: CategoryRejection, Variant: "nope",
		Rejection: &RejectionEvent{Kind: "UnknownVariant", Message: `unknown variant: "nope"`}})
	require.NoError(t, logger.Close())
	require.NoError(t, logger.Err())

	// events after close are dropped
	logger.Log(activationEvent("b3", "sam3x8e", base))
	require.NoError(t, logger.Close())

	r, err := NewReader(path)
	require.NoError(t, err)
	events, err := r.ReadAll()
	require.NoError(t, err)
	require.NoError(t, r.Close())
	require.Len(t, events, 3)
	assert.Equal(t, CategorySelection, events[0].Category)
	assert.True(t, events[0].Selection.WantsRuntime)
	assert.Equal(t, "UnknownVariant", events[2].Rejection.Kind)

	cat := CategoryRejection
	r, err = NewFilteredReader(path, Filter{Category: &cat})
	require.NoError(t, err)
	defer r.Close()
	ev, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "b2", ev.BuildID)
	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestFileLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resolve.rlog")
	for i := 0; i < 2; i++ {
		l, err := NewFileLogger(path)
		require.NoError(t, err)
		l.Log(activationEvent("b", "sam3x8e", time.Now()))
		require.NoError(t, l.Close())
	}

	r, err := NewReader(path)
	require.NoError(t, err)
	defer r.Close()
	events, err := r.ReadAll()
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestFileLoggerConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resolve.rlog")
	l, err := NewFileLogger(path)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				l.Log(activationEvent("b", "sam3x8e", time.Now()))
			}
		}()
	}
	wg.Wait()
	require.NoError(t, l.Close())

	r, err := NewReader(path)
	require.NoError(t, err)
	defer r.Close()
	events, err := r.ReadAll()
	require.NoError(t, err)
	assert.Len(t, events, 80)
}

func TestFilterMatches(t *testing.T) {
	now := time.Now()
	ev := activationEvent("b1", "sam3x8e", now)
	later := now.Add(time.Second)
	act := CategoryActivation
	rej := CategoryRejection

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"empty", Filter{}, true},
		{"build", Filter{BuildID: "b1"}, true},
		{"other build", Filter{BuildID: "b2"}, false},
		{"board", Filter{Board: "arduino-due"}, true},
		{"variant", Filter{Variant: "sam3a4c"}, false},
		{"category", Filter{Category: &act}, true},
		{"other category", Filter{Category: &rej}, false},
		{"before start", Filter{TimeStart: &later}, false},
		{"end exclusive", Filter{TimeEnd: &now}, false},
		{"inside window", Filter{TimeEnd: &later}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(ev))
		})
	}
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	a := NewSlogAdapter(logger)

	a.Log(activationEvent("b1", "sam3x8e", time.Now()))
	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "category=ACTIVATION")
	assert.Contains(t, out, "tags=sam3x,sam3_e,rt")
	assert.Contains(t, out, "pac=atsam3x8e")

	buf.Reset()
	a.Log(Event{Category: CategoryRejection, Rejection: &RejectionEvent{Kind: "RuntimeUnsupported", Message: "no rt"}})
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "kind=RuntimeUnsupported")
}

type recordingLogger struct {
	mu     sync.Mutex
	events []Event
}

func (r *recordingLogger) Log(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func TestMultiLogger(t *testing.T) {
	a, b := &recordingLogger{}, &recordingLogger{}
	m := NewMultiLogger(a, nil, b, NoopLogger{})

	m.Log(activationEvent("b1", "sam3x8e", time.Now()))
	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 1)
}

func TestParseCategory(t *testing.T) {
	for c := CategorySelection; c <= CategoryCheck; c++ {
		got, ok := ParseCategory(c.String())
		require.True(t, ok)
		assert.Equal(t, c, got)
	}
	_, ok := ParseCategory("NOPE")
	assert.False(t, ok)
	assert.Equal(t, "UNKNOWN", Category(9).String())
}

func TestNewFileLoggerBadPath(t *testing.T) {
	_, err := NewFileLogger(filepath.Join(t.TempDir(), "missing", "x.rlog"))
	assert.True(t, os.IsNotExist(err))
}
