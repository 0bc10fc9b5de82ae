package resolve

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/atsam3x/sam3hal/pkg/capability"
	"github.com/atsam3x/sam3hal/pkg/chip"
	"github.com/atsam3x/sam3hal/pkg/log"
	"github.com/atsam3x/sam3hal/pkg/log/mocks"
)

type recorder struct {
	mu     sync.Mutex
	events []log.Event
}

func (r *recorder) Log(e log.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) categories() []log.Category {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]log.Category, len(r.events))
	for i, e := range r.events {
		out[i] = e.Category
	}
	return out
}

func TestResolveWithRuntime(t *testing.T) {
	act, err := Resolve(Selection{Variant: "sam3x8e", WantsRuntime: true})
	require.NoError(t, err)

	assert.Equal(t, capability.NewSet(capability.GenerationB, capability.PackageClass2, capability.RuntimePresence), act.Tags)
	assert.True(t, act.RuntimeShim)
	assert.Equal(t, "atsam3x8e", act.PAC().Name)
	assert.Equal(t, []string{"sam3x8e", "sam3x", "sam3_e", "rt"}, act.BuildTags())
	assert.Equal(t, "-tags=sam3x8e,sam3x,sam3_e,rt", act.GoFlags())

	pkgs := act.Packages()
	require.Len(t, pkgs, 2)
	assert.Equal(t, PackagePAC, pkgs[0].Kind)
	assert.Equal(t, PackageRuntime, pkgs[1].Kind)
}

func TestResolveWithoutRuntime(t *testing.T) {
	act, err := Resolve(Selection{Variant: "sam3a8c"})
	require.NoError(t, err)

	assert.Equal(t, capability.NewSet(capability.GenerationA, capability.PackageClass1), act.Tags)
	assert.False(t, act.RuntimeShim)
	assert.Len(t, act.Packages(), 1)
	assert.Equal(t, act.Intrinsic(), act.Tags)
}

func TestResolveEveryPartIsSupersetOfIntrinsic(t *testing.T) {
	for _, v := range chip.All() {
		for _, rt := range []bool{false, true} {
			sel := Selection{Variant: v.ID, WantsRuntime: rt}
			t.Run(sel.String(), func(t *testing.T) {
				act, err := Resolve(sel)
				if rt && !v.SupportsRuntime() {
					assert.ErrorIs(t, err, ErrRuntimeUnsupported)
					return
				}
				require.NoError(t, err)
				assert.True(t, act.Tags.IsSupersetOf(v.Tags))
				assert.Equal(t, rt, act.Tags.Contains(capability.RuntimePresence))
				assert.Equal(t, sel, act.Selection())
			})
		}
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	sel := Selection{Variant: "sam3x4e", WantsRuntime: true}
	a, err := Resolve(sel)
	require.NoError(t, err)
	b, err := Resolve(sel)
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestFingerprintDistinguishesActivations(t *testing.T) {
	a, err := Resolve(Selection{Variant: "sam3x8e"})
	require.NoError(t, err)
	b, err := Resolve(Selection{Variant: "sam3x8e", WantsRuntime: true})
	require.NoError(t, err)
	c, err := Resolve(Selection{Variant: "sam3x4e"})
	require.NoError(t, err)

	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
	assert.Len(t, a.Fingerprint(), 32)
}

func TestResolveUnknownVariant(t *testing.T) {
	_, err := Resolve(Selection{Variant: "nonexistent-part"})
	require.Error(t, err)
	assert.ErrorIs(t, err, chip.ErrUnknownVariant)
	assert.Equal(t, "UnknownVariant", Kind(err))
}

func TestResolveRuntimeUnsupported(t *testing.T) {
	_, err := Resolve(Selection{Variant: "sam3x8h", WantsRuntime: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRuntimeUnsupported)

	var rerr *RuntimeUnsupportedError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, "sam3x8h", rerr.Variant)
	assert.Equal(t, "atsam3x8h", rerr.PAC)
	assert.Equal(t, "RuntimeUnsupported", Kind(err))

	// The same part without the runtime resolves.
	_, err = Resolve(Selection{Variant: "sam3x8h"})
	assert.NoError(t, err)
}

func TestResolveBuild(t *testing.T) {
	r := Default()

	t.Run("repeated selection", func(t *testing.T) {
		sel := Selection{Variant: "sam3x8e", WantsRuntime: true}
		act, err := r.ResolveBuild(sel, sel, sel)
		require.NoError(t, err)
		assert.Equal(t, "sam3x8e", act.Variant.ID)
	})

	t.Run("two variants", func(t *testing.T) {
		_, err := r.ResolveBuild(Selection{Variant: "sam3x8e"}, Selection{Variant: "sam3a8c"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConflictingVariants)

		var cerr *ConflictingVariantsError
		require.True(t, errors.As(err, &cerr))
		assert.Len(t, cerr.Selections, 2)
		assert.Contains(t, err.Error(), "sam3x8e vs sam3a8c")
	})

	t.Run("runtime mismatch", func(t *testing.T) {
		_, err := r.ResolveBuild(Selection{Variant: "sam3x8e"}, Selection{Variant: "sam3x8e", WantsRuntime: true})
		assert.ErrorIs(t, err, ErrConflictingVariants)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := r.ResolveBuild()
		assert.ErrorIs(t, err, ErrNoSelection)
	})
}

func TestResolverLogsEvents(t *testing.T) {
	rec := &recorder{}
	r, err := New(chip.Default(), Config{Logger: rec, BuildID: "build-1"})
	require.NoError(t, err)
	r = r.ForBoard("arduino-due")

	_, err = r.Resolve(Selection{Variant: "sam3x8e", WantsRuntime: true})
	require.NoError(t, err)
	_, err = r.Resolve(Selection{Variant: "bogus"})
	require.Error(t, err)

	assert.Equal(t, []log.Category{
		log.CategorySelection, log.CategoryActivation,
		log.CategorySelection, log.CategoryRejection,
	}, rec.categories())

	act := rec.events[1]
	assert.Equal(t, "build-1", act.BuildID)
	assert.Equal(t, "arduino-due", act.Board)
	require.NotNil(t, act.Activation)
	assert.Equal(t, []string{"sam3x", "sam3_e", "rt"}, act.Activation.Tags)
	assert.Equal(t, "atsam3x8e", act.Activation.PAC)

	rej := rec.events[3]
	require.NotNil(t, rej.Rejection)
	assert.Equal(t, "UnknownVariant", rej.Rejection.Kind)
}

func TestResolverWithMockLogger(t *testing.T) {
	m := mocks.NewMockLogger(t)
	m.EXPECT().Log(mock.MatchedBy(func(e log.Event) bool {
		return e.Category == log.CategorySelection
	})).Once()
	m.EXPECT().Log(mock.MatchedBy(func(e log.Event) bool {
		return e.Category == log.CategoryRejection && e.Rejection.Kind == "RuntimeUnsupported"
	})).Once()

	r, err := New(chip.Default(), Config{Logger: m})
	require.NoError(t, err)
	_, err = r.Resolve(Selection{Variant: "sam3x8h", WantsRuntime: true})
	assert.ErrorIs(t, err, ErrRuntimeUnsupported)
}

func TestNewRejectsBrokenTable(t *testing.T) {
	broken := chip.MustTable(chip.Variant{
		ID:   "sam3x8e",
		Tags: capability.NewSet(capability.GenerationA, capability.GenerationB, capability.PackageClass2),
		PAC:  chip.PAC{Name: "atsam3x8e"},
	})

	rec := &recorder{}
	_, err := New(broken, Config{Logger: rec})
	require.Error(t, err)
	assert.NotEmpty(t, rec.events)
	for _, e := range rec.events {
		assert.Equal(t, log.CategoryCheck, e.Category)
	}
	assert.Panics(t, func() { MustNew(broken, Config{}) })
}

func TestDefaultResolverIsBuiltAtInit(t *testing.T) {
	assert.Same(t, Default(), Default())
	assert.Same(t, chip.Default(), Default().Table())
	assert.NotPanics(t, func() { MustNew(chip.Default(), Config{}) })
}

func TestDefaultBuildIDIsUUID(t *testing.T) {
	r, err := New(chip.Default(), Config{})
	require.NoError(t, err)
	assert.Len(t, r.BuildID(), 36)
}

func TestParseSelection(t *testing.T) {
	tests := []struct {
		in      string
		want    Selection
		wantErr bool
	}{
		{in: "sam3x8e", want: Selection{Variant: "sam3x8e"}},
		{in: "sam3x8e+rt", want: Selection{Variant: "sam3x8e", WantsRuntime: true}},
		{in: "+rt", wantErr: true},
		{in: "", wantErr: true},
		{in: "sam3x8e+usb", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSelection(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}
