package facade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atsam3x/sam3hal/pkg/capability"
	"github.com/atsam3x/sam3hal/pkg/chip"
	"github.com/atsam3x/sam3hal/pkg/resolve"
)

func mustResolve(t *testing.T, variant string, rt bool) resolve.Activation {
	t.Helper()
	act, err := resolve.Resolve(resolve.Selection{Variant: variant, WantsRuntime: rt})
	require.NoError(t, err)
	return act
}

func TestComposeModules(t *testing.T) {
	tests := []struct {
		variant string
		rt      bool
		want    []string
	}{
		{"sam3a8c", false, []string{"clock", "gpio/pioab"}},
		{"sam3x8c", true, []string{"clock", "gpio/pioab", "usb", "can", "emac", "rt"}},
		{"sam3x8e", true, []string{"clock", "gpio/pioab", "gpio/piocd", "usb", "can", "emac", "rt"}},
		{"sam3x8h", false, []string{"clock", "gpio/pioab", "gpio/piocd", "gpio/pioef", "usb", "can", "emac", "sdramc"}},
	}

	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			f, err := Compose(mustResolve(t, tt.variant, tt.rt))
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Modules())
			assert.Equal(t, tt.variant, f.Variant().ID)
		})
	}
}

func TestComposeEveryPart(t *testing.T) {
	for _, v := range chip.All() {
		t.Run(v.ID, func(t *testing.T) {
			f, err := Compose(mustResolve(t, v.ID, false))
			require.NoError(t, err)
			assert.True(t, f.Has("clock"))
			assert.False(t, f.Has("rt"))
			assert.Equal(t, v.PIOGroups(), f.PIOGroups())
		})
	}
}

func TestComposeRejectsTwoGenerations(t *testing.T) {
	v, err := chip.Describe("sam3x8e")
	require.NoError(t, err)

	act := resolve.Activation{
		Variant: v,
		Tags:    v.Tags.With(capability.GenerationA),
	}
	_, err = Compose(act)
	assert.ErrorIs(t, err, ErrIncoherentTags)
}

func TestComposeRejectsMissingPackage(t *testing.T) {
	v, err := chip.Describe("sam3x8e")
	require.NoError(t, err)

	act := resolve.Activation{
		Variant: v,
		Tags:    v.Tags.Without(capability.PackageClass2),
	}
	_, err = Compose(act)
	assert.ErrorIs(t, err, ErrIncoherentTags)
}

func TestComposeRejectsMissingPeripheral(t *testing.T) {
	c := MustCatalogue(Module{
		Name:        "sdramc",
		Constraint:  "sam3x",
		Peripherals: []chip.PeripheralID{chip.IDSdramc},
	})
	_, err := c.Compose(mustResolve(t, "sam3x8e", false))
	assert.ErrorIs(t, err, ErrIncoherentTags)
	assert.Contains(t, err.Error(), "sdramc")
}

func TestModuleBuildLine(t *testing.T) {
	m, ok := DefaultCatalogue().Module("gpio/piocd")
	require.True(t, ok)
	assert.Equal(t, "//go:build sam3_e", m.BuildLine())

	m, ok = DefaultCatalogue().Module("clock")
	require.True(t, ok)
	assert.Equal(t, "//go:build sam3_c || sam3_e", m.BuildLine())
	assert.True(t, m.Enabled([]string{"sam3_c"}))
	assert.False(t, m.Enabled([]string{"sam3x"}))
}

func TestNewCatalogueErrors(t *testing.T) {
	_, err := NewCatalogue(Module{Name: "bad", Constraint: "sam3x &&"})
	assert.ErrorIs(t, err, ErrInvalidCatalogue)

	_, err = NewCatalogue(Module{Name: "a", Constraint: "rt"}, Module{Name: "a", Constraint: "rt"})
	assert.ErrorIs(t, err, ErrInvalidCatalogue)

	_, err = NewCatalogue(Module{Constraint: "rt"})
	assert.ErrorIs(t, err, ErrInvalidCatalogue)
}
