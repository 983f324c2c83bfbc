package color

import (
	"fmt"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-project-panel/internal/core/model"
)

func TestIndexIsStable(t *testing.T) {
	tests := []struct {
		identifier string
		expected   int
	}{
		{identifier: "Projeto Alfa", expected: 2},
		{identifier: "Projeto Beta", expected: 0},
		{identifier: "Portal da Transparência", expected: 1},
		{identifier: "", expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.identifier, func(t *testing.T) {
			assert.Equal(t, tt.expected, Index(tt.identifier, 10))
		})
	}

	assert.Equal(t, 0, Index("anything", 0))
}

func TestAssignIsDeterministic(t *testing.T) {
	a, err := NewAssigner(DefaultPalette, DefaultDarkenFactor)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		id := fmt.Sprintf("projeto-%d", i)
		first := a.Assign(id)
		second := a.Assign(id)
		assert.Equal(t, first, second)

		oneShot, err := Assign(id, DefaultPalette, DefaultDarkenFactor)
		require.NoError(t, err)
		assert.Equal(t, first, oneShot)
	}
}

func TestAssignUsesPaletteAndDarkens(t *testing.T) {
	pair, err := Assign("Projeto Alfa", []string{"#808080"}, 0.5)
	require.NoError(t, err)

	assert.Equal(t, "#808080", pair.Base)
	assert.Equal(t, "#404040", pair.Progress)
}

func TestAssignCollisionsAreAllowed(t *testing.T) {
	a, err := NewAssigner([]string{"#00CC96", "#636EFA"}, 0.5)
	require.NoError(t, err)

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		seen[a.Assign(fmt.Sprintf("p%d", i)).Base] = true
	}
	assert.LessOrEqual(t, len(seen), a.Size())
}

func TestNewAssignerRejectsBadPalette(t *testing.T) {
	_, err := NewAssigner(nil, 0.5)
	require.Error(t, err)
	assert.True(t, goerr.HasTag(err, model.ErrTagInvalidColorFormat))

	_, err = NewAssigner([]string{"#636EFA", "blue"}, 0.5)
	require.Error(t, err)
	assert.True(t, goerr.HasTag(err, model.ErrTagInvalidColorFormat))

	_, err = Assign("x", []string{"#12345"}, 0.5)
	assert.True(t, goerr.HasTag(err, model.ErrTagInvalidColorFormat))
}
