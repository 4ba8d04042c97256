package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStyle(t *testing.T) {
	s, err := ParseStyle(" Rounded ")
	require.NoError(t, err)
	assert.Equal(t, StyleRounded, s)

	_, err = ParseStyle("fancy")
	require.Error(t, err)
}

func TestStyleNextWraps(t *testing.T) {
	assert.Equal(t, StyleBoxes, StyleText.Next())
	assert.Equal(t, StyleRounded, StyleBoxes.Next())
	assert.Equal(t, StyleText, StyleRounded.Next())
}

func TestParseDiscipline(t *testing.T) {
	d, err := ParseDiscipline("hold")
	require.NoError(t, err)
	assert.Equal(t, DisciplineHold, d)
	assert.Equal(t, "hold", d.String())
	assert.Equal(t, DisciplineImmediate, d.Next())

	_, err = ParseDiscipline("tap")
	require.Error(t, err)
}
