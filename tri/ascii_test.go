package tri

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/fortgo/array"
)

func TestWriteASCII(t *testing.T) {
	tr := newSquare(t)

	var buf bytes.Buffer
	require.NoError(t, WriteASCII(&buf, tr))

	want := "" +
		"           4           2\n" +
		"+0.00000000E+00 +0.00000000E+00 +0.00000000E+00\n" +
		"+1.00000000E+00 +0.00000000E+00 +0.00000000E+00\n" +
		"+1.00000000E+00 +1.00000000E+00 +0.00000000E+00\n" +
		"+0.00000000E+00 +1.00000000E+00 +0.00000000E+00\n" +
		"1 2 3\n" +
		"1 3 4\n" +
		"1\n" +
		"2\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteASCIIWithoutCompIDs(t *testing.T) {
	tr := newSquare(t)
	tr.CompID = nil

	var buf bytes.Buffer
	require.NoError(t, WriteASCII(&buf, tr))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 1+4+2)
}

func TestWriteASCIIPlanar(t *testing.T) {
	tr := newSquare(t)
	var err error
	tr.Nodes, err = array.New([]float64{0, 0, 1, 0, 1, 1, 0, 1}, 4, 2)
	require.NoError(t, err)
	tr.CompID = nil

	var buf bytes.Buffer
	require.NoError(t, WriteASCII(&buf, tr))

	assert.Contains(t, buf.String(), "+1.00000000E+00 +0.00000000E+00\n")
}

func TestWriteASCIIQ(t *testing.T) {
	tr := newSquare(t)
	var err error
	tr.Q, err = array.New([]float64{
		0.5, -0.25,
		1.5, 0.0,
		2.5, 0.125,
		3.5, -1.0,
	}, 4, 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteASCIIQ(&buf, tr))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "           4           2   2\n"))

	// Each node state splits across two lines, leading value first.
	assert.Contains(t, out, "0.500000\n -0.250000\n")
	assert.Contains(t, out, "3.500000\n -1.000000\n")
}

func TestWriteASCIIQWithoutState(t *testing.T) {
	tr := newSquare(t)

	var buf bytes.Buffer
	assert.Error(t, WriteASCIIQ(&buf, tr))
}

func TestWriteSTL(t *testing.T) {
	tr := newSquare(t)

	var buf bytes.Buffer
	require.NoError(t, WriteSTL(&buf, tr))

	want := "" +
		"solid\n" +
		"   facet normal    0.00  0.00  1.00\n" +
		"      outer loop\n" +
		"         vertex    0.00  0.00  0.00\n" +
		"         vertex    1.00  0.00  0.00\n" +
		"         vertex    1.00  1.00  0.00\n" +
		"      endloop\n" +
		"   endfacet\n" +
		"   facet normal    0.00  0.00  1.00\n" +
		"      outer loop\n" +
		"         vertex    0.00  0.00  0.00\n" +
		"         vertex    1.00  1.00  0.00\n" +
		"         vertex    0.00  1.00  0.00\n" +
		"      endloop\n" +
		"   endfacet\n" +
		"endsolid\n"
	assert.Equal(t, want, buf.String())
}
