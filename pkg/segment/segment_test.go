package segment

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	for v := 0; v <= 9; v++ {
		require.Equal(t, v, Index(v))
		require.Equal(t, Table[v], Lookup(v))
	}
	for _, v := range []int{-48, -1, 10, 17, 127} {
		require.Equal(t, FallbackIndex, Index(v))
		require.Equal(t, Pattern(0x79), Lookup(v))
	}
	require.Equal(t, Pattern(0x4F), Lookup(3))
}

func TestShowClearsPreviousDigit(t *testing.T) {
	var port Port
	Show(&port, Lookup(8))
	require.Equal(t, Pattern(0x7F), port.Pattern())
	Show(&port, Lookup(1))
	require.Equal(t, Pattern(0x06), port.Pattern())
}

func TestShowIdempotent(t *testing.T) {
	for v := 0; v <= FallbackIndex; v++ {
		var once, twice Port
		Show(&once, Lookup(v))
		Show(&twice, Lookup(v))
		Show(&twice, Lookup(v))
		require.Equal(t, once.Pattern(), twice.Pattern())
	}
}

func TestPortWithoutClearAccumulates(t *testing.T) {
	var port Port
	port.SetPattern(Lookup(1))
	port.SetPattern(Lookup(7))
	require.Equal(t, Pattern(0x07), port.Pattern())
	port.SetPattern(Lookup(4))
	require.Equal(t, Pattern(0x67), port.Pattern())
	require.Equal(t, 3, port.Writes())
}

func TestRender(t *testing.T) {
	require.Equal(t, " _ \n| |\n|_| \n", string(Render(Lookup(0))))
	require.Equal(t, "   \n  |\n  | \n", string(Render(Lookup(1))))
	require.Equal(t, " _ \n|_ \n|_  \n", string(Render(Lookup(-1))))
	require.Equal(t, "   \n   \n   .\n", string(Render(SegDP)))
}

func TestMultiAndTerminal(t *testing.T) {
	var port Port
	var buf bytes.Buffer
	Show(Multi{&port, NewTerminal(&buf)}, Lookup(3))
	require.Equal(t, Pattern(0x4F), port.Pattern())
	require.Equal(t, string(Render(Lookup(3))), buf.String())
}
