package fragment_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/nspcc-dev/neofs-frag/pkg/fragment"
	"github.com/stretchr/testify/require"
)

func TestEncodeHeader(t *testing.T) {
	for _, tc := range []struct {
		seq uint32
		exp [fragment.HeaderSize]byte
	}{
		{seq: 0, exp: [4]byte{0, 0, 0, 0}},
		{seq: 1, exp: [4]byte{1, 0, 0, 0}},
		{seq: 255, exp: [4]byte{255, 0, 0, 0}},
		{seq: 256, exp: [4]byte{0, 1, 0, 0}},
		{seq: 50417721, exp: [4]byte{57, 80, 1, 3}},
		{seq: math.MaxUint32, exp: [4]byte{255, 255, 255, 255}},
	} {
		require.Equal(t, tc.exp, fragment.EncodeHeader(tc.seq), tc.seq)
	}
}

func TestDecodeHeader(t *testing.T) {
	require.EqualValues(t, 167772160, fragment.DecodeHeader([4]byte{0, 0, 0, 10}))
	require.EqualValues(t, 16908543, fragment.DecodeHeader([4]byte{255, 0, 2, 1}))
	require.EqualValues(t, 25, fragment.DecodeHeader([4]byte{25, 0, 0, 0}))
}

func TestHeaderRoundTrip(t *testing.T) {
	check := func(n uint32) {
		require.Equal(t, n, fragment.DecodeHeader(fragment.EncodeHeader(n)))
	}

	for _, n := range []uint32{0, 1, 255, 256, 65535, 65536, 1<<24 - 1, 1 << 24, math.MaxUint32 - 1, math.MaxUint32} {
		check(n)
	}
	for i := 0; i < 10000; i++ {
		check(rand.Uint32())
	}
}
