package endian

import (
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestNative(t *testing.T) {
	order := Native()
	require.NotNil(t, order)

	// Cross-check the probe against encoding/binary on a known value.
	buf := make([]byte, 2)
	order.PutUint16(buf, 0x0102)

	var i uint16 = 0x0102
	raw := *(*[2]byte)(unsafe.Pointer(&i))
	require.Equal(t, raw[:], buf)
}

func TestIsNativeLittleEndian(t *testing.T) {
	require.Equal(t, Native() == binary.LittleEndian, IsNativeLittleEndian())
}

func TestMatchesNative(t *testing.T) {
	if IsNativeLittleEndian() {
		require.True(t, MatchesNative(GetLittleEndianEngine()))
		require.False(t, MatchesNative(GetBigEndianEngine()))
	} else {
		require.True(t, MatchesNative(GetBigEndianEngine()))
		require.False(t, MatchesNative(GetLittleEndianEngine()))
	}
}

func TestEngines(t *testing.T) {
	le := GetLittleEndianEngine()
	be := GetBigEndianEngine()

	require.Equal(t, binary.LittleEndian, le)
	require.Equal(t, binary.BigEndian, be)

	buf := le.AppendUint32(nil, 0x01020304)
	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, buf)

	buf = be.AppendUint32(nil, 0x01020304)
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, buf)
}
