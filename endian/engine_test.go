package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetEngines(t *testing.T) {
	require.Equal(t, binary.LittleEndian, GetLittleEndianEngine())
	require.Equal(t, binary.BigEndian, GetBigEndianEngine())
}

func TestEngineRoundTrip(t *testing.T) {
	for _, engine := range []EndianEngine{GetLittleEndianEngine(), GetBigEndianEngine()} {
		buf := engine.AppendUint32(nil, 0xDEADBEEF)
		require.Len(t, buf, 4)
		require.Equal(t, uint32(0xDEADBEEF), engine.Uint32(buf))

		buf = engine.AppendUint64(nil, 0x0123456789ABCDEF)
		require.Len(t, buf, 8)
		require.Equal(t, uint64(0x0123456789ABCDEF), engine.Uint64(buf))
	}
}
