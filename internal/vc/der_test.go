package vc

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDERRoundTrip(t *testing.T) {
	cases := map[string][]byte{
		"high bits set": append(bytes.Repeat([]byte{0xff}, 32), bytes.Repeat([]byte{0x80}, 32)...),
		"leading zeros": append(append(bytes.Repeat([]byte{0x00}, 10), bytes.Repeat([]byte{0x42}, 22)...), bytes.Repeat([]byte{0x01}, 32)...),
		"single byte values": func() []byte {
			c := make([]byte, 64)
			c[31] = 0x07
			c[63] = 0x01
			return c
		}(),
	}

	for name, compact := range cases {
		t.Run(name, func(t *testing.T) {
			der, err := compactToDER(compact)
			require.NoError(t, err)
			back, err := derToCompact(der)
			require.NoError(t, err)
			assert.Equal(t, compact, back)
		})
	}
}

func TestDERSignPadOnlyWhenHighBitSet(t *testing.T) {
	compact := make([]byte, 64)
	compact[0] = 0x80 // r has high bit set
	compact[63] = 0x01

	der, err := compactToDER(compact)
	require.NoError(t, err)

	// r integer: tag, len 33, 0x00 pad, then 32 value bytes.
	assert.Equal(t, byte(0x02), der[2])
	assert.Equal(t, byte(33), der[3])
	assert.Equal(t, byte(0x00), der[4])
	assert.Equal(t, byte(0x80), der[5])
}

func TestCompactToDERRejectsWrongLength(t *testing.T) {
	_, err := compactToDER(make([]byte, 63))
	assert.Error(t, err)
}

func TestDERToCompactRejectsMalformed(t *testing.T) {
	cases := map[string][]byte{
		"empty":            {},
		"bad sequence tag": {0x31, 0x02, 0x02, 0x00},
		"truncated":        {0x30, 0x10, 0x02, 0x01},
		"bad integer tag":  {0x30, 0x06, 0x03, 0x01, 0x01, 0x02, 0x01, 0x01},
		"trailing bytes":   {0x30, 0x06, 0x02, 0x01, 0x01, 0x02, 0x01, 0x01, 0xff},
	}
	for name, der := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := derToCompact(der)
			assert.Error(t, err)
		})
	}
}
