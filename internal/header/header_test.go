package header_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blazskufca/goresolve/internal/header"
)

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	h := header.Header{
		ID:      818,
		QR:      false,
		Opcode:  header.Query,
		RD:      true,
		QDCOUNT: 1,
	}

	buf, err := h.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, buf, header.Size)

	got, err := header.Unmarshal(buf)
	require.NoError(t, err)
	assert.Equal(t, h, got)
}

func TestMarshalExactBytes(t *testing.T) {
	h := header.Header{ID: 818, RD: true, QDCOUNT: 1}
	buf, err := h.MarshalBinary()
	require.NoError(t, err)

	want := []byte{0x03, 0x32, 0x01, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	assert.Equal(t, want, buf)
}

func TestUnmarshalTooShort(t *testing.T) {
	_, err := header.Unmarshal(make([]byte, 11))
	require.Error(t, err)
}

func TestUnmarshalNormalizesReservedRCODE(t *testing.T) {
	buf := make([]byte, header.Size)
	buf[3] = 0x0C // rcode = 12, reserved
	got, err := header.Unmarshal(buf)
	require.NoError(t, err)
	assert.Equal(t, header.NoError, got.RCODE)
}

func TestFlagBitsIndependent(t *testing.T) {
	h := header.Header{Z: true}
	buf, err := h.MarshalBinary()
	require.NoError(t, err)

	got, err := header.Unmarshal(buf)
	require.NoError(t, err)
	assert.True(t, got.Z)
	assert.False(t, got.AD)
	assert.False(t, got.CD)
	assert.False(t, got.RA)
}

func TestSetRandomIDVaries(t *testing.T) {
	var h1, h2 header.Header
	require.NoError(t, h1.SetRandomID())
	require.NoError(t, h2.SetRandomID())
	assert.NotEqual(t, h1.ID, h2.ID, "should be extremely unlikely to collide")
}

func TestRCODEString(t *testing.T) {
	assert.Equal(t, "NOERROR", header.NoError.String())
	assert.Equal(t, "NXDOMAIN", header.NameError.String())
	assert.Equal(t, "NOERROR", header.ResponseCode(9).String())
}
