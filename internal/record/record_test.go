package record_test

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blazskufca/goresolve/internal/dnstype"
	"github.com/blazskufca/goresolve/internal/record"
)

func TestEncodeDecodeA(t *testing.T) {
	r := record.A{Name: "google.com", TTL: 300, Address: net.IPv4(142, 250, 64, 78)}
	buf, err := record.Encode(r)
	require.NoError(t, err)

	got, n, err := record.Decode(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)

	a, ok := got.(record.A)
	require.True(t, ok)
	assert.Equal(t, "google.com", a.Owner())
	assert.Equal(t, dnstype.A, a.RRType())
	assert.Equal(t, uint32(300), a.RRTTL())
	assert.True(t, a.Address.Equal(net.IPv4(142, 250, 64, 78)))
}

func TestEncodeDecodeAAAA(t *testing.T) {
	addr := net.ParseIP("2001:db8::1")
	r := record.AAAA{Name: "v6.example.com", TTL: 60, Address: addr}
	buf, err := record.Encode(r)
	require.NoError(t, err)

	got, n, err := record.Decode(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)

	aaaa, ok := got.(record.AAAA)
	require.True(t, ok)
	assert.True(t, aaaa.Address.Equal(addr))
}

func TestEncodeDecodeNS(t *testing.T) {
	r := record.NS{Name: "com", TTL: 172800, NameServer: "a.gtld-servers.net"}
	buf, err := record.Encode(r)
	require.NoError(t, err)

	got, n, err := record.Decode(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	ns, ok := got.(record.NS)
	require.True(t, ok)
	assert.Equal(t, "a.gtld-servers.net", ns.NameServer)
}

func TestEncodeDecodeCNAME(t *testing.T) {
	r := record.CNAME{Name: "www.example.com", TTL: 3600, Target: "example.com"}
	buf, err := record.Encode(r)
	require.NoError(t, err)

	got, _, err := record.Decode(buf, 0)
	require.NoError(t, err)
	c, ok := got.(record.CNAME)
	require.True(t, ok)
	assert.Equal(t, "example.com", c.Target)
}

func TestEncodeDecodeMX(t *testing.T) {
	r := record.MX{Name: "example.com", TTL: 3600, Preference: 10, Exchange: "mail.example.com"}
	buf, err := record.Encode(r)
	require.NoError(t, err)

	got, n, err := record.Decode(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	mx, ok := got.(record.MX)
	require.True(t, ok)
	assert.Equal(t, uint16(10), mx.Preference)
	assert.Equal(t, "mail.example.com", mx.Exchange)
}

func TestDecodeUnknown(t *testing.T) {
	r := record.Unknown{Name: "example.com", TTL: 60, QType: dnstype.Type(99), Data: []byte{1, 2, 3}}
	buf, err := record.Encode(r)
	require.NoError(t, err)

	got, _, err := record.Decode(buf, 0)
	require.NoError(t, err)
	u, ok := got.(record.Unknown)
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, u.Data)
	assert.Equal(t, dnstype.Type(99), u.QType)
}

func TestEncodeRejectsNonIPv4ForA(t *testing.T) {
	r := record.A{Name: "example.com", TTL: 60, Address: net.ParseIP("2001:db8::1")}
	_, err := record.Encode(r)
	require.Error(t, err)
}

func TestDecodeRejectsTruncatedRDATA(t *testing.T) {
	r := record.A{Name: "example.com", TTL: 60, Address: net.IPv4(1, 2, 3, 4)}
	buf, err := record.Encode(r)
	require.NoError(t, err)
	_, _, err = record.Decode(buf[:len(buf)-2], 0)
	require.Error(t, err)
}
