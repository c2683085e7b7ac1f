package dnstype_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blazskufca/goresolve/internal/dnstype"
)

func TestString(t *testing.T) {
	cases := []struct {
		in   dnstype.Type
		want string
	}{
		{dnstype.A, "A"},
		{dnstype.NS, "NS"},
		{dnstype.CNAME, "CNAME"},
		{dnstype.MX, "MX"},
		{dnstype.AAAA, "AAAA"},
		{dnstype.Type(99), "TYPE99"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.in.String())
	}
}

func TestKnown(t *testing.T) {
	assert.True(t, dnstype.A.Known())
	assert.False(t, dnstype.Type(999).Known())
}

func TestParseType(t *testing.T) {
	got, err := dnstype.ParseType("AAAA")
	require.NoError(t, err)
	assert.Equal(t, dnstype.AAAA, got)

	_, err = dnstype.ParseType("PTR")
	require.Error(t, err)
}
