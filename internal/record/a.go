package record

import (
	"fmt"
	"net"

	"github.com/blazskufca/goresolve/internal/dnstype"
)

// A is an IPv4 host-address record.
type A struct {
	Name    string
	TTL     uint32
	Address net.IP
}

func (r A) Owner() string          { return r.Name }
func (r A) RRType() dnstype.Type   { return dnstype.A }
func (r A) RRTTL() uint32          { return r.TTL }
func (r A) String() string         { return fmt.Sprintf("%s A %s", r.Name, r.Address) }

func (r A) rdata() ([]byte, error) {
	v4 := r.Address.To4()
	if v4 == nil {
		return nil, fmt.Errorf("A record: %s is not an IPv4 address", r.Address)
	}
	return v4, nil
}

func decodeA(owner string, ttl uint32, rdata []byte) (Record, error) {
	if len(rdata) != net.IPv4len {
		return nil, fmt.Errorf("A rdata: expected %d bytes, got %d", net.IPv4len, len(rdata))
	}
	return A{Name: owner, TTL: ttl, Address: net.IPv4(rdata[0], rdata[1], rdata[2], rdata[3])}, nil
}
