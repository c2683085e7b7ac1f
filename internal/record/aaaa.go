package record

import (
	"fmt"
	"net"

	"github.com/blazskufca/goresolve/internal/dnstype"
)

// AAAA is an IPv6 host-address record.
type AAAA struct {
	Name    string
	TTL     uint32
	Address net.IP
}

func (r AAAA) Owner() string        { return r.Name }
func (r AAAA) RRType() dnstype.Type { return dnstype.AAAA }
func (r AAAA) RRTTL() uint32        { return r.TTL }
func (r AAAA) String() string       { return fmt.Sprintf("%s AAAA %s", r.Name, r.Address) }

func (r AAAA) rdata() ([]byte, error) {
	v6 := r.Address.To16()
	if v6 == nil {
		return nil, fmt.Errorf("AAAA record: %s is not a valid address", r.Address)
	}
	return v6, nil
}

func decodeAAAA(owner string, ttl uint32, rdata []byte) (Record, error) {
	if len(rdata) != net.IPv6len {
		return nil, fmt.Errorf("AAAA rdata: expected %d bytes, got %d", net.IPv6len, len(rdata))
	}
	addr := make(net.IP, net.IPv6len)
	copy(addr, rdata)
	return AAAA{Name: owner, TTL: ttl, Address: addr}, nil
}
