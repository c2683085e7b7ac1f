package record

import (
	"fmt"

	"github.com/blazskufca/goresolve/internal/dnstype"
	"github.com/blazskufca/goresolve/internal/name"
)

// CNAME aliases Name to the canonical Target.
type CNAME struct {
	Name   string
	TTL    uint32
	Target string
}

func (r CNAME) Owner() string        { return r.Name }
func (r CNAME) RRType() dnstype.Type { return dnstype.CNAME }
func (r CNAME) RRTTL() uint32        { return r.TTL }
func (r CNAME) String() string       { return fmt.Sprintf("%s CNAME %s", r.Name, r.Target) }

func (r CNAME) rdata() ([]byte, error) {
	return name.Encode(r.Target)
}
