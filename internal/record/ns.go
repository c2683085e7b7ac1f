package record

import (
	"fmt"

	"github.com/blazskufca/goresolve/internal/dnstype"
	"github.com/blazskufca/goresolve/internal/name"
)

// NS delegates authority for Name to NameServer.
type NS struct {
	Name       string
	TTL        uint32
	NameServer string
}

func (r NS) Owner() string        { return r.Name }
func (r NS) RRType() dnstype.Type { return dnstype.NS }
func (r NS) RRTTL() uint32        { return r.TTL }
func (r NS) String() string       { return fmt.Sprintf("%s NS %s", r.Name, r.NameServer) }

func (r NS) rdata() ([]byte, error) {
	return name.Encode(r.NameServer)
}
