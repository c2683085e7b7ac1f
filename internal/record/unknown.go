package record

import (
	"fmt"

	"github.com/blazskufca/goresolve/internal/dnstype"
)

// Unknown carries a record of a type this resolver doesn't interpret
// structurally. Its RDATA passes through unparsed so the record can still
// be logged or re-encoded verbatim.
type Unknown struct {
	Name  string
	TTL   uint32
	QType dnstype.Type
	Data  []byte
}

func (r Unknown) Owner() string        { return r.Name }
func (r Unknown) RRType() dnstype.Type { return r.QType }
func (r Unknown) RRTTL() uint32        { return r.TTL }
func (r Unknown) String() string {
	return fmt.Sprintf("%s %s <%d bytes>", r.Name, r.QType, len(r.Data))
}

func (r Unknown) rdata() ([]byte, error) {
	return r.Data, nil
}
