package record

import (
	"encoding/binary"
	"fmt"

	"github.com/blazskufca/goresolve/internal/dnstype"
	"github.com/blazskufca/goresolve/internal/name"
)

// MX names a mail exchange for Name, ranked by Preference (lower wins).
type MX struct {
	Name       string
	TTL        uint32
	Preference uint16
	Exchange   string
}

func (r MX) Owner() string        { return r.Name }
func (r MX) RRType() dnstype.Type { return dnstype.MX }
func (r MX) RRTTL() uint32        { return r.TTL }
func (r MX) String() string {
	return fmt.Sprintf("%s MX %d %s", r.Name, r.Preference, r.Exchange)
}

func (r MX) rdata() ([]byte, error) {
	exchangeBytes, err := name.Encode(r.Exchange)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, 2+len(exchangeBytes))
	binary.BigEndian.PutUint16(buf, r.Preference)
	copy(buf[2:], exchangeBytes)
	return buf, nil
}

func decodeMX(owner string, ttl uint32, packet []byte, rdataStart int, rdata []byte) (Record, error) {
	if len(rdata) < 3 {
		return nil, fmt.Errorf("MX rdata: too short (%d bytes)", len(rdata))
	}
	preference := binary.BigEndian.Uint16(rdata[:2])
	exchange, _, err := name.Decode(packet, rdataStart+2)
	if err != nil {
		return nil, fmt.Errorf("MX rdata: %w", err)
	}
	return MX{Name: owner, TTL: ttl, Preference: preference, Exchange: exchange}, nil
}
