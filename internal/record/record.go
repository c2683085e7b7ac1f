// Package record implements DNS resource records (RFC 1035 section 3.2) as
// a tagged variant: Record is an interface, and each wire type (A, NS,
// CNAME, MX, AAAA) is its own concrete Go type carrying only the fields
// that type actually has. Anything outside that set decodes to Unknown,
// preserving the raw RDATA so it can still be logged or re-encoded.
package record

import (
	"encoding/binary"
	"fmt"

	"github.com/blazskufca/goresolve/internal/dnsclass"
	"github.com/blazskufca/goresolve/internal/dnstype"
	"github.com/blazskufca/goresolve/internal/name"
)

// Record is satisfied by every concrete resource-record type this resolver
// understands.
type Record interface {
	// Owner is the domain name this record is about.
	Owner() string
	// RRType is the record's wire TYPE.
	RRType() dnstype.Type
	// RRTTL is the number of seconds this record may be cached.
	RRTTL() uint32

	rdata() ([]byte, error)
}

const fixedFieldsSize = 2 + 2 + 4 + 2 // TYPE + CLASS + TTL + RDLENGTH

// Encode writes r as a complete resource record: NAME, TYPE, CLASS, TTL,
// RDLENGTH, RDATA. RDLENGTH is back-patched once RDATA has been produced.
func Encode(r Record) ([]byte, error) {
	nameBytes, err := name.Encode(r.Owner())
	if err != nil {
		return nil, fmt.Errorf("record: %w", err)
	}

	rdata, err := r.rdata()
	if err != nil {
		return nil, fmt.Errorf("record: %w", err)
	}

	buf := make([]byte, len(nameBytes)+fixedFieldsSize+len(rdata))
	offset := copy(buf, nameBytes)

	binary.BigEndian.PutUint16(buf[offset:], uint16(r.RRType()))
	offset += 2
	binary.BigEndian.PutUint16(buf[offset:], uint16(dnsclass.IN))
	offset += 2
	binary.BigEndian.PutUint32(buf[offset:], r.RRTTL())
	offset += 4
	binary.BigEndian.PutUint16(buf[offset:], uint16(len(rdata)))
	offset += 2
	copy(buf[offset:], rdata)

	return buf, nil
}

// Decode parses one resource record starting at offset within packet,
// dispatching on its TYPE field, and returns the record plus the number of
// octets consumed from offset.
func Decode(packet []byte, offset int) (Record, int, error) {
	owner, nameConsumed, err := name.Decode(packet, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("record: %w", err)
	}

	fields := offset + nameConsumed
	if fields+fixedFieldsSize > len(packet) {
		return nil, 0, fmt.Errorf("record: not enough bytes for fixed fields")
	}

	qtype := dnstype.Type(binary.BigEndian.Uint16(packet[fields : fields+2]))
	// CLASS at packet[fields+2:fields+4] is parsed and discarded.
	ttl := binary.BigEndian.Uint32(packet[fields+4 : fields+8])
	rdlength := int(binary.BigEndian.Uint16(packet[fields+8 : fields+10]))

	rdataStart := fields + fixedFieldsSize
	if rdataStart+rdlength > len(packet) {
		return nil, 0, fmt.Errorf("record: RDLENGTH %d runs past end of packet", rdlength)
	}
	rdata := packet[rdataStart : rdataStart+rdlength]
	total := nameConsumed + fixedFieldsSize + rdlength

	r, err := decodeRDATA(owner, qtype, ttl, packet, rdataStart, rdata)
	if err != nil {
		return nil, 0, fmt.Errorf("record: %w", err)
	}
	return r, total, nil
}

func decodeRDATA(owner string, qtype dnstype.Type, ttl uint32, packet []byte, rdataStart int, rdata []byte) (Record, error) {
	switch qtype {
	case dnstype.A:
		return decodeA(owner, ttl, rdata)
	case dnstype.NS:
		target, _, err := name.Decode(packet, rdataStart)
		if err != nil {
			return nil, fmt.Errorf("NS rdata: %w", err)
		}
		return NS{Name: owner, TTL: ttl, NameServer: target}, nil
	case dnstype.CNAME:
		target, _, err := name.Decode(packet, rdataStart)
		if err != nil {
			return nil, fmt.Errorf("CNAME rdata: %w", err)
		}
		return CNAME{Name: owner, TTL: ttl, Target: target}, nil
	case dnstype.MX:
		return decodeMX(owner, ttl, packet, rdataStart, rdata)
	case dnstype.AAAA:
		return decodeAAAA(owner, ttl, rdata)
	default:
		data := make([]byte, len(rdata))
		copy(data, rdata)
		return Unknown{Name: owner, TTL: ttl, QType: qtype, Data: data}, nil
	}
}
