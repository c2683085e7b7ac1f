// Package header implements the 12-octet DNS message header from RFC 1035
// section 4.1.1.
package header

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// Header is the fixed-size prologue of every DNS message.
//
//	ID       16 bits  transaction identifier
//	QR        1 bit   0 = query, 1 = response
//	OPCODE    4 bits  kind of query
//	AA        1 bit   authoritative answer
//	TC        1 bit   message truncated
//	RD        1 bit   recursion desired
//	RA        1 bit   recursion available
//	Z         1 bit   reserved, must be zero
//	AD        1 bit   authenticated data
//	CD        1 bit   checking disabled
//	RCODE     4 bits  response status
//	QDCOUNT  16 bits  question count
//	ANCOUNT  16 bits  answer count
//	NSCOUNT  16 bits  authority count
//	ARCOUNT  16 bits  additional count
type Header struct {
	ID      uint16
	QR      bool
	Opcode  Opcode
	AA      bool
	TC      bool
	RD      bool
	RA      bool
	Z       bool
	AD      bool
	CD      bool
	RCODE   ResponseCode
	QDCOUNT uint16
	ANCOUNT uint16
	NSCOUNT uint16
	ARCOUNT uint16
}

// Size is the wire length of a Header, in octets.
const Size = 12

// Opcode is the 4-bit DNS OPCODE field.
type Opcode uint8

const (
	Query  Opcode = iota // standard query
	IQuery               // inverse query (obsolete)
	Status               // server status request
	// 3-15 reserved
)

// ResponseCode is the 4-bit DNS RCODE field.
type ResponseCode uint8

const (
	NoError        ResponseCode = iota // no error condition
	FormatError                        // name server unable to interpret the query
	ServerFailure                      // name server unable to process due to its own problem
	NameError                          // the domain name referenced does not exist
	NotImplemented                     // requested kind of query unsupported
	Refused                            // name server refuses the operation for policy reasons
	// 6-15 reserved; decoded values in this range normalize to NoError
)

func (c ResponseCode) String() string {
	switch c {
	case NoError:
		return "NOERROR"
	case FormatError:
		return "FORMERR"
	case ServerFailure:
		return "SERVFAIL"
	case NameError:
		return "NXDOMAIN"
	case NotImplemented:
		return "NOTIMP"
	case Refused:
		return "REFUSED"
	default:
		return "NOERROR"
	}
}

// SetRandomID assigns a fresh, unpredictable transaction ID as required by
// RFC 1035: it must differ across outstanding queries so a stateless UDP
// client can match responses to requests.
func (h *Header) SetRandomID() error {
	var buf [2]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return fmt.Errorf("generate random header id: %w", err)
	}
	h.ID = binary.BigEndian.Uint16(buf[:])
	return nil
}

// MarshalBinary encodes the header to its 12-octet wire form.
func (h *Header) MarshalBinary() ([]byte, error) {
	buf := make([]byte, Size)

	binary.BigEndian.PutUint16(buf[0:2], h.ID)

	var a byte
	if h.QR {
		a |= 0b1000_0000
	}
	a |= byte(h.Opcode&0b1111) << 3
	if h.AA {
		a |= 0b0000_0100
	}
	if h.TC {
		a |= 0b0000_0010
	}
	if h.RD {
		a |= 0b0000_0001
	}
	buf[2] = a

	var b byte
	if h.RA {
		b |= 0b1000_0000
	}
	if h.Z {
		b |= 0b0100_0000
	}
	if h.AD {
		b |= 0b0010_0000
	}
	if h.CD {
		b |= 0b0001_0000
	}
	b |= byte(h.RCODE & 0b1111)
	buf[3] = b

	binary.BigEndian.PutUint16(buf[4:6], h.QDCOUNT)
	binary.BigEndian.PutUint16(buf[6:8], h.ANCOUNT)
	binary.BigEndian.PutUint16(buf[8:10], h.NSCOUNT)
	binary.BigEndian.PutUint16(buf[10:12], h.ARCOUNT)

	return buf, nil
}

// Unmarshal decodes a 12-octet header from data. Unknown RCODE values
// (6-15) normalize to NoError per RFC 1035's "reserved for future use".
func Unmarshal(data []byte) (Header, error) {
	if len(data) < Size {
		return Header{}, fmt.Errorf("header: need %d bytes, got %d", Size, len(data))
	}

	a := data[2]
	b := data[3]

	rcode := ResponseCode(b & 0b1111)
	if rcode > Refused {
		rcode = NoError
	}

	h := Header{
		ID:      binary.BigEndian.Uint16(data[0:2]),
		QR:      a&0b1000_0000 != 0,
		Opcode:  Opcode((a >> 3) & 0b1111),
		AA:      a&0b0000_0100 != 0,
		TC:      a&0b0000_0010 != 0,
		RD:      a&0b0000_0001 != 0,
		RA:      b&0b1000_0000 != 0,
		Z:       b&0b0100_0000 != 0,
		AD:      b&0b0010_0000 != 0,
		CD:      b&0b0001_0000 != 0,
		RCODE:   rcode,
		QDCOUNT: binary.BigEndian.Uint16(data[4:6]),
		ANCOUNT: binary.BigEndian.Uint16(data[6:8]),
		NSCOUNT: binary.BigEndian.Uint16(data[8:10]),
		ARCOUNT: binary.BigEndian.Uint16(data[10:12]),
	}

	return h, nil
}
