// Package question implements the DNS question section entry (RFC 1035
// section 4.1.2): a name and a query type. CLASS is read off the wire and
// discarded; it is never stored here.
package question

import (
	"encoding/binary"
	"fmt"

	"github.com/blazskufca/goresolve/internal/dnsclass"
	"github.com/blazskufca/goresolve/internal/dnstype"
	"github.com/blazskufca/goresolve/internal/name"
)

// Question is a single entry in a DNS message's question section.
type Question struct {
	Name string
	Type dnstype.Type
}

// Encode writes the question as NAME, TYPE, CLASS (CLASS is always IN).
func (q Question) Encode() ([]byte, error) {
	nameBytes, err := name.Encode(q.Name)
	if err != nil {
		return nil, fmt.Errorf("question: %w", err)
	}

	buf := make([]byte, len(nameBytes)+4)
	copy(buf, nameBytes)
	binary.BigEndian.PutUint16(buf[len(nameBytes):], uint16(q.Type))
	binary.BigEndian.PutUint16(buf[len(nameBytes)+2:], uint16(dnsclass.IN))
	return buf, nil
}

// Decode parses a question starting at offset within packet, returning the
// question and the number of octets consumed from offset.
func Decode(packet []byte, offset int) (Question, int, error) {
	n, consumed, err := name.Decode(packet, offset)
	if err != nil {
		return Question{}, 0, fmt.Errorf("question: %w", err)
	}

	const typeAndClassSize = 4
	if offset+consumed+typeAndClassSize > len(packet) {
		return Question{}, 0, fmt.Errorf("question: not enough bytes for type and class")
	}

	fieldsStart := offset + consumed
	qtype := dnstype.Type(binary.BigEndian.Uint16(packet[fieldsStart : fieldsStart+2]))
	// CLASS occupies the next two octets; parsed and discarded.

	return Question{Name: n, Type: qtype}, consumed + typeAndClassSize, nil
}
