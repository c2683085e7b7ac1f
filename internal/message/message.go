// Package message implements a full DNS message (RFC 1035 section 4):
// header, question section, and the three resource-record sections
// (answer, authority, additional).
package message

import (
	"fmt"

	"github.com/blazskufca/goresolve/internal/dnserrors"
	"github.com/blazskufca/goresolve/internal/header"
	"github.com/blazskufca/goresolve/internal/question"
	"github.com/blazskufca/goresolve/internal/record"
)

// MaxSize is the largest a DNS message may be when carried over UDP
// without EDNS(0) (RFC 1035 section 2.3.4). This resolver never emits a
// message larger than this and never sets the TC bit as a workaround.
const MaxSize = 512

// Message is a complete DNS query or response.
type Message struct {
	Header     header.Header
	Questions  []question.Question
	Answers    []record.Record
	Authority  []record.Record
	Additional []record.Record
}

// Encode serializes msg to its wire form. The header's section counts are
// synchronized to the actual slice lengths before encoding. If the result
// would exceed MaxSize, Encode fails with a *dnserrors.BufferOverflowError
// rather than silently setting the truncation bit.
func (m *Message) Encode() ([]byte, error) {
	m.Header.QDCOUNT = uint16(len(m.Questions))
	m.Header.ANCOUNT = uint16(len(m.Answers))
	m.Header.NSCOUNT = uint16(len(m.Authority))
	m.Header.ARCOUNT = uint16(len(m.Additional))

	headerBytes, err := m.Header.MarshalBinary()
	if err != nil {
		return nil, &dnserrors.InternalError{Op: "message.Encode", Err: err}
	}

	buf := headerBytes

	for _, q := range m.Questions {
		qBytes, err := q.Encode()
		if err != nil {
			return nil, &dnserrors.FormatError{Op: "message.Encode", Err: err}
		}
		buf = append(buf, qBytes...)
	}

	for _, section := range [][]record.Record{m.Answers, m.Authority, m.Additional} {
		for _, r := range section {
			rBytes, err := record.Encode(r)
			if err != nil {
				return nil, &dnserrors.FormatError{Op: "message.Encode", Err: err}
			}
			buf = append(buf, rBytes...)
		}
	}

	if len(buf) > MaxSize {
		return nil, &dnserrors.BufferOverflowError{Op: "message.Encode", Size: len(buf), Max: MaxSize}
	}

	return buf, nil
}

// Decode parses a complete DNS message from buf. Every octet of buf must
// be consumed by the sections the header's counts describe; any remainder
// is treated as a format error.
func Decode(buf []byte) (*Message, error) {
	if len(buf) < header.Size {
		return nil, &dnserrors.FormatError{Op: "message.Decode", Err: fmt.Errorf("message shorter than header")}
	}

	h, err := header.Unmarshal(buf)
	if err != nil {
		return nil, &dnserrors.FormatError{Op: "message.Decode", Err: err}
	}

	m := &Message{Header: h}
	offset := header.Size

	m.Questions = make([]question.Question, 0, h.QDCOUNT)
	for i := 0; i < int(h.QDCOUNT); i++ {
		q, n, err := question.Decode(buf, offset)
		if err != nil {
			return nil, &dnserrors.FormatError{Op: "message.Decode", Err: fmt.Errorf("question %d: %w", i, err)}
		}
		m.Questions = append(m.Questions, q)
		offset += n
	}

	for _, dst := range []struct {
		count int
		out   *[]record.Record
		label string
	}{
		{int(h.ANCOUNT), &m.Answers, "answer"},
		{int(h.NSCOUNT), &m.Authority, "authority"},
		{int(h.ARCOUNT), &m.Additional, "additional"},
	} {
		records := make([]record.Record, 0, dst.count)
		for i := 0; i < dst.count; i++ {
			r, n, err := record.Decode(buf, offset)
			if err != nil {
				return nil, &dnserrors.FormatError{Op: "message.Decode", Err: fmt.Errorf("%s %d: %w", dst.label, i, err)}
			}
			records = append(records, r)
			offset += n
		}
		*dst.out = records
	}

	if offset != len(buf) {
		return nil, &dnserrors.FormatError{Op: "message.Decode", Err: fmt.Errorf("trailing %d unconsumed bytes", len(buf)-offset)}
	}

	return m, nil
}
