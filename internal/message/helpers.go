package message

import (
	"net"
	"strings"

	"github.com/blazskufca/goresolve/internal/header"
	"github.com/blazskufca/goresolve/internal/question"
	"github.com/blazskufca/goresolve/internal/record"
)

// FirstQuestion returns the message's first question, or false if it has
// none. A well-formed query always carries exactly one.
func (m *Message) FirstQuestion() (question.Question, bool) {
	if len(m.Questions) == 0 {
		return question.Question{}, false
	}
	return m.Questions[0], true
}

// HasAnswers reports whether the message carries at least one answer and
// its header agrees there should be one.
func (m *Message) HasAnswers() bool {
	return m.Header.RCODE == header.NoError && len(m.Answers) > 0
}

// Rescode returns the message's response code.
func (m *Message) Rescode() header.ResponseCode {
	return m.Header.RCODE
}

// GetRandomA returns the first A record's address from the message's
// answer section, or false if it has none. Despite the name (kept for
// parity with the reference implementation's accessor), selection is
// deterministic, not random.
func (m *Message) GetRandomA() (net.IP, bool) {
	for _, r := range m.Answers {
		if a, ok := r.(record.A); ok {
			return a.Address, true
		}
	}
	return nil, false
}

// GetResolvedNS returns the IP address of an NS delegation for qname,
// found by pairing an NS record in the authority section whose owner is a
// suffix of qname with a glue A record of the same name in the additional
// section.
func (m *Message) GetResolvedNS(qname string) (net.IP, bool) {
	for _, ns := range nsRecords(m.Authority, qname) {
		for _, r := range m.Additional {
			if a, ok := r.(record.A); ok && a.Name == ns.NameServer {
				return a.Address, true
			}
		}
	}
	return nil, false
}

// GetUnresolvedNS returns the name server host name of the first NS
// delegation for qname in the authority section, whether or not a glue
// record exists for it, so the caller can resolve its address with a
// separate lookup.
func (m *Message) GetUnresolvedNS(qname string) (string, bool) {
	for _, ns := range nsRecords(m.Authority, qname) {
		return ns.NameServer, true
	}
	return "", false
}

func nsRecords(authority []record.Record, qname string) []record.NS {
	var out []record.NS
	for _, r := range authority {
		ns, ok := r.(record.NS)
		if !ok {
			continue
		}
		if matchesSuffix(qname, ns.Name) {
			out = append(out, ns)
		}
	}
	return out
}

// matchesSuffix reports whether owner (an NS/answer record's owner name,
// e.g. "com" or "") is qname or a parent domain of it. The root owner ""
// matches every name.
func matchesSuffix(qname, owner string) bool {
	if owner == "" {
		return true
	}
	if qname == owner {
		return true
	}
	return strings.HasSuffix(qname, "."+owner)
}

