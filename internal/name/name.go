// Package name implements RFC 1035 domain-name label encoding and the
// decompression algorithm for following pointers (section 4.1.4).
//
// A name is stored in memory as its fully-expanded dotted form, e.g.
// "www.google.com"; the root name is the empty string. Encoding never
// produces a pointer — every label is written out fresh. Decoding follows
// pointers, bounded so a crafted loop cannot run forever.
package name

import (
	"fmt"
	"strings"
)

// MaxLabelLength is the largest a single label may be (RFC 1035 section 3.1).
const MaxLabelLength = 63

// MaxNameLength is the largest a fully-expanded dotted name may be.
const MaxNameLength = 255

// maxPointerHops bounds how many compression pointers Decode will follow
// for a single name, so a pointer cycle cannot hang the decoder.
const maxPointerHops = 128

const (
	pointerMarker byte = 0b1100_0000
	pointerMask   byte = 0b0011_1111
)

// Encode writes name as a sequence of length-prefixed labels terminated by
// a zero octet. It never emits a compression pointer.
func Encode(n string) ([]byte, error) {
	if err := Validate(n); err != nil {
		return nil, err
	}

	if n == "" {
		return []byte{0}, nil
	}

	labels := strings.Split(n, ".")
	buf := make([]byte, 0, len(n)+len(labels)+1)
	for _, label := range labels {
		buf = append(buf, byte(len(label)))
		buf = append(buf, label...)
	}
	buf = append(buf, 0)
	return buf, nil
}

// Validate checks the 63-octet label and 255-octet name bounds.
func Validate(n string) error {
	if len(n) > MaxNameLength {
		return fmt.Errorf("name: %q exceeds %d octets", n, MaxNameLength)
	}
	if n == "" {
		return nil
	}
	for _, label := range strings.Split(n, ".") {
		if label == "" {
			return fmt.Errorf("name: %q has an empty label", n)
		}
		if len(label) > MaxLabelLength {
			return fmt.Errorf("name: label %q exceeds %d octets", label, MaxLabelLength)
		}
	}
	return nil
}

// Decode parses a name starting at offset within packet, following
// compression pointers against the full packet as needed. It returns the
// decoded dotted name and the number of octets consumed from offset in the
// *original* buffer (a pointer counts as its own 2 octets; bytes at the
// pointer target are not counted).
func Decode(packet []byte, offset int) (string, int, error) {
	if offset < 0 || offset >= len(packet) {
		return "", 0, fmt.Errorf("name: offset %d out of bounds (packet length %d)", offset, len(packet))
	}

	var labels []string
	cursor := offset
	consumed := 0
	jumped := false // once we follow the first pointer, stop growing consumed
	hops := 0

	for {
		if cursor >= len(packet) {
			return "", 0, fmt.Errorf("name: offset %d runs past end of packet", cursor)
		}

		b := packet[cursor]

		if b&pointerMarker == pointerMarker {
			if cursor+1 >= len(packet) {
				return "", 0, fmt.Errorf("name: truncated pointer at offset %d", cursor)
			}
			if !jumped {
				consumed = cursor + 2 - offset
				jumped = true
			}

			hops++
			if hops > maxPointerHops {
				return "", 0, fmt.Errorf("name: too many pointer hops, likely a loop")
			}

			target := int(b&pointerMask)<<8 | int(packet[cursor+1])
			if target < 0 || target >= len(packet) {
				return "", 0, fmt.Errorf("name: pointer target %d out of bounds", target)
			}
			cursor = target
			continue
		}

		labelLen := int(b)
		if labelLen > MaxLabelLength {
			return "", 0, fmt.Errorf("name: label length %d exceeds %d", labelLen, MaxLabelLength)
		}
		cursor++

		if labelLen == 0 {
			if !jumped {
				consumed = cursor - offset
			}
			break
		}

		if cursor+labelLen > len(packet) {
			return "", 0, fmt.Errorf("name: label runs past end of packet")
		}
		labels = append(labels, string(packet[cursor:cursor+labelLen]))
		cursor += labelLen

		if !jumped {
			consumed = cursor - offset
		}
	}

	decoded := strings.Join(labels, ".")
	if err := Validate(decoded); err != nil {
		return "", 0, err
	}
	return decoded, consumed, nil
}
