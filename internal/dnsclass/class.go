// Package dnsclass handles the DNS CLASS field.
//
// This resolver only ever speaks the Internet class. CLASS is read off the
// wire and discarded during decode, and always written as IN during encode;
// it is never stored on a Question or Record.
package dnsclass

// Class is the wire value of a DNS CLASS field.
type Class uint16

// IN is the only class this resolver ever emits.
const IN Class = 1
