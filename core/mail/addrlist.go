package mail

import (
	"strconv"
	"strings"
)

// Recipient pairs a display label with an email address. Numeric labels act
// as positional placeholders and are rendered as bare addresses.
type Recipient struct {
	Label   string
	Address string
}

// Recipients is an insertion-ordered recipient list. The zero value is ready
// to use.
type Recipients []Recipient

// Add appends a recipient, preserving insertion order.
func (r *Recipients) Add(label, address string) {
	*r = append(*r, Recipient{Label: label, Address: address})
}

// Addresses returns every recipient address in insertion order. This is the
// delivery set: it includes addresses that BuildAddressList hides from the
// visible header.
func (r Recipients) Addresses() []string {
	addrs := make([]string, len(r))
	for i, rcpt := range r {
		addrs[i] = rcpt.Address
	}
	return addrs
}

// BuildAddressList renders recipients as an RFC 822 address list for a
// visible header such as To. Entries whose address equals excluding are
// omitted from the output but remain delivery targets. Labels parsing as
// non-negative integers emit the bare address; any other label is treated
// as a display name, word-encoded as needed, and rendered as
// "label <address>".
func BuildAddressList(recipients Recipients, excluding string) string {
	parts := make([]string, 0, len(recipients))
	for _, rcpt := range recipients {
		if excluding != "" && rcpt.Address == excluding {
			continue
		}
		if isNumericLabel(rcpt.Label) {
			parts = append(parts, rcpt.Address)
			continue
		}
		parts = append(parts, encodeDisplayName(rcpt.Label)+" <"+rcpt.Address+">")
	}
	return strings.Join(parts, ", ")
}

func isNumericLabel(label string) bool {
	n, err := strconv.Atoi(label)
	return err == nil && n >= 0
}
