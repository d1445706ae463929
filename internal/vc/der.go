package vc

import (
	dErrors "dcert/pkg/domain-errors"
)

// compactToDER re-encodes a 64-byte r||s signature as a DER SEQUENCE of two
// INTEGERs: leading zero bytes are stripped and a single 0x00 pad is re-added
// only when the high bit would otherwise flip the integer sign. Downstream
// verifiers expect this encoding.
func compactToDER(compact []byte) ([]byte, error) {
	if len(compact) != 64 {
		return nil, dErrors.New(dErrors.CodeSigningFailed, "compact signature must be 64 bytes")
	}
	r := derInteger(compact[:32])
	s := derInteger(compact[32:])

	body := make([]byte, 0, len(r)+len(s)+4)
	body = append(body, 0x02, byte(len(r)))
	body = append(body, r...)
	body = append(body, 0x02, byte(len(s)))
	body = append(body, s...)

	out := make([]byte, 0, len(body)+2)
	out = append(out, 0x30, byte(len(body)))
	return append(out, body...), nil
}

func derInteger(b []byte) []byte {
	i := 0
	for i < len(b)-1 && b[i] == 0 {
		i++
	}
	trimmed := b[i:]
	if trimmed[0]&0x80 != 0 {
		padded := make([]byte, 0, len(trimmed)+1)
		padded = append(padded, 0x00)
		return append(padded, trimmed...)
	}
	return trimmed
}

// derToCompact parses the DER form back into fixed-width 32-byte r and s.
func derToCompact(der []byte) ([]byte, error) {
	if len(der) < 8 || der[0] != 0x30 || int(der[1]) != len(der)-2 {
		return nil, dErrors.New(dErrors.CodeSigningFailed, "malformed DER signature")
	}
	rest := der[2:]
	r, rest, err := readDERInteger(rest)
	if err != nil {
		return nil, err
	}
	s, rest, err := readDERInteger(rest)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, dErrors.New(dErrors.CodeSigningFailed, "trailing bytes in DER signature")
	}

	compact := make([]byte, 64)
	copy(compact[32-len(r):32], r)
	copy(compact[64-len(s):], s)
	return compact, nil
}

func readDERInteger(b []byte) (value, rest []byte, err error) {
	if len(b) < 2 || b[0] != 0x02 {
		return nil, nil, dErrors.New(dErrors.CodeSigningFailed, "malformed DER integer")
	}
	n := int(b[1])
	if n == 0 || len(b) < 2+n {
		return nil, nil, dErrors.New(dErrors.CodeSigningFailed, "malformed DER integer length")
	}
	value = b[2 : 2+n]
	// Drop the sign pad before fixed-width placement.
	if value[0] == 0x00 && len(value) > 1 {
		value = value[1:]
	}
	if len(value) > 32 {
		return nil, nil, dErrors.New(dErrors.CodeSigningFailed, "DER integer exceeds curve width")
	}
	return value, b[2+n:], nil
}
