package statestore

import (
	"strconv"
	"strings"
)

// Signature is the compatibility fingerprint of a state space: an ordered
// sequence of integers describing its encoded layout. Element 0 is the
// declared length of the remaining elements.
//
// Two signatures are compatible iff they are element-wise equal, including
// the declared length. This single equality rule is used both when decoding
// an archive header and when allocating a precomputed sampler, so an archive
// that loads successfully always yields a valid sampler later.
type Signature []int32

// MakeSignature builds a signature from its body, prepending the declared
// length element.
func MakeSignature(body ...int32) Signature {
	sig := make(Signature, 0, len(body)+1)
	sig = append(sig, int32(len(body)))
	return append(sig, body...)
}

// Equal reports whether sig and other are element-wise equal.
func (sig Signature) Equal(other Signature) bool {
	if len(sig) != len(other) {
		return false
	}
	for i := range sig {
		if sig[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the signature.
func (sig Signature) Clone() Signature {
	if sig == nil {
		return nil
	}
	out := make(Signature, len(sig))
	copy(out, sig)
	return out
}

// String renders the signature as space-separated integers.
func (sig Signature) String() string {
	var sb strings.Builder
	for i, v := range sig {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatInt(int64(v), 10))
	}
	return sb.String()
}
