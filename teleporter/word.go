package teleporter

// Word is a register value: an unsigned integer confined to [0, 32767].
// All arithmetic on it wraps modulo 32768.
type Word uint16

const (
	// Modulus is the size of the register domain.
	Modulus = 32768
	// MaxWord is the largest representable register value.
	MaxWord Word = Modulus - 1
)

func (self Word) Inc() Word {
	return (self + 1) & MaxWord
}

// Dec wraps to MaxWord at zero: adding Modulus-1 is a decrement mod 32768.
func (self Word) Dec() Word {
	return (self + MaxWord) & MaxWord
}
