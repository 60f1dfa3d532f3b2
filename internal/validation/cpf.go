package validation

// IsValidCPF reports whether raw, once stripped to its digits, is an
// 11-digit CPF whose two check digits match. Sequences of one repeated
// digit pass the checksum arithmetic but are never issued, so they are
// rejected.
func IsValidCPF(raw string) bool {
	cpf := OnlyDigits(raw)
	if len(cpf) != 11 || allSameDigit(cpf) {
		return false
	}

	digits := make([]int, 11)
	for i := 0; i < 11; i++ {
		digits[i] = int(cpf[i] - '0')
	}

	first := cpfCheckDigit(digits[:9])
	second := cpfCheckDigit(append(append([]int{}, digits[:9]...), first))

	return first == digits[9] && second == digits[10]
}

// cpfCheckDigit computes the check digit for a 9 or 10 digit prefix. Each
// digit is weighted from len+1 down to 2.
func cpfCheckDigit(prefix []int) int {
	n := len(prefix)
	sum := 0
	for i, d := range prefix {
		sum += d * (n + 1 - i)
	}
	return sum * 10 % 11 % 10
}

func allSameDigit(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}
