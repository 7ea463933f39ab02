package validators

import "strings"

// NormalizePhone grava telefones brasileiros como 55 + DDD + 9 dígitos.
// Celular antigo com 8 dígitos ganha o 9. Outros formatos ficam só com os dígitos.
func NormalizePhone(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)

	if strings.HasPrefix(digits, "55") && (len(digits) == 12 || len(digits) == 13) {
		digits = digits[2:]
	}

	switch len(digits) {
	case 11:
		return "55" + digits
	case 10:
		return "55" + digits[:2] + "9" + digits[2:]
	}
	return digits
}
