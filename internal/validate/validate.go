// Package validate holds the client-side format checks and input masks:
// CPF, CEP and card fields. Everything else is validated by the backend.
package validate

import (
	"regexp"
	"strings"
)

var nonDigits = regexp.MustCompile(`\D`)

// Digits strips everything that is not a digit.
func Digits(s string) string {
	return nonDigits.ReplaceAllString(s, "")
}

// CPF verifies the Brazilian individual taxpayer number, including both
// check digits. Input may be masked or bare. A run of eleven identical
// digits passes the check-digit math but is not a real CPF.
func CPF(cpf string) bool {
	cpf = Digits(cpf)
	if len(cpf) != 11 || strings.Count(cpf, cpf[:1]) == 11 {
		return false
	}

	sum := 0
	for i := 1; i <= 9; i++ {
		sum += int(cpf[i-1]-'0') * (11 - i)
	}
	rest := (sum * 10) % 11
	if rest == 10 || rest == 11 {
		rest = 0
	}
	if rest != int(cpf[9]-'0') {
		return false
	}

	sum = 0
	for i := 1; i <= 10; i++ {
		sum += int(cpf[i-1]-'0') * (12 - i)
	}
	rest = (sum * 10) % 11
	if rest == 10 || rest == 11 {
		rest = 0
	}
	return rest == int(cpf[10]-'0')
}

// MaskCPF formats bare digits as 000.000.000-00, truncating extra input.
func MaskCPF(cpf string) string {
	d := Digits(cpf)
	if len(d) > 11 {
		d = d[:11]
	}
	var b strings.Builder
	for i, r := range d {
		switch i {
		case 3, 6:
			b.WriteByte('.')
		case 9:
			b.WriteByte('-')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CEP checks the Brazilian postal code: exactly eight digits.
func CEP(cep string) bool {
	return len(Digits(cep)) == 8
}

// MaskCEP formats bare digits as 00000-000.
func MaskCEP(cep string) string {
	d := Digits(cep)
	if len(d) > 8 {
		d = d[:8]
	}
	if len(d) <= 5 {
		return d
	}
	return d[:5] + "-" + d[5:]
}

// CardNumber checks a 16-digit card number.
func CardNumber(number string) bool {
	return len(Digits(number)) == 16
}

// MaskCardNumber groups digits in blocks of four, capped at 16 digits.
func MaskCardNumber(number string) string {
	d := Digits(number)
	if len(d) > 16 {
		d = d[:16]
	}
	var parts []string
	for len(d) > 4 {
		parts = append(parts, d[:4])
		d = d[4:]
	}
	if d != "" {
		parts = append(parts, d)
	}
	return strings.Join(parts, " ")
}

// CardExpiry checks the MM/AA format and a plausible month.
func CardExpiry(expiry string) bool {
	if len(expiry) != 5 || expiry[2] != '/' {
		return false
	}
	month := expiry[:2]
	year := expiry[3:]
	if Digits(month) != month || Digits(year) != year {
		return false
	}
	return month >= "01" && month <= "12"
}

// MaskCardExpiry formats bare digits as MM/AA.
func MaskCardExpiry(expiry string) string {
	d := Digits(expiry)
	if len(d) > 4 {
		d = d[:4]
	}
	if len(d) <= 2 {
		return d
	}
	return d[:2] + "/" + d[2:]
}

// CVV accepts three or four digits (AMEX uses four).
func CVV(cvv string) bool {
	d := Digits(cvv)
	return len(d) == 3 || len(d) == 4
}
