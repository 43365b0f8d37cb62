// Package validation содержит функции валидации входных данных.
package validation

import "unicode"

// IsValidPhoneNumber проверяет кенийский номер мобильного телефона,
// на который отправляется M-Pesa-запрос: 07XXXXXXXX, 01XXXXXXXX
// или 254XXXXXXXXX (допускается ведущий "+").
func IsValidPhoneNumber(phone string) bool {
	if phone == "" {
		return false
	}

	if phone[0] == '+' {
		phone = phone[1:]
	}

	for _, ch := range phone {
		if !unicode.IsDigit(ch) {
			return false
		}
	}

	switch {
	case len(phone) == 10 && phone[0] == '0' && (phone[1] == '7' || phone[1] == '1'):
		return true
	case len(phone) == 12 && phone[:3] == "254" && (phone[3] == '7' || phone[3] == '1'):
		return true
	}

	return false
}
