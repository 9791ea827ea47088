package utils

import "strings"

const (
	countryCodeLen = 3
	maskRun        = "******"
)

// MaskPhone redacts a phone number down to its country code and last two
// digits, e.g. +919876543210 -> +91******10. The middle run is a fixed
// six asterisks regardless of the number's length so a masked value
// never leaks how long the real number is.
func MaskPhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if len(phone) <= countryCodeLen+2 {
		return maskRun
	}
	return phone[:countryCodeLen] + maskRun + phone[len(phone)-2:]
}
