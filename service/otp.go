package service

import "strings"

// OTPInput six single-digit cells with a focused cell
type OTPInput struct {
	Digits []string
	Focus  int
}

// NewOTPInput wraps persisted cells, padding or trimming to six
func NewOTPInput(digits []string, focus int) *OTPInput {
	cells := make([]string, OTPLength)
	copy(cells, digits)
	if focus < 0 || focus >= OTPLength {
		focus = 0
	}
	return &OTPInput{Digits: cells, Focus: focus}
}

// SetDigit types into cell index. Non-digits are ignored and only the last
// typed character is kept. Focus moves to the next cell after a digit.
func (o *OTPInput) SetDigit(index int, value string) bool {
	if index < 0 || index >= OTPLength {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}

	if value == "" {
		o.Digits[index] = ""
		o.Focus = index
		return true
	}

	o.Digits[index] = value[len(value)-1:]
	if index < OTPLength-1 {
		o.Focus = index + 1
	} else {
		o.Focus = index
	}
	return true
}

// Backspace clears cell index, or steps focus back when it is already empty
func (o *OTPInput) Backspace(index int) bool {
	if index < 0 || index >= OTPLength {
		return false
	}
	if o.Digits[index] != "" {
		o.Digits[index] = ""
		o.Focus = index
		return true
	}
	if index > 0 {
		o.Focus = index - 1
	}
	return true
}

// Paste fills the cells from the digits found in s. Focus lands on the first
// empty cell, or the last one when all are filled.
func (o *OTPInput) Paste(s string) bool {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			if b.Len() == OTPLength {
				break
			}
		}
	}
	pasted := b.String()
	if pasted == "" {
		return false
	}

	for i := range o.Digits {
		if i < len(pasted) {
			o.Digits[i] = pasted[i : i+1]
		} else {
			o.Digits[i] = ""
		}
	}

	o.Focus = OTPLength - 1
	for i, d := range o.Digits {
		if d == "" {
			o.Focus = i
			break
		}
	}
	return true
}

// Clear empties every cell and focuses the first
func (o *OTPInput) Clear() {
	for i := range o.Digits {
		o.Digits[i] = ""
	}
	o.Focus = 0
}

// Code the entered digits joined
func (o *OTPInput) Code() string {
	return strings.Join(o.Digits, "")
}

// Complete whether all six cells hold a digit
func (o *OTPInput) Complete() bool {
	return len(o.Code()) == OTPLength
}
