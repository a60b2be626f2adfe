package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOTPInputSetDigitMovesFocus(t *testing.T) {
	o := NewOTPInput(nil, 0)

	assert.True(t, o.SetDigit(0, "1"))
	assert.Equal(t, 1, o.Focus)

	assert.False(t, o.SetDigit(1, "a"))
	assert.Equal(t, "", o.Digits[1])
	assert.Equal(t, 1, o.Focus)

	// typing over a filled cell keeps the last character
	assert.True(t, o.SetDigit(1, "27"))
	assert.Equal(t, "7", o.Digits[1])
	assert.Equal(t, 2, o.Focus)

	assert.True(t, o.SetDigit(5, "9"))
	assert.Equal(t, 5, o.Focus)

	assert.False(t, o.SetDigit(6, "1"))
	assert.False(t, o.SetDigit(-1, "1"))
	assert.False(t, o.Complete())
}

func TestOTPInputBackspace(t *testing.T) {
	o := NewOTPInput([]string{"1", "2", "3", "", "", ""}, 3)

	assert.True(t, o.Backspace(3))
	assert.Equal(t, 2, o.Focus, "empty cell steps back")
	assert.Equal(t, "3", o.Digits[2])

	assert.True(t, o.Backspace(2))
	assert.Equal(t, "", o.Digits[2])
	assert.Equal(t, 2, o.Focus, "filled cell is cleared in place")

	o = NewOTPInput(nil, 0)
	assert.True(t, o.Backspace(0))
	assert.Equal(t, 0, o.Focus)
}

func TestOTPInputPaste(t *testing.T) {
	o := NewOTPInput([]string{"9", "9", "9", "9", "9", "9"}, 5)

	assert.True(t, o.Paste("12-34 5678"))
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, o.Digits)
	assert.Equal(t, 5, o.Focus)
	assert.True(t, o.Complete())
	assert.Equal(t, "123456", o.Code())

	assert.True(t, o.Paste("42"))
	assert.Equal(t, []string{"4", "2", "", "", "", ""}, o.Digits)
	assert.Equal(t, 2, o.Focus)

	assert.False(t, o.Paste("abc"))
	assert.Equal(t, "42", o.Code())
}

func TestOTPInputClear(t *testing.T) {
	o := NewOTPInput([]string{"1", "2", "3", "4", "5", "6", "7"}, 9)
	assert.Len(t, o.Digits, OTPLength)
	assert.Equal(t, 0, o.Focus)

	o.Clear()
	assert.Equal(t, "", o.Code())
	assert.Equal(t, 0, o.Focus)
}
