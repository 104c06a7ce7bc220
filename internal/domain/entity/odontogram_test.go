package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateToothNumber(t *testing.T) {
	valid := []int{11, 18, 21, 28, 31, 38, 41, 48, 51, 55, 61, 65, 71, 75, 81, 85}
	for _, n := range valid {
		assert.NoError(t, ValidateToothNumber(n), "tooth %d", n)
	}

	invalid := []int{0, 1, 9, 10, 19, 29, 40, 49, 56, 58, 66, 86, 90, 111, -11}
	for _, n := range invalid {
		assert.ErrorIs(t, ValidateToothNumber(n), ErrInvalidToothNumber, "tooth %d", n)
	}
}
