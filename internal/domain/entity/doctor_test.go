package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDoctor_SystemUsername(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"John Smith", "dr_johnsmith"},
		{"MARIA GARCIA LOPEZ", "dr_mariagarcialopez"},
		{"chen", "dr_chen"},
	}

	for _, tt := range tests {
		d := &Doctor{Name: tt.name}
		assert.Equal(t, tt.expected, d.SystemUsername())
	}
}
