package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMovieYear(t *testing.T) {
	tests := []struct {
		name string
		date string
		want string
	}{
		{"full date", "2010-07-15", "2010"},
		{"year only", "1999", "1999"},
		{"empty", "", ""},
		{"short", "20", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Movie{ReleaseDate: tt.date}
			assert.Equal(t, tt.want, m.Year())
		})
	}
}
