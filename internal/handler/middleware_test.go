package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTokenKey(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "no header", header: "", want: ""},
		{name: "bearer prefix", header: "Bearer abc123", want: "abc123"},
		{name: "token prefix", header: "Token abc123", want: "abc123"},
		{name: "unknown scheme", header: "Basic dXNlcjpwYXNz", want: ""},
		{name: "bare key without scheme", header: "abc123", want: ""},
		{name: "prefix only", header: "Bearer ", want: ""},
		{name: "trailing spaces", header: "Token abc123  ", want: "abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractTokenKey(tt.header))
		})
	}
}

func TestParseIDList(t *testing.T) {
	assert.Nil(t, parseIDList(""))
	assert.Equal(t, []int64{1, 2, 3}, parseIDList("1,2,3"))
	assert.Equal(t, []int64{1, 3}, parseIDList("1, oops ,3"))
}
