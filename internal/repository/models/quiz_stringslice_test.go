package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringSlice_Value(t *testing.T) {
	tests := []struct {
		name    string
		s       StringSlice
		wantVal string
	}{
		{"nil slice", nil, "[]"},
		{"empty slice", StringSlice{}, "[]"},
		{"multiple elements", StringSlice{"apple", "banana"}, `["apple","banana"]`},
		{"unicode", StringSlice{"Hà Nội"}, `["Hà Nội"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.s.Value()
			assert.NoError(t, err)
			assert.Equal(t, tt.wantVal, got)
		})
	}
}

func TestStringSlice_Scan(t *testing.T) {
	tests := []struct {
		name    string
		input   interface{}
		want    StringSlice
		wantErr bool
	}{
		{"nil", nil, StringSlice{}, false},
		{"empty string", "", StringSlice{}, false},
		{"null literal", "null", StringSlice{}, false},
		{"string json", `["a","b"]`, StringSlice{"a", "b"}, false},
		{"bytes json", []byte(`["c"]`), StringSlice{"c"}, false},
		{"unsupported type", 42, nil, true},
		{"malformed json", "[a", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s StringSlice
			err := s.Scan(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, s)
		})
	}
}

func TestOptionSlice_ValueAndScan(t *testing.T) {
	opts := OptionSlice{{Text: "a"}, {Text: "b", ImageURL: "http://img/b.png"}}

	v, err := opts.Value()
	assert.NoError(t, err)
	assert.Equal(t, `[{"text":"a"},{"text":"b","imageUrl":"http://img/b.png"}]`, v)

	var scanned OptionSlice
	assert.NoError(t, scanned.Scan(v))
	assert.Equal(t, opts, scanned)

	var empty OptionSlice
	assert.NoError(t, empty.Scan(nil))
	assert.Equal(t, OptionSlice{}, empty)
}
