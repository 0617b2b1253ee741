package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type letterForm struct {
	Title   string `json:"title" binding:"notblank"`
	Content string `json:"content" binding:"notblank"`
}

func TestNotBlank(t *testing.T) {
	v := NewCustomValidator()
	require.NoError(t, v.RegisterCustom())

	tests := []struct {
		name    string
		form    *letterForm
		wantErr bool
	}{
		{"filled", &letterForm{Title: "hi", Content: "there"}, false},
		{"blank title", &letterForm{Title: "   ", Content: "there"}, true},
		{"empty content", &letterForm{Title: "hi"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(tt.form)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateStructIgnoresNonStruct(t *testing.T) {
	v := NewCustomValidator()
	assert.NoError(t, v.ValidateStruct("plain"))
	assert.NoError(t, v.ValidateStruct(nil))
}
