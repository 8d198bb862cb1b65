package errors

import (
	"strings"
	"testing"
)

func TestValidateElementID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{name: "simple", id: "clt", wantErr: false},
		{name: "with separators", id: "chunk-mean-median_v2.1", wantErr: false},
		{name: "unicode", id: "统计-基础", wantErr: false},
		{name: "at max length", id: strings.Repeat("a", 256), wantErr: false},
		{name: "empty", id: "", wantErr: true},
		{name: "too long", id: strings.Repeat("a", 257), wantErr: true},
		{name: "newline", id: "bad\nid", wantErr: true},
		{name: "tab", id: "bad\tid", wantErr: true},
		{name: "null byte", id: "bad\x00id", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateElementID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateElementID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}
