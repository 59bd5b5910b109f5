package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTheme(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Theme
		wantErr bool
	}{
		{
			name:  "dark",
			input: "dark",
			want:  ThemeDark,
		},
		{
			name:  "light",
			input: "light",
			want:  ThemeLight,
		},
		{
			name:    "unknown",
			input:   "solarized",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTheme(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseTheme() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestController_Toggle(t *testing.T) {
	c := NewController(ThemeLight)
	assert.Equal(t, ThemeLight, c.Current())

	assert.Equal(t, ThemeDark, c.Toggle())
	assert.Equal(t, ThemeDark, c.Current())

	// a second toggle lands back on the original theme
	assert.Equal(t, ThemeLight, c.Toggle())
	assert.Equal(t, ThemeLight, c.Current())
}
