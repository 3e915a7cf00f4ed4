package annotation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaultsBase(t *testing.T) {
	defaults, err := ResolveDefaults(nil)
	require.NoError(t, err)

	assert.Equal(t, Options{
		"clientvalue":   "{{ value }}",
		"includeclient": true,
		"include":       true,
		"split":         false,
		"type":          "string",
		"visible":       true,
	}, defaults)
}

func TestResolveDefaultsCallerValuesWin(t *testing.T) {
	raw := Options{"visible": false, "split": ","}

	defaults, err := ResolveDefaults(raw)
	require.NoError(t, err)

	assert.Equal(t, false, defaults["visible"])
	assert.Equal(t, ",", defaults["split"])
	assert.Equal(t, "{{ value }}", defaults["clientvalue"])
	assert.Len(t, defaults, 6)

	// The input mapping must not be touched.
	assert.Equal(t, Options{"visible": false, "split": ","}, raw)
}

func TestResolveDefaultsUnknownKey(t *testing.T) {
	_, err := ResolveDefaults(Options{"visible": true, "colour": "red"})
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, cfgErr.Error(), "colour")
}

func TestValidateColumnConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Options
		wantErr string
	}{
		{
			name:    "missing name",
			cfg:     Options{"clientname": "x"},
			wantErr: "required key missing",
		},
		{
			name:    "empty name",
			cfg:     Options{"name": ""},
			wantErr: "empty name",
		},
		{
			name:    "non-string name",
			cfg:     Options{"name": 123},
			wantErr: "name must be a string",
		},
		{
			name:    "unknown key",
			cfg:     Options{"name": "a", "colour": "red"},
			wantErr: "invalid key(s)",
		},
		{
			name: "name only",
			cfg:  Options{"name": "a"},
		},
		{
			name: "all optional keys",
			cfg: Options{
				"name": "a", "clientname": "b", "clientvalue": "{{ value }}",
				"includeclient": true, "position": 3, "include": true,
				"split": ";", "type": "string", "visible": false,
			},
		},
		{
			name: "plain placeholder",
			cfg:  Options{"name": "a", "clientvalue": "{{ value }}"},
		},
		{
			name: "placeholder with affixes",
			cfg:  Options{"name": "a", "clientvalue": "prefix-{{ value }}-suffix"},
		},
		{
			name: "tight placeholder",
			cfg:  Options{"name": "a", "clientvalue": "{{value}}"},
		},
		{
			name:    "leftover placeholder",
			cfg:     Options{"name": "a", "clientvalue": "{{value}}-{{other}}"},
			wantErr: "clientvalue template parameter not found: {{other}}",
		},
		{
			name:    "unknown placeholder only",
			cfg:     Options{"name": "a", "clientvalue": "{{ wrong }}"},
			wantErr: "clientvalue template parameter not found",
		},
		{
			name:    "second value placeholder rejected",
			cfg:     Options{"name": "a", "clientvalue": "{{ value }}{{ value }}"},
			wantErr: "clientvalue template parameter not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateColumnConfig(tt.cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestResolveColumnConfigMerge(t *testing.T) {
	defaults, err := ResolveDefaults(nil)
	require.NoError(t, err)

	resolved, err := ResolveColumnConfig(defaults, Options{
		"name":    "Gene",
		"visible": false,
	})
	require.NoError(t, err)

	assert.Equal(t, "Gene", resolved["name"])
	assert.Equal(t, false, resolved["visible"])
	// Unspecified options come from the defaults.
	assert.Equal(t, "{{ value }}", resolved["clientvalue"])
	assert.Equal(t, false, resolved["split"])

	// The defaults mapping must be left alone.
	assert.Equal(t, true, defaults["visible"])
	assert.NotContains(t, defaults, "name")
}

func TestResolveColumnConfigInvalid(t *testing.T) {
	defaults, err := ResolveDefaults(nil)
	require.NoError(t, err)

	_, err = ResolveColumnConfig(defaults, Options{"name": "a", "bogus": 1})
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
}

func TestNewConfigurationPreservesOrder(t *testing.T) {
	cfg, err := NewConfiguration(nil, []Options{
		{"name": "C"},
		{"name": "A"},
		{"name": "B"},
	})
	require.NoError(t, err)
	require.Len(t, cfg.Columns, 3)

	assert.Equal(t, "C", cfg.Columns[0]["name"])
	assert.Equal(t, "A", cfg.Columns[1]["name"])
	assert.Equal(t, "B", cfg.Columns[2]["name"])
}

func TestNewConfigurationIdempotent(t *testing.T) {
	defaults := Options{"split": ","}
	columns := []Options{
		{"name": "A", "clientname": "alpha"},
		{"name": "B", "visible": false},
	}

	first, err := NewConfiguration(defaults, columns)
	require.NoError(t, err)
	second, err := NewConfiguration(defaults, columns)
	require.NoError(t, err)

	assert.Equal(t, first.Defaults, second.Defaults)
	assert.Equal(t, first.Columns, second.Columns)
}

func TestNewConfigurationAbortsOnFirstFailure(t *testing.T) {
	cfg, err := NewConfiguration(nil, []Options{
		{"name": "ok"},
		{"clientname": "no name here"},
	})
	require.Error(t, err)
	assert.Nil(t, cfg)
}
