package cli

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Options carries the resolved CLI configuration.
type Options struct {
	Locale string
	Fields []string
	Debug  bool
}

// loadOptions resolves options by layering defaults, MODELTREE_* environment
// variables, and explicitly set flags, in increasing priority.
func loadOptions(flags *pflag.FlagSet) (*Options, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"locale": "en",
		"fields": []string{},
		"debug":  false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Environment variables: MODELTREE_LOCALE -> locale. Slice-valued
	// keys arrive as one comma-separated string and must be split here;
	// koanf's Strings() returns nil for a plain string value.
	if err := k.Load(env.ProviderWithValue("MODELTREE_", ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(strings.TrimPrefix(key, "MODELTREE_"))
		if key == "fields" {
			return key, splitList(value)
		}
		return key, value
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 3. Flags (highest priority; only flags that were explicitly set)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return f.Name, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	return &Options{
		Locale: k.String("locale"),
		Fields: k.Strings("fields"),
		Debug:  k.Bool("debug"),
	}, nil
}

// splitList splits a comma-separated env value, trimming whitespace and
// dropping empty entries.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
