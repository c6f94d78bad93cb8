// FILE: lixenwraith/deconfig/args.go
package deconfig

import (
	"fmt"
	"strings"
)

type flagNameOption struct{}

// FlagName overrides the command-line key of a field for ArgsAdapter.
func FlagName(name string) Modifier {
	return func(m *MethodBuilder) {
		m.Option(flagNameOption{}, name)
	}
}

// ArgsAdapter resolves fields from command-line style arguments:
// "--server.port=8080", "--server.port 8080" or "--verbose" (true).
// Values are kept as strings for transformers to convert.
type ArgsAdapter struct {
	values map[string]any
}

// NewArgsAdapter parses args once. Keys must be dotted segments starting with
// a letter or underscore.
func NewArgsAdapter(args []string) (*ArgsAdapter, error) {
	parsed, err := parseArgs(args)
	if err != nil {
		return nil, err
	}
	return &ArgsAdapter{values: flattenMap(parsed, "")}, nil
}

// Name implements Named.
func (a *ArgsAdapter) Name() string { return "args" }

// GetField implements Adapter.
func (a *ArgsAdapter) GetField(name string, field *Field, _ ...any) (any, error) {
	key := name
	if v, ok := field.Option(flagNameOption{}); ok {
		key = v.(string)
	}
	value, ok := a.values[key]
	if !ok {
		return nil, notFoundf("argument --%s not given", key)
	}
	return value, nil
}

// parseArgs processes command-line arguments into a nested map structure.
func parseArgs(args []string) (map[string]any, error) {
	result := make(map[string]any)
	i := 0
	for i < len(args) {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") {
			// Skip non-flag arguments
			i++
			continue
		}

		argContent := strings.TrimPrefix(arg, "--")
		if argContent == "" {
			// "--" separator
			i++
			continue
		}

		var keyPath, valueStr string
		if k, v, found := strings.Cut(argContent, "="); found {
			keyPath, valueStr = k, v
			i++
		} else {
			keyPath = argContent
			if i+1 >= len(args) || strings.HasPrefix(args[i+1], "--") {
				valueStr = "true"
				i++
			} else {
				valueStr = args[i+1]
				i += 2
			}
		}

		if keyPath == "" {
			// Skip invalid flags like --=value
			continue
		}

		for _, segment := range strings.Split(keyPath, ".") {
			if !isValidKeySegment(segment) {
				return nil, fmt.Errorf("invalid command-line key segment %q in path %q", segment, keyPath)
			}
		}

		setNestedValue(result, keyPath, valueStr)
	}

	return result, nil
}

// isValidKeySegment checks a single segment of a dotted key
func isValidKeySegment(s string) bool {
	if len(s) == 0 {
		return false
	}
	first := rune(s[0])
	if !isAlpha(first) && first != '_' {
		return false
	}
	for _, r := range s[1:] {
		if !isAlpha(r) && !isNumeric(r) && r != '-' && r != '_' {
			return false
		}
	}
	return true
}

func isAlpha(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNumeric(c rune) bool {
	return c >= '0' && c <= '9'
}
