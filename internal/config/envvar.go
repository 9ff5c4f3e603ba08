package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// EnvVarSpec represents a parsed environment variable specification
type EnvVarSpec struct {
	// VarName is the environment variable name (e.g., "STEPKIT_ADDR")
	VarName string

	// HasDefault indicates if a default value was provided
	HasDefault bool

	// DefaultValue is the default value if HasDefault is true
	DefaultValue string

	// IsLiteral indicates if this is a literal value (not an env var)
	IsLiteral bool

	// LiteralValue is the literal value if IsLiteral is true
	LiteralValue string
}

// envVarPattern matches ${VAR} and ${VAR:default} syntax
var envVarPattern = regexp.MustCompile(`^\$\{([A-Z_][A-Z0-9_]*)(:[^}]*)?\}$`)

// ParseEnvVar parses a config value that may contain environment variable syntax
//
// Supported formats:
//   - ${VAR}         - Required environment variable
//   - ${VAR:default} - Optional environment variable with default
//   - literal        - Plain literal value (no env var)
//
// Step references such as "${ Octopus.Release.Number }" do not match the
// pattern and stay literal, so they pass through to the resolver.
func ParseEnvVar(value string) *EnvVarSpec {
	matches := envVarPattern.FindStringSubmatch(value)
	if matches == nil {
		return &EnvVarSpec{
			IsLiteral:    true,
			LiteralValue: value,
		}
	}

	spec := &EnvVarSpec{
		VarName:    matches[1],
		HasDefault: matches[2] != "",
	}
	if spec.HasDefault {
		spec.DefaultValue = strings.TrimPrefix(matches[2], ":")
	}
	return spec
}

// Resolve returns the final value of the spec using lookup for env vars.
func (s *EnvVarSpec) Resolve(lookup func(string) (string, bool)) (string, error) {
	if s.IsLiteral {
		return s.LiteralValue, nil
	}
	if v, ok := lookup(s.VarName); ok {
		return v, nil
	}
	if s.HasDefault {
		return s.DefaultValue, nil
	}
	return "", fmt.Errorf("required environment variable %s is not set", s.VarName)
}

// expandEnv replaces env var strings anywhere in a decoded YAML document.
func expandEnv(value any) (any, error) {
	return expandEnvWith(value, os.LookupEnv)
}

func expandEnvWith(value any, lookup func(string) (string, bool)) (any, error) {
	switch v := value.(type) {
	case string:
		return ParseEnvVar(v).Resolve(lookup)

	case map[string]any:
		for key, val := range v {
			expanded, err := expandEnvWith(val, lookup)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			v[key] = expanded
		}
		return v, nil

	case []any:
		for i, val := range v {
			expanded, err := expandEnvWith(val, lookup)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			v[i] = expanded
		}
		return v, nil

	default:
		return value, nil
	}
}
