package config

import (
	"testing"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}
}

func TestParseEnvVar_RequiredVariable(t *testing.T) {
	spec := ParseEnvVar("${REDIS_ADDR}")

	if spec.IsLiteral {
		t.Error("Expected IsLiteral=false for env var")
	}
	if spec.VarName != "REDIS_ADDR" {
		t.Errorf("Expected VarName='REDIS_ADDR', got '%s'", spec.VarName)
	}
	if spec.HasDefault {
		t.Error("Expected HasDefault=false for required variable")
	}
}

func TestParseEnvVar_WithDefault(t *testing.T) {
	spec := ParseEnvVar("${STEPKIT_ADDR::8080}")

	if spec.VarName != "STEPKIT_ADDR" {
		t.Errorf("Expected VarName='STEPKIT_ADDR', got '%s'", spec.VarName)
	}
	if !spec.HasDefault || spec.DefaultValue != ":8080" {
		t.Errorf("Expected default ':8080', got '%s' (HasDefault=%v)", spec.DefaultValue, spec.HasDefault)
	}
}

func TestParseEnvVar_Literals(t *testing.T) {
	tests := []string{
		"localhost:6379",
		"",
		"${lowercase}",
		"${ Octopus.Release.Number }",
		"prefix ${VAR}",
	}

	for _, value := range tests {
		spec := ParseEnvVar(value)
		if !spec.IsLiteral || spec.LiteralValue != value {
			t.Errorf("Expected %q to be literal, got %+v", value, spec)
		}
	}
}

func TestEnvVarSpec_Resolve(t *testing.T) {
	lookup := lookupFrom(map[string]string{"SET": "value", "EMPTY": ""})

	tests := []struct {
		raw       string
		want      string
		shouldErr bool
	}{
		{"${SET}", "value", false},
		{"${SET:fallback}", "value", false},
		{"${EMPTY:fallback}", "", false},
		{"${UNSET:fallback}", "fallback", false},
		{"${UNSET:}", "", false},
		{"${UNSET}", "", true},
		{"literal", "literal", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseEnvVar(tt.raw).Resolve(lookup)
			if tt.shouldErr {
				if err == nil {
					t.Errorf("Expected error, got value '%s'", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected '%s', got '%s'", tt.want, got)
			}
		})
	}
}

func TestExpandEnvWith_Nested(t *testing.T) {
	doc := map[string]any{
		"a": "${X}",
		"b": map[string]any{"c": []any{"${X}", 3, "plain"}},
	}

	out, err := expandEnvWith(doc, lookupFrom(map[string]string{"X": "x"}))
	if err != nil {
		t.Fatalf("expandEnvWith failed: %v", err)
	}

	m := out.(map[string]any)
	if m["a"] != "x" {
		t.Errorf("Expected a=x, got %v", m["a"])
	}
	list := m["b"].(map[string]any)["c"].([]any)
	if list[0] != "x" || list[1] != 3 || list[2] != "plain" {
		t.Errorf("Unexpected list: %v", list)
	}
}
