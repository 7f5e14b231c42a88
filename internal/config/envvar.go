package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrUnresolvedEnvVariable is returned when a "$VAR" reference names an
// unset variable.
var ErrUnresolvedEnvVariable = errors.New("unresolved environment variable")

// ExpandEnvVar resolves s when it starts with '$' and returns it unchanged
// otherwise. The characters $(){} and spaces are removed to form the
// variable name, so "$VAR", "${VAR}" and "$(VAR)" are equivalent.
func ExpandEnvVar(s string) (string, error) {
	return expandEnvVar(s, os.LookupEnv)
}

var envNameStripper = strings.NewReplacer("$", "", "(", "", ")", "", "{", "", "}", "", " ", "")

func expandEnvVar(s string, lookup func(string) (string, bool)) (string, error) {
	if !strings.HasPrefix(s, "$") {
		return s, nil
	}
	name := envNameStripper.Replace(s)
	v, ok := lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: can't resolve %s via %q", ErrUnresolvedEnvVariable, s, name)
	}
	return v, nil
}
