// Package yaml reads jsonextract defaults from a YAML file and feeds them to
// kong as a configuration resolver.
//
// Top-level keys apply to every command; a mapping named after a command
// applies to that command only and wins over top-level keys:
//
//	mode: content
//	extract:
//	  concurrency: 8
//	serve:
//	  addr: 127.0.0.1:9000
package yaml

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/jsonextract"
	"gopkg.in/yaml.v3"
)

// Loader parses YAML from r into a kong resolver. It satisfies
// kong.ConfigurationLoader.
func Loader(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, jsonextract.Errorf(jsonextract.EINVALID, "invalid config: %v", err)
	}

	return kong.ResolverFunc(func(kctx *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		if parent != nil && parent.Command != nil {
			if section, ok := values[parent.Command.Name].(map[string]any); ok {
				if v, ok := lookup(section, flag.Name); ok {
					return v, nil
				}
			}
		}
		if v, ok := lookup(values, flag.Name); ok {
			return v, nil
		}
		return nil, nil
	}), nil
}

// lookup finds a scalar under name, accepting snake_case spellings of
// kebab-case flags. Values are returned as strings for kong's mappers.
func lookup(values map[string]any, name string) (string, bool) {
	v, ok := values[name]
	if !ok {
		v, ok = values[strings.ReplaceAll(name, "-", "_")]
	}
	if !ok || v == nil {
		return "", false
	}
	switch v.(type) {
	case map[string]any, []any:
		return "", false
	}
	return fmt.Sprint(v), true
}
