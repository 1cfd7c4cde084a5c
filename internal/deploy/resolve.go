package deploy

import (
	"fmt"
	"sort"
	"strings"
)

// Sources a resolved env var can come from.
const (
	SourceLiteral = "literal"
	SourceService = "service"
	SourceSecret  = "secret"
)

// ResolvedVar is one concrete environment entry for a worker.
type ResolvedVar struct {
	Key    string
	Value  string
	Source string
}

// ResolveOptions supplies the values the manifest itself cannot carry.
// Secrets feeds sync:false bindings; ServiceProps maps service name →
// property → value for fromService bindings (the platform knows these at
// deploy time, callers may leave them out to get placeholders).
type ResolveOptions struct {
	Secrets      map[string]string
	ServiceProps map[string]map[string]string
}

// MissingSecretsError reports sync:false keys that were not provided.
type MissingSecretsError struct {
	Keys []string
}

func (e *MissingSecretsError) Error() string {
	return "missing required secrets: " + strings.Join(e.Keys, ", ")
}

// Resolve computes the concrete environment for every worker service.
// Literals pass through, fromService bindings look up the referenced
// service's property (falling back to a ${service.property} placeholder when
// the property map has no entry), and sync:false bindings must be present in
// opts.Secrets or resolution fails with a MissingSecretsError naming every
// absent key.
//
// The manifest must already have passed Validate; dangling references here
// return an error rather than a violation list.
func Resolve(m *Manifest, opts ResolveOptions) (map[string][]ResolvedVar, error) {
	out := make(map[string][]ResolvedVar)
	var missing []string

	for _, w := range m.Workers() {
		vars := make([]ResolvedVar, 0, len(w.EnvVars))
		for _, ev := range w.EnvVars {
			switch {
			case ev.FromService != nil:
				ref := ev.FromService
				if m.FindService(ref.Name) == nil {
					return nil, fmt.Errorf("env var %q: undeclared service %q", ev.Key, ref.Name)
				}
				value := fmt.Sprintf("${%s.%s}", ref.Name, ref.Property)
				if props, ok := opts.ServiceProps[ref.Name]; ok {
					if v, ok := props[ref.Property]; ok {
						value = v
					}
				}
				vars = append(vars, ResolvedVar{Key: ev.Key, Value: value, Source: SourceService})

			case ev.Secret():
				v, ok := opts.Secrets[ev.Key]
				if !ok {
					missing = append(missing, ev.Key)
					continue
				}
				vars = append(vars, ResolvedVar{Key: ev.Key, Value: v, Source: SourceSecret})

			default:
				vars = append(vars, ResolvedVar{Key: ev.Key, Value: ev.Value, Source: SourceLiteral})
			}
		}
		out[w.Name] = vars
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &MissingSecretsError{Keys: missing}
	}
	return out, nil
}
