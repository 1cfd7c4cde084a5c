package deploy

import (
	"fmt"
)

// Violation is one structural problem found in a manifest. Path is a
// dotted locator like "services[1].envVars[0]".
type Violation struct {
	Path    string
	Message string
}

func (v Violation) String() string { return v.Path + ": " + v.Message }

func violation(msg string, path string, args ...any) Violation {
	return Violation{Path: path, Message: fmt.Sprintf(msg, args...)}
}

// Validate checks every structural invariant the manifest must hold and
// returns the full list of violations rather than stopping at the first:
//
//   - service names are unique across the document and non-empty;
//   - service types are known (pserv | worker);
//   - every fromService binding resolves to a declared service of the
//     declared type;
//   - env var keys are non-empty and carry at most one value source;
//   - every sync:false binding is documented in x-required-secrets.
func Validate(m *Manifest) []Violation {
	var out []Violation

	if len(m.Services) == 0 {
		out = append(out, violation("manifest declares no services", "services"))
		return out
	}

	seen := map[string]int{}
	for i, s := range m.Services {
		path := fmt.Sprintf("services[%d]", i)
		if s.Name == "" {
			out = append(out, violation("service name must not be empty", path))
		} else if prev, dup := seen[s.Name]; dup {
			out = append(out, violation("service name %q duplicates services[%d]", path, s.Name, prev))
		} else {
			seen[s.Name] = i
		}

		switch s.Type {
		case TypeManagedPostgres, TypeWorker:
		case "":
			out = append(out, violation("service type must not be empty", path))
		default:
			out = append(out, violation("unknown service type %q", path, s.Type))
		}

		if s.Type == TypeWorker && s.StartCommand == "" {
			out = append(out, violation("worker %q has no startCommand", path, s.Name))
		}
	}

	documented := map[string]bool{}
	for _, key := range m.RequiredSecrets {
		documented[key] = true
	}

	for i, s := range m.Services {
		for j, ev := range s.EnvVars {
			path := fmt.Sprintf("services[%d].envVars[%d]", i, j)
			if ev.Key == "" {
				out = append(out, violation("env var key must not be empty", path))
				continue
			}

			sources := 0
			if ev.Value != "" {
				sources++
			}
			if ev.FromService != nil {
				sources++
			}
			if ev.Secret() {
				sources++
			}
			if sources > 1 {
				out = append(out, violation("env var %q declares more than one value source", path, ev.Key))
			}

			if ref := ev.FromService; ref != nil {
				target := m.FindService(ref.Name)
				switch {
				case target == nil:
					out = append(out, violation("env var %q references undeclared service %q", path, ev.Key, ref.Name))
				case ref.Type != "" && target.Type != ref.Type:
					out = append(out, violation("env var %q expects service %q to be %q, but it is %q",
						path, ev.Key, ref.Name, ref.Type, target.Type))
				}
				if ref.Property == "" {
					out = append(out, violation("env var %q references service %q without a property", path, ev.Key, ref.Name))
				}
			}

			if ev.Secret() && !documented[ev.Key] {
				out = append(out, violation("secret env var %q is not documented in x-required-secrets", path, ev.Key))
			}
		}
	}

	return out
}
