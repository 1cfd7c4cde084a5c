// Package deploy models the hosting platform manifest (render.yaml) that
// provisions this bot: a managed Postgres service plus a worker process wired
// together through environment variable bindings.
package deploy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Service types understood by the manifest.
const (
	TypeManagedPostgres = "pserv"
	TypeWorker          = "worker"
)

// Properties of a service that env var bindings may reference.
const (
	PropConnectionString = "connectionString"
	PropHost             = "host"
	PropPort             = "port"
)

// Manifest is the declarative root document. x-required-secrets is this
// repo's documentation block for env vars that must be provisioned
// out-of-band (sync: false): the manifest alone cannot express where those
// values come from, so it at least names them.
type Manifest struct {
	Services        []Service `yaml:"services"`
	RequiredSecrets []string  `yaml:"x-required-secrets,omitempty"`
}

// Service describes one provisioned unit: a managed database or a worker.
type Service struct {
	Type         string           `yaml:"type"`
	Name         string           `yaml:"name"`
	Plan         string           `yaml:"plan,omitempty"`
	Env          string           `yaml:"env,omitempty"`
	Region       string           `yaml:"region,omitempty"`
	Postgres     *PostgresOptions `yaml:"postgres,omitempty"`
	BuildCommand string           `yaml:"buildCommand,omitempty"`
	StartCommand string           `yaml:"startCommand,omitempty"`
	EnvVars      []EnvVar         `yaml:"envVars,omitempty"`
}

type PostgresOptions struct {
	Version string `yaml:"version"`
}

// EnvVar is a single environment binding. Exactly one source applies:
//   - Value set: a literal;
//   - FromService set: derived from a property of another service;
//   - Sync pointing at false: an externally supplied secret, provisioned
//     through the platform's dashboard before the worker can start.
type EnvVar struct {
	Key         string      `yaml:"key"`
	Value       string      `yaml:"value,omitempty"`
	Sync        *bool       `yaml:"sync,omitempty"`
	FromService *ServiceRef `yaml:"fromService,omitempty"`
}

// ServiceRef points an env var at a property of another declared service.
type ServiceRef struct {
	Type     string `yaml:"type"`
	Name     string `yaml:"name"`
	Property string `yaml:"property"`
}

// Secret reports whether this binding must be supplied out-of-band.
func (e EnvVar) Secret() bool { return e.Sync != nil && !*e.Sync }

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(b)
}

// Parse decodes manifest YAML. Unknown top-level keys are tolerated (the
// platform schema grows over time) but the known fields must have the right
// shapes.
func Parse(b []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

// Marshal serializes the manifest back to YAML. Parse(Marshal(m)) yields a
// manifest equal to m: no field known to this package is dropped or reordered.
func (m *Manifest) Marshal() ([]byte, error) {
	b, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return b, nil
}

// FindService returns the service with the given name, or nil.
func (m *Manifest) FindService(name string) *Service {
	for i := range m.Services {
		if m.Services[i].Name == name {
			return &m.Services[i]
		}
	}
	return nil
}

// Workers returns the worker services in declaration order.
func (m *Manifest) Workers() []*Service {
	var out []*Service
	for i := range m.Services {
		if m.Services[i].Type == TypeWorker {
			out = append(out, &m.Services[i])
		}
	}
	return out
}
