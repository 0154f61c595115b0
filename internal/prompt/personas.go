package prompt

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/lifeops/lifeops-api/internal/domain"
	"github.com/lifeops/lifeops-api/internal/generation"
)

//go:embed personas.yaml
var personasYAML []byte

// roleSpec is one persona entry from the embedded roster.
type roleSpec struct {
	Role          string `yaml:"role"`
	Goal          string `yaml:"goal"`
	Backstory     string `yaml:"backstory"`
	MaxIterations int    `yaml:"max_iterations"`
	RatePerMinute int    `yaml:"rate_per_minute"`
}

func (s roleSpec) persona() generation.Persona {
	return generation.Persona{
		Role:      s.Role,
		Goal:      s.Goal,
		Backstory: s.Backstory,
	}
}

type roster struct {
	Analyzers   map[string]roleSpec `yaml:"analyzers"`
	Coordinator roleSpec            `yaml:"coordinator"`
}

// personas is the parsed roster. The file is an embedded asset, so a
// parse failure is a build defect and panics at init like a bad
// regexp.MustCompile pattern would.
var personas = mustLoadRoster()

func mustLoadRoster() roster {
	var r roster
	if err := yaml.Unmarshal(personasYAML, &r); err != nil {
		panic(fmt.Sprintf("prompt: embedded persona roster is invalid: %v", err))
	}
	for _, d := range domain.Domains {
		spec, ok := r.Analyzers[d.String()]
		if !ok {
			panic(fmt.Sprintf("prompt: persona roster is missing domain %q", d))
		}
		if spec.Role == "" || spec.MaxIterations <= 0 || spec.RatePerMinute <= 0 {
			panic(fmt.Sprintf("prompt: persona roster entry %q is incomplete", d))
		}
	}
	if r.Coordinator.Role == "" || r.Coordinator.MaxIterations <= 0 || r.Coordinator.RatePerMinute <= 0 {
		panic("prompt: persona roster coordinator entry is incomplete")
	}
	return r
}

// AnalyzerPersona returns the persona for the given analysis domain.
func AnalyzerPersona(d domain.Domain) (generation.Persona, error) {
	spec, ok := personas.Analyzers[d.String()]
	if !ok {
		return generation.Persona{}, fmt.Errorf("%w: %q", domain.ErrUnknownDomain, d)
	}
	return spec.persona(), nil
}

// CoordinatorPersona returns the coordinator persona.
func CoordinatorPersona() generation.Persona {
	return personas.Coordinator.persona()
}
