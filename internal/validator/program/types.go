// Package program validates assembled insurance program structures. All
// findings are advisory: a program that fails a rule is still saved, the
// findings travel back to the caller as warnings.
package program

import "github.com/cpeacock1649-gif/layer-builder/internal/domain"

// Finding is a single validation result.
type Finding struct {
	RuleKey    string `json:"rule_key"`
	LayerIndex int    `json:"layer_index"`
	Message    string `json:"message"`
}

// Validator checks one structural property of a program.
type Validator interface {
	RuleKey() string
	Validate(p *domain.Program) []Finding
}

// Registry maps rule keys to Validator implementations.
type Registry struct {
	validators map[string]Validator
	order      []string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{validators: make(map[string]Validator)}
}

// Register adds a validator to the registry.
func (r *Registry) Register(v Validator) {
	if _, ok := r.validators[v.RuleKey()]; !ok {
		r.order = append(r.order, v.RuleKey())
	}
	r.validators[v.RuleKey()] = v
}

// Get returns the validator for a given rule key, or nil if not found.
func (r *Registry) Get(key string) Validator {
	return r.validators[key]
}

// All returns registered validators in registration order.
func (r *Registry) All() []Validator {
	out := make([]Validator, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.validators[key])
	}
	return out
}

// DefaultRegistry returns a registry with all built-in rules.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&PositiveLimitRule{})
	r.Register(&ShareSumRule{})
	r.Register(&RBEShareSumRule{})
	r.Register(&PrimaryAttachmentRule{})
	r.Register(&TowerContinuityRule{})
	return r
}

// Validate runs every registered rule against the program.
func (r *Registry) Validate(p *domain.Program) []Finding {
	var findings []Finding
	for _, v := range r.All() {
		findings = append(findings, v.Validate(p)...)
	}
	return findings
}
