package optset

import (
	"errors"
	"fmt"

	"github.com/dzonerzy/go-optset/internal/depgraph"
)

type ruleKind int

const (
	ruleRequires ruleKind = iota + 1
	rulePrecludes
)

// ruleDecl is one declared rule as written by the user, validated by Build
type ruleDecl struct {
	kind    ruleKind
	subject ID
	other   ID
}

type preclusion struct {
	precludedBy ID
	precluded   ID
}

// ruleSet is the validated form: a closed requirement graph and preclusion pairs
type ruleSet struct {
	requirements *depgraph.Graph[ID]
	preclusions  []preclusion
}

// newRuleSet validates decls against the registered IDs 1..n.
// Every problem found is returned; a nil error means the rules are consistent.
func newRuleSet(decls []ruleDecl, n int, name func(ID) string) (*ruleSet, error) {
	rs := &ruleSet{requirements: depgraph.New[ID]()}
	known := func(id ID) bool { return id >= 1 && int(id) <= n }
	seen := make(map[preclusion]struct{})

	var errs []error
	for _, d := range decls {
		if !known(d.subject) || !known(d.other) {
			errs = append(errs, configErrorf("", "rule references unknown option id %d", unknownOf(d, known)))
			continue
		}

		switch d.kind {
		case ruleRequires:
			dep, err := depgraph.NewDependency(d.subject, d.other)
			if err != nil {
				errs = append(errs, configErrorf(name(d.subject), "option cannot require itself"))
				continue
			}
			rs.requirements.Add(dep)
		case rulePrecludes:
			if d.subject == d.other {
				errs = append(errs, configErrorf(name(d.subject), "option cannot preclude itself"))
				continue
			}
			p := preclusion{precludedBy: d.subject, precluded: d.other}
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			rs.preclusions = append(rs.preclusions, p)
		}
	}

	// contradictions are checked against the closed graph, in both directions
	for _, p := range rs.preclusions {
		if rs.requirements.Contains(depgraph.Dependency[ID]{Dependent: p.precludedBy, Dependee: p.precluded}) ||
			rs.requirements.Contains(depgraph.Dependency[ID]{Dependent: p.precluded, Dependee: p.precludedBy}) {
			errs = append(errs, configErrorf(name(p.precludedBy),
				"%s both requires and precludes %s", name(p.precludedBy), name(p.precluded)))
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return rs, nil
}

func unknownOf(d ruleDecl, known func(ID) bool) ID {
	if !known(d.subject) {
		return d.subject
	}
	return d.other
}

// violation returns the first broken rule for the matched options, or nil.
// Requirements are checked before preclusions, each in stored order.
func (rs *ruleSet) violation(matched func(ID) bool, name func(ID) string) *ParseError {
	for _, dep := range rs.requirements.All() {
		if matched(dep.Dependent) && !matched(dep.Dependee) {
			return &ParseError{
				Type:       ErrorTypeMissingRequired,
				Option:     name(dep.Dependee),
				RequiredBy: name(dep.Dependent),
			}
		}
	}

	for _, p := range rs.preclusions {
		if matched(p.precludedBy) && matched(p.precluded) {
			return &ParseError{
				Type:        ErrorTypePrecluded,
				Option:      name(p.precluded),
				PrecludedBy: name(p.precludedBy),
			}
		}
	}
	return nil
}

// requiresOf and precludesOf feed help output
func (rs *ruleSet) requiresOf(id ID) []ID { return rs.requirements.DependeesOf(id) }

func (rs *ruleSet) precludesOf(id ID) []ID {
	var out []ID
	for _, p := range rs.preclusions {
		switch id {
		case p.precludedBy:
			out = append(out, p.precluded)
		case p.precluded:
			out = append(out, p.precludedBy)
		}
	}
	return out
}

func (d ruleDecl) String() string {
	verb := "requires"
	if d.kind == rulePrecludes {
		verb = "precludes"
	}
	return fmt.Sprintf("%d %s %d", d.subject, verb, d.other)
}
