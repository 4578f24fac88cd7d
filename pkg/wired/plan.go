package wired

import (
	"slices"
	"sync"
)

// Binding pairs a property with the service it receives.
type Binding struct {
	Property string
	// Target is a service name for by-name bindings and a type identifier for by-type ones.
	Target string
}

// InjectionPlan is the per-class injection requirements, in declaration order.
type InjectionPlan struct {
	byName []Binding
	byType []Binding
}

// ByName returns the properties injected by service name.
func (p *InjectionPlan) ByName() []Binding {
	return slices.Clone(p.byName)
}

// ByType returns the properties injected by type identifier.
func (p *InjectionPlan) ByType() []Binding {
	return slices.Clone(p.byType)
}

// Len is the number of planned injections.
func (p *InjectionPlan) Len() int {
	return len(p.byName) + len(p.byType)
}

// Target returns the injection target of property.
func (p *InjectionPlan) Target(property string) (string, bool) {
	for _, b := range p.byName {
		if b.Property == property {
			return b.Target, true
		}
	}
	for _, b := range p.byType {
		if b.Property == property {
			return b.Target, true
		}
	}
	return "", false
}

// Calls renders the plan as injectProperty calls, by-name bindings first.
func (p *InjectionPlan) Calls() []SetupCall {
	calls := make([]SetupCall, 0, p.Len())
	for _, b := range p.byName {
		calls = append(calls, InjectPropertyCall(b.Property, b.Target))
	}
	for _, b := range p.byType {
		calls = append(calls, InjectPropertyCall(b.Property, b.Target))
	}
	return calls
}

// Plan builds the injection plan of class. Marked properties without a name
// whose declared type is missing or unresolvable are left out.
func Plan(class *Class) *InjectionPlan {
	plan := &InjectionPlan{}
	if class == nil {
		return plan
	}

	seen := make(map[string]struct{}, len(class.Properties))
	for _, prop := range class.Properties {
		if prop.Inject == nil {
			continue
		}
		if _, dup := seen[prop.Name]; dup {
			continue
		}

		if prop.Inject.Name != "" {
			seen[prop.Name] = struct{}{}
			plan.byName = append(plan.byName, Binding{Property: prop.Name, Target: prop.Inject.Name})
			continue
		}

		if prop.DeclaredType == "" {
			continue
		}
		typeID, ok := class.resolveType(prop.DeclaredType)
		if !ok {
			continue
		}
		seen[prop.Name] = struct{}{}
		plan.byType = append(plan.byType, Binding{Property: prop.Name, Target: typeID})
	}
	return plan
}

var planCache sync.Map // class name -> *InjectionPlan

// PlanCached is Plan memoized by class name.
func PlanCached(class *Class) *InjectionPlan {
	if class == nil || class.Name == "" {
		return Plan(class)
	}
	if cached, ok := planCache.Load(class.Name); ok {
		return cached.(*InjectionPlan)
	}
	actual, _ := planCache.LoadOrStore(class.Name, Plan(class))
	return actual.(*InjectionPlan)
}
