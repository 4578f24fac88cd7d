package wired

// callSet is a setup sequence that generated calls can consume by identity
// while the remaining calls keep their original order.
type callSet struct {
	calls    []SetupCall
	consumed []bool
	index    map[string][]int
}

func newCallSet(calls []SetupCall) *callSet {
	s := &callSet{
		calls:    calls,
		consumed: make([]bool, len(calls)),
		index:    make(map[string][]int, len(calls)),
	}
	for i, call := range calls {
		id := call.Identity()
		s.index[id] = append(s.index[id], i)
	}
	return s
}

// take removes and returns the first remaining call with the given identity.
func (s *callSet) take(identity string) (SetupCall, bool) {
	positions := s.index[identity]
	if len(positions) == 0 {
		return SetupCall{}, false
	}
	i := positions[0]
	s.index[identity] = positions[1:]
	s.consumed[i] = true
	return s.calls[i], true
}

func (s *callSet) rest() []SetupCall {
	var out []SetupCall
	for i, call := range s.calls {
		if !s.consumed[i] {
			out = append(out, call)
		}
	}
	return out
}

// Compose rewrites the setup sequence of desc so that the planned injections
// run first, followed by injectParameters(@container) and
// injectionCompleted(), followed by the remaining author-declared calls.
// An author-declared call with the same identity as a generated one replaces
// it in place.
//
// Compose is not idempotent. The builder runs it once per descriptor.
func Compose(desc *ServiceDescriptor, plan *InjectionPlan) {
	existing := newCallSet(desc.Setup)
	generated := plan.Calls()

	final := make([]SetupCall, 0, len(generated)+2+len(desc.Setup))
	for _, call := range generated {
		if authored, ok := existing.take(call.Identity()); ok {
			call = authored
		}
		final = append(final, call)
	}
	final = append(final,
		Call(OpInjectParameters, ContainerArg()),
		Call(OpInjectionCompleted),
	)
	final = append(final, existing.rest()...)
	desc.Setup = final
}

// ApplyInjectTag prepends a no-argument call for every inject-prefixed method,
// merged with the existing sequence by the same rule as Compose. The guard
// operations are never added.
func ApplyInjectTag(desc *ServiceDescriptor, methods []string) {
	existing := newCallSet(desc.Setup)

	var block []SetupCall
	for _, method := range methods {
		if !isInjectMethod(method) {
			continue
		}
		call := Call(method)
		if authored, ok := existing.take(call.Identity()); ok {
			call = authored
		}
		block = append(block, call)
	}
	if len(block) == 0 {
		return
	}
	desc.Setup = append(block, existing.rest()...)
}
