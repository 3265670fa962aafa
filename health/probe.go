package health

import "context"

// Probe checks one dependency.
//
// Check may return an error or panic; either is treated as a failure to
// compute a status, never as a status in its own right.
type Probe interface {
	Check(ctx context.Context) (Result, error)
}

// ProbeFunc adapts a function to the Probe interface.
type ProbeFunc func(ctx context.Context) (Result, error)

// Check implements Probe.
func (f ProbeFunc) Check(ctx context.Context) (Result, error) {
	return f(ctx)
}

// Describer is implemented by probes that carry their own cache descriptor.
type Describer interface {
	Descriptor() Descriptor
}

// DescribedProbe is a Probe bundled with its Descriptor.
type DescribedProbe struct {
	Probe
	desc Descriptor
}

// Describe attaches desc to p so it can be passed to RegisterProbe.
func Describe(p Probe, desc Descriptor) DescribedProbe {
	return DescribedProbe{Probe: p, desc: desc}
}

// Descriptor implements Describer.
func (d DescribedProbe) Descriptor() Descriptor {
	return d.desc
}

func isNilProbe(p Probe) bool {
	if p == nil {
		return true
	}
	if f, ok := p.(ProbeFunc); ok && f == nil {
		return true
	}
	if d, ok := p.(DescribedProbe); ok {
		return isNilProbe(d.Probe)
	}
	return false
}
