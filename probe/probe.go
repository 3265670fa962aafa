package probe

import "github.com/jonwraymond/canary/health"

// described supplies the Descriptor method shared by every probe.
type described struct {
	desc health.Descriptor
}

func (d described) Descriptor() health.Descriptor {
	return d.desc
}

func describe(name string, kind health.Kind, opts []health.DescriptorOption) described {
	all := make([]health.DescriptorOption, 0, len(opts)+1)
	all = append(all, health.WithKind(kind))
	all = append(all, opts...)
	return described{desc: health.NewDescriptor(name, all...)}
}
