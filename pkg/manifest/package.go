package manifest

// Metadata type names registered by the handlers
const (
	TypeApexPage       = "ApexPage"
	TypeApexClass      = "ApexClass"
	TypeStaticResource = "StaticResource"
)

// TypeMembers is one <types> block of a manifest
type TypeMembers struct {
	Name    string
	Members []string
}

// Package accumulates metadata members by type while artifacts are emitted.
// Types keep their first-registration order and members are never
// deduplicated.
type Package struct {
	order   []string
	members map[string][]string
}

// New returns an empty accumulator
func New() *Package {
	return &Package{members: make(map[string][]string)}
}

// Add registers member under typeName
func (p *Package) Add(typeName, member string) *Package {
	if _, ok := p.members[typeName]; !ok {
		p.order = append(p.order, typeName)
	}
	p.members[typeName] = append(p.members[typeName], member)
	return p
}

// Members returns a copy of the members registered for typeName
func (p *Package) Members(typeName string) []string {
	return append([]string(nil), p.members[typeName]...)
}

// Types returns every type with its members in registration order
func (p *Package) Types() []TypeMembers {
	out := make([]TypeMembers, 0, len(p.order))
	for _, name := range p.order {
		out = append(out, TypeMembers{Name: name, Members: p.Members(name)})
	}
	return out
}

// Len returns the total number of registered members
func (p *Package) Len() int {
	n := 0
	for _, m := range p.members {
		n += len(m)
	}
	return n
}
