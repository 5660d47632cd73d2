package types

// TemplateRef points at the template an artifact is rendered from. Built-in
// templates live in the embedded template directory, anything else is read
// from the filesystem.
type TemplateRef struct {
	Path    string
	Builtin bool
}

func (t TemplateRef) String() string {
	if t.Builtin {
		return "builtin:" + t.Path
	}
	return t.Path
}

// Artifact is one fully resolved file emission: the template, the
// destination and the values handed to the template.
type Artifact struct {
	Kind     Kind
	Template TemplateRef
	Filename string
	// Inject is always false; artifacts are never injected into an HTML shell.
	Inject bool
	Data   map[string]interface{}
}

// FileDescriptor is one entry of the caller's "files" list
type FileDescriptor struct {
	Kind   Kind
	Fields map[string]interface{}
}
