// Package handlers turns file descriptors into artifacts.
//
// Each template kind has one handler, registered at init in a registry keyed
// by types.Kind. A handler resolves its option set, picks its template and
// destination under outputDir, registers members on the package accumulator
// and emits the artifact. Page handlers cascade into the handlers of the
// files that belong with the page:
//
//	SinglePageApp
//	├── ApexPageMeta                          (meta)
//	├── SinglePageAppController               (controller)
//	│   ├── ApexClassMeta                     (meta)
//	│   └── SinglePageAppControllerTest       (testClass)
//	│       └── ApexClassMeta                 (meta)
//	├── Package                               (meta)
//	└── StaticResourceMeta                    (meta)
//
// Handlers never write files themselves; emission goes through an Emitter,
// normally the build compiler.
package handlers
