// pkg/handlers/handlers_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None (artifacts are recorded, not rendered)
// PURPOSE: Test dispatch, per-kind defaults, cascades and accumulator registration

package handlers

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/jdcrensh/sftemplate/pkg/errors"
	"github.com/jdcrensh/sftemplate/pkg/manifest"
	"github.com/jdcrensh/sftemplate/pkg/options"
	"github.com/jdcrensh/sftemplate/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	artifacts []types.Artifact
}

func (r *recorder) Emit(a types.Artifact) {
	r.artifacts = append(r.artifacts, a)
}

func (r *recorder) filenames() []string {
	out := make([]string, 0, len(r.artifacts))
	for _, a := range r.artifacts {
		out = append(out, a.Filename)
	}
	return out
}

func (r *recorder) byFilename(t *testing.T, name string) types.Artifact {
	t.Helper()
	var found *types.Artifact
	for i := range r.artifacts {
		if r.artifacts[i].Filename == name {
			found = &r.artifacts[i]
		}
	}
	require.NotNil(t, found, "no artifact for %s", name)
	return *found
}

func globalSet(t *testing.T, extra map[string]interface{}) *options.Set {
	t.Helper()
	s, err := options.NewBuilder().
		With("defaults", map[string]interface{}{
			"outputDir":    "/out",
			"apiVersion":   "36.0",
			"meta":         true,
			"xmlNamespace": "http://soap.sforce.com/2006/04/metadata",
		}).
		With("caller", extra).
		Build()
	require.NoError(t, err)
	return s
}

func dispatch(t *testing.T, global *options.Set, descriptors ...types.FileDescriptor) (*recorder, *manifest.Package, error) {
	t.Helper()
	rec := &recorder{}
	pkg := manifest.New()
	err := NewDispatcher(global).Dispatch(rec, pkg, descriptors)
	return rec, pkg, err
}

func descriptor(k types.Kind, fields map[string]interface{}) types.FileDescriptor {
	if fields == nil {
		fields = map[string]interface{}{}
	}
	fields["template"] = string(k)
	return types.FileDescriptor{Kind: k, Fields: fields}
}

func TestRegistry_EveryKindHasHandler(t *testing.T) {
	for _, k := range types.Kinds() {
		assert.True(t, Has(k), "missing handler for %s", k)
	}
	assert.Len(t, Kinds(), len(types.Kinds()))
}

func TestSinglePageApp_DefaultCascade(t *testing.T) {
	rec, pkg, err := dispatch(t, globalSet(t, nil), descriptor(types.KindSinglePageApp, nil))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/out/pages/SinglePageApp.page",
		"/out/pages/SinglePageApp.page-meta.xml",
		"/out/classes/SinglePageAppController.cls",
		"/out/classes/SinglePageAppController.cls-meta.xml",
		"/out/classes/SinglePageAppControllerTest.cls",
		"/out/classes/SinglePageAppControllerTest.cls-meta.xml",
		"/out/package.xml",
		"/out/staticResources/SinglePageApp.resource-meta.xml",
	}, rec.filenames())

	assert.Equal(t, []string{"SinglePageApp"}, pkg.Members(manifest.TypeApexPage))
	assert.Equal(t, []string{"SinglePageAppController", "SinglePageAppControllerTest"}, pkg.Members(manifest.TypeApexClass))
	assert.Equal(t, []string{"SinglePageApp"}, pkg.Members(manifest.TypeStaticResource))

	for _, a := range rec.artifacts {
		assert.False(t, a.Inject)
		assert.Equal(t, false, a.Data["inject"])
		assert.NotContains(t, a.Data, "template")
		assert.True(t, a.Template.Builtin)
	}
}

func TestSinglePageApp_Defaults(t *testing.T) {
	rec, _, err := dispatch(t, globalSet(t, nil), descriptor(types.KindSinglePageApp, nil))
	require.NoError(t, err)

	page := rec.byFilename(t, "/out/pages/SinglePageApp.page")
	assert.Equal(t, types.KindSinglePageApp, page.Kind)
	assert.Equal(t, "SinglePageApp", page.Data["apiName"])
	assert.Equal(t, "Visualforce App", page.Data["title"])
	assert.Equal(t, false, page.Data["mobile"])
	assert.Equal(t, false, page.Data["unsupportedBrowser"])

	ctrl, ok := page.Data["controller"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "SinglePageAppController", ctrl["apiName"])
	assert.Equal(t, "with", ctrl["sharing"])
	assert.Equal(t, true, ctrl["testClass"])
}

func TestSinglePageApp_CallerControllerFieldsWin(t *testing.T) {
	rec, pkg, err := dispatch(t, globalSet(t, nil), descriptor(types.KindSinglePageApp, map[string]interface{}{
		"apiName": "Portal",
		"title":   "Customer Portal",
		"controller": map[string]interface{}{
			"sharing":   "without",
			"testClass": false,
		},
	}))
	require.NoError(t, err)

	cls := rec.byFilename(t, "/out/classes/PortalController.cls")
	ctrl := cls.Data["controller"].(map[string]interface{})
	assert.Equal(t, "PortalController", ctrl["apiName"])
	assert.Equal(t, "without sharing", ctrl["sharingClause"])

	assert.NotContains(t, rec.filenames(), "/out/classes/PortalControllerTest.cls")
	assert.Equal(t, []string{"PortalController"}, pkg.Members(manifest.TypeApexClass))
	assert.Equal(t, "Customer Portal", rec.byFilename(t, "/out/pages/Portal.page").Data["title"])
}

func TestController_SharingClause(t *testing.T) {
	tests := []struct {
		sharing string
		want    string
	}{
		{"with", "with sharing"},
		{"without", "without sharing"},
		{"inherit", ""},
		{"public", "with sharing"},
		{"", "with sharing"},
	}

	for _, tt := range tests {
		t.Run("sharing="+tt.sharing, func(t *testing.T) {
			rec, _, err := dispatch(t, globalSet(t, nil), descriptor(types.KindSinglePageAppController, map[string]interface{}{
				"meta": false,
				"controller": map[string]interface{}{
					"apiName": "AppController",
					"sharing": tt.sharing,
				},
			}))
			require.NoError(t, err)
			require.Len(t, rec.artifacts, 1)

			ctrl := rec.artifacts[0].Data["controller"].(map[string]interface{})
			assert.Equal(t, tt.want, ctrl["sharingClause"])
		})
	}
}

func TestSinglePageApp_NoControllerNoMeta(t *testing.T) {
	rec, pkg, err := dispatch(t, globalSet(t, nil),
		descriptor(types.KindSinglePageApp, nil),
		descriptor(types.KindSinglePageApp, map[string]interface{}{
			"apiName":    "Second",
			"controller": false,
			"meta":       false,
		}),
	)
	require.NoError(t, err)

	var second []string
	for _, name := range rec.filenames() {
		if strings.Contains(name, "Second") {
			second = append(second, name)
		}
	}
	assert.Equal(t, []string{"/out/pages/Second.page"}, second)
	assert.Len(t, rec.artifacts, 9)
	assert.Equal(t, []string{"SinglePageApp"}, pkg.Members(manifest.TypeApexPage))

	page := rec.byFilename(t, "/out/pages/Second.page")
	assert.Equal(t, false, page.Data["controller"])
}

func TestSinglePageApp_ManifestLastWriteWins(t *testing.T) {
	rec, pkg, err := dispatch(t, globalSet(t, nil),
		descriptor(types.KindSinglePageApp, map[string]interface{}{"apiName": "First"}),
		descriptor(types.KindSinglePageApp, map[string]interface{}{"apiName": "Second"}),
	)
	require.NoError(t, err)

	var manifests []types.Artifact
	for _, a := range rec.artifacts {
		if a.Kind == types.KindPackage {
			manifests = append(manifests, a)
		}
	}
	require.Len(t, manifests, 2)
	assert.Equal(t, manifests[0].Filename, manifests[1].Filename)

	// Both emissions read the shared accumulator when they are written
	for _, m := range manifests {
		assert.Same(t, pkg, m.Data["package"])
	}

	assert.Equal(t, []manifest.TypeMembers{
		{Name: manifest.TypeApexPage, Members: []string{"First", "Second"}},
		{Name: manifest.TypeApexClass, Members: []string{"FirstController", "FirstControllerTest", "SecondController", "SecondControllerTest"}},
		{Name: manifest.TypeStaticResource, Members: []string{"First", "Second"}},
	}, pkg.Types())
}

func TestSinglePageApp_ManifestQueuedBeforeStaticResource(t *testing.T) {
	rec, pkg, err := dispatch(t, globalSet(t, nil),
		descriptor(types.KindSinglePageApp, nil),
	)
	require.NoError(t, err)

	var kinds []types.Kind
	for _, a := range rec.artifacts {
		kinds = append(kinds, a.Kind)
	}
	require.Len(t, kinds, 8)
	assert.Equal(t, types.KindPackage, kinds[6])
	assert.Equal(t, types.KindStaticResourceMeta, kinds[7])

	// The manifest still sees the registration that follows it
	queued := rec.artifacts[6].Data["package"].(*manifest.Package)
	assert.Equal(t, []string{"SinglePageApp"}, queued.Members(manifest.TypeStaticResource))
	assert.Same(t, pkg, queued)
}

func TestSession_CountsEmissions(t *testing.T) {
	rec := &recorder{}
	s := NewSession(rec)

	in := globalSet(t, map[string]interface{}{"template": "Package"})
	require.NoError(t, s.Run(types.KindPackage, manifest.New(), in))
	require.NoError(t, s.Run(types.KindStaticResourceMeta, manifest.New(), in))

	assert.Equal(t, 2, s.Emitted())
	assert.Len(t, rec.artifacts, 2)
}

func TestDispatch_DescriptorValuesDoNotLeak(t *testing.T) {
	rec, _, err := dispatch(t, globalSet(t, nil),
		descriptor(types.KindSinglePageApp, map[string]interface{}{"apiName": "First", "title": "First App", "meta": false}),
		descriptor(types.KindSinglePageApp, map[string]interface{}{"apiName": "Second"}),
	)
	require.NoError(t, err)

	second := rec.byFilename(t, "/out/pages/Second.page")
	assert.Equal(t, "Visualforce App", second.Data["title"])
	assert.Contains(t, rec.filenames(), "/out/pages/Second.page-meta.xml")
}

func TestDispatch_GlobalMetaFalse(t *testing.T) {
	rec, pkg, err := dispatch(t, globalSet(t, map[string]interface{}{"meta": false}), descriptor(types.KindSinglePageApp, nil))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/out/pages/SinglePageApp.page",
		"/out/classes/SinglePageAppController.cls",
		"/out/classes/SinglePageAppControllerTest.cls",
	}, rec.filenames())
	assert.Equal(t, 0, pkg.Len())
}

func TestSinglePageAppDev(t *testing.T) {
	rec, pkg, err := dispatch(t, globalSet(t, nil), descriptor(types.KindSinglePageAppDev, map[string]interface{}{
		"apiName":    "Portal",
		"controller": false,
	}))
	require.NoError(t, err)

	require.Len(t, rec.artifacts, 1)
	page := rec.artifacts[0]
	assert.Equal(t, "/out/Portal.page", page.Filename)
	assert.Equal(t, map[string]interface{}{"apiName": "PortalController"}, page.Data["controller"])
	assert.Equal(t, 0, pkg.Len())
}

func TestMetadataKinds_Direct(t *testing.T) {
	tests := []struct {
		name     string
		kind     types.Kind
		fields   map[string]interface{}
		filename string
		typeName string
		member   string
	}{
		{
			name:     "apex page meta",
			kind:     types.KindApexPageMeta,
			fields:   map[string]interface{}{"filename": "Legacy.page"},
			filename: "/out/pages/Legacy.page-meta.xml",
			typeName: manifest.TypeApexPage,
			member:   "Legacy",
		},
		{
			name:     "apex class meta",
			kind:     types.KindApexClassMeta,
			fields:   map[string]interface{}{"filename": "src/Util.cls"},
			filename: "/out/classes/Util.cls-meta.xml",
			typeName: manifest.TypeApexClass,
			member:   "Util",
		},
		{
			name:     "static resource meta",
			kind:     types.KindStaticResourceMeta,
			fields:   map[string]interface{}{"apiName": "Assets"},
			filename: "/out/staticResources/Assets.resource-meta.xml",
			typeName: manifest.TypeStaticResource,
			member:   "Assets",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, pkg, err := dispatch(t, globalSet(t, nil), descriptor(tt.kind, tt.fields))
			require.NoError(t, err)
			assert.Equal(t, []string{tt.filename}, rec.filenames())
			assert.Equal(t, []string{tt.member}, pkg.Members(tt.typeName))
		})
	}
}

func TestMetadataKinds_MissingFilename(t *testing.T) {
	_, _, err := dispatch(t, globalSet(t, nil), descriptor(types.KindApexClassMeta, nil))
	require.Error(t, err)
	assert.True(t, errors.IsConfigurationError(err))
}

func TestController_Missing(t *testing.T) {
	_, _, err := dispatch(t, globalSet(t, nil), descriptor(types.KindSinglePageAppController, nil))
	require.Error(t, err)
	assert.True(t, errors.IsConfigurationError(err))
}

func TestPackage_Standalone(t *testing.T) {
	rec := &recorder{}
	pkg := manifest.New().Add(manifest.TypeApexClass, "Util")

	err := NewDispatcher(globalSet(t, nil)).Dispatch(rec, pkg, []types.FileDescriptor{descriptor(types.KindPackage, nil)})
	require.NoError(t, err)

	require.Len(t, rec.artifacts, 1)
	assert.Equal(t, "/out/package.xml", rec.artifacts[0].Filename)
	assert.Same(t, pkg, rec.artifacts[0].Data["package"])
	assert.Equal(t, []manifest.TypeMembers{{Name: manifest.TypeApexClass, Members: []string{"Util"}}}, pkg.Types())
}

func TestDispatch_UnknownTemplate(t *testing.T) {
	_, _, err := dispatch(t, globalSet(t, nil), types.FileDescriptor{Kind: types.Kind("Bogus")})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownTemplate))
}

func TestDispatch_TemplateFileOverride(t *testing.T) {
	rec, _, err := dispatch(t, globalSet(t, nil), descriptor(types.KindSinglePageApp, map[string]interface{}{
		"templateFile": "/tpl/page.tmpl",
	}))
	require.NoError(t, err)

	page := rec.byFilename(t, "/out/pages/SinglePageApp.page")
	assert.Equal(t, types.TemplateRef{Path: "/tpl/page.tmpl"}, page.Template)

	cls := rec.byFilename(t, "/out/classes/SinglePageAppController.cls")
	assert.True(t, cls.Template.Builtin)
}

func TestDispatch_DestinationStaysInOutputDir(t *testing.T) {
	rec, _, err := dispatch(t, globalSet(t, map[string]interface{}{"meta": false}), descriptor(types.KindSinglePageApp, map[string]interface{}{
		"apiName":    "../../../etc/evil",
		"controller": false,
	}))
	require.NoError(t, err)

	require.Len(t, rec.artifacts, 1)
	rel, err := filepath.Rel("/out", rec.artifacts[0].Filename)
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(rel, ".."), "escaped output dir: %s", rec.artifacts[0].Filename)
}

func TestDispatch_MissingOutputDir(t *testing.T) {
	global, err := options.NewBuilder().With("caller", map[string]interface{}{"meta": true}).Build()
	require.NoError(t, err)

	_, _, err = dispatch(t, global, descriptor(types.KindSinglePageApp, nil))
	require.Error(t, err)
	assert.True(t, errors.IsConfigurationError(err))
}
