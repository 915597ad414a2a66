package render_test

import (
	"path/filepath"
	"testing"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/registry"
	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/testsupport"
)

func TestJSONRenderer_Golden(t *testing.T) {
	reg := registry.MustNew([]registry.FieldSpec{
		{Name: "email", Rules: &registry.Rules{Required: true}},
		{Name: "newsletter", Attrs: map[string]string{"type": "checkbox"}},
	})
	f := testsupport.MustForm(t, reg)
	_ = f.Change(form.ChangeEvent{Field: "newsletter", Checked: true})

	output, err := render.JSONRenderer{}.Render(testsupport.Context(), render.Build(f, render.WithAction("/signup", "post")))
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	testsupport.Golden(t, filepath.Join("testdata", "view.golden.json"), output)
}
