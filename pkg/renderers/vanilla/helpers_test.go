package vanilla_test

import (
	"io/fs"

	"github.com/goliatone/go-formstate/pkg/renderers/vanilla"
)

func fsReadFile(name string) ([]byte, error) {
	return fs.ReadFile(vanilla.TemplatesFS(), name)
}
