package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate"
)

func templatesCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "templates <dir>",
		Short: "Copy the embedded HTML templates to a directory",
		Long: `Write the vanilla renderer's templates to <dir> so they can be edited
and passed back with render --templates-dir.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			written, err := exportTemplates(formstate.EmbeddedTemplates(), args[0], force)
			if err != nil {
				return err
			}
			a.logger.Info().Str("dir", args[0]).Int("files", written).Msg("templates exported")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing files")
	return cmd
}

func exportTemplates(files fs.FS, dir string, force bool) (int, error) {
	written := 0
	err := fs.WalkDir(files, ".", func(name string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dir, filepath.FromSlash(name))
		if entry.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if !force {
			if _, err := os.Stat(target); err == nil {
				return fmt.Errorf("%s exists (use --force to overwrite)", target)
			}
		}
		data, err := fs.ReadFile(files, name)
		if err != nil {
			return err
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return err
		}
		written++
		return nil
	})
	if err != nil {
		return written, fmt.Errorf("export templates: %w", err)
	}
	return written, nil
}
