package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate"
	"github.com/goliatone/go-formstate/pkg/registry"
	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/renderers/vanilla"
)

type renderFlags struct {
	src        sourceFlags
	renderer   string
	themeName  string
	themeDir   string
	templates  string
	action     string
	method     string
	submit     string
	showErrors bool
	watch      bool
}

func renderCmd(a *app) *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a form as HTML or JSON",
		Long: `Render the form view for a registry, seeded with --values. With
--watch the registry file is re-rendered every time it changes.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.watch && flags.src.registry == "" {
				return errors.New("--watch requires --registry")
			}

			renderers, err := a.renderers(flags)
			if err != nil {
				return err
			}

			if !flags.watch {
				def, err := a.definition(cmd.Context(), flags.src)
				if err != nil {
					return err
				}
				return a.renderOnce(cmd.Context(), cmd.OutOrStdout(), renderers, def, flags)
			}
			return a.watch(cmd.Context(), cmd.OutOrStdout(), renderers, flags)
		},
	}

	flags.src.bind(cmd)
	cmd.Flags().StringVarP(&flags.renderer, "renderer", "r", "vanilla", "renderer: vanilla or json")
	cmd.Flags().StringVar(&flags.themeName, "theme", "", "theme as name[:variant] (overrides FORMSTATE_THEME)")
	cmd.Flags().StringVar(&flags.themeDir, "theme-dir", "", "directory holding an extra theme manifest (overrides FORMSTATE_THEME_DIR)")
	cmd.Flags().StringVar(&flags.templates, "templates-dir", "", "directory replacing the embedded templates (see the templates command)")
	cmd.Flags().StringVar(&flags.action, "action", "", "form action URL")
	cmd.Flags().StringVar(&flags.method, "method", "post", "form method")
	cmd.Flags().StringVar(&flags.submit, "submit-label", "", "submit button label")
	cmd.Flags().BoolVar(&flags.showErrors, "show-errors", false, "show errors of untouched fields")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "re-render when the registry file changes")
	return cmd
}

func (a *app) renderers(flags renderFlags) (*render.Registry, error) {
	themeCfg, err := a.resolveTheme(flags.themeName, flags.themeDir)
	if err != nil {
		return nil, err
	}
	return formstate.NewRendererRegistry(
		vanilla.WithTemplatesDir(flags.templates),
		vanilla.WithTheme(themeCfg),
		vanilla.WithSubmitLabel(flags.submit),
	)
}

// resolveTheme returns nil when no theme is configured. The built-in manifest
// is always registered; themeDir adds one more.
func (a *app) resolveTheme(themeName, themeDir string) (*theme.RendererConfig, error) {
	cfg := a.cfg
	if strings.TrimSpace(themeName) != "" {
		cfg.Theme = themeName
	}
	if strings.TrimSpace(themeDir) != "" {
		cfg.ThemeDir = themeDir
	}
	name, variant := cfg.ThemeSelection()
	if name == "" {
		return nil, nil
	}

	var extra []*theme.Manifest
	if cfg.ThemeDir != "" {
		manifest, err := formstate.LoadThemeDir(cfg.ThemeDir)
		if err != nil {
			return nil, err
		}
		extra = append(extra, manifest)
	}
	themes, err := formstate.NewThemeRegistry(extra...)
	if err != nil {
		return nil, err
	}

	selection, err := formstate.SelectTheme(theme.Selector{Registry: themes}, name, variant)
	if err != nil {
		return nil, err
	}
	a.logger.Debug().Str("theme", selection.Theme).Str("variant", selection.Variant).Msg("theme selected")
	return formstate.ThemeConfig(selection, nil), nil
}

func (a *app) renderOnce(ctx context.Context, out io.Writer, renderers *render.Registry, def registry.Definition, flags renderFlags) error {
	f, err := a.newForm(def, flags.src)
	if err != nil {
		return err
	}

	options := []render.ViewOption{}
	if flags.action != "" {
		options = append(options, render.WithAction(flags.action, flags.method))
	}
	if flags.showErrors {
		options = append(options, render.WithAllErrors())
	}

	payload, err := formstate.Render(ctx, renderers, flags.renderer, f, options...)
	if err != nil {
		return err
	}
	if _, err := out.Write(payload); err != nil {
		return err
	}
	_, err = fmt.Fprintln(out)
	return err
}

func (a *app) watch(ctx context.Context, out io.Writer, renderers *render.Registry, flags renderFlags) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	holder, err := registry.NewHolder(flags.src.registry, a.logger)
	if err != nil {
		return err
	}
	defer holder.Stop()

	if err := a.renderOnce(ctx, out, renderers, holder.Get(), flags); err != nil {
		return err
	}

	holder.OnChange(func(def registry.Definition) {
		if err := a.renderOnce(ctx, out, renderers, def, flags); err != nil {
			a.logger.Error().Err(err).Msg("render after reload failed")
		}
	})
	if err := holder.Watch(); err != nil {
		return err
	}

	a.logger.Info().Str("path", flags.src.registry).Msg("watching for changes, press Ctrl+C to stop")
	<-ctx.Done()
	return nil
}
