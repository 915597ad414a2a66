package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/renderers/tui"
)

func fillCmd(a *app) *cobra.Command {
	var (
		src         sourceFlags
		output      string
		maxAttempts int
	)

	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill a form interactively in the terminal",
		Long: `Prompt for every field in registry order. Invalid answers show the
field's error and are asked again. The submitted values are printed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			def, err := a.definition(cmd.Context(), src)
			if err != nil {
				return err
			}

			var dirty bool
			f, err := a.newForm(def, src, form.WithOnSubmit(func(_ form.Values, isDirty bool) {
				dirty = isDirty
			}), form.WithOnChange(func(_ form.Query, n form.Notification) {
				a.logger.Trace().Str("cause", string(n.Cause)).Str("field", n.Field).Msg("form transition")
			}))
			if err != nil {
				return err
			}

			session := tui.New(
				tui.WithLogger(a.logger),
				tui.WithMaxAttempts(maxAttempts),
			)
			values, err := session.Run(cmd.Context(), f)
			if err != nil {
				return err
			}
			a.logger.Info().Bool("dirty", dirty).Int("fields", len(values)).Msg("form submitted")

			format := output
			if format == "" {
				format = a.cfg.Output
			}
			return writeStructured(cmd.OutOrStdout(), format, map[string]string(values))
		},
	}

	src.bind(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: json or yaml (overrides FORMSTATE_OUTPUT)")
	cmd.Flags().IntVar(&maxAttempts, "max-attempts", 0, "re-prompt limit for an invalid field")
	return cmd
}
