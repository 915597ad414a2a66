package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func validateCmd(a *app) *cobra.Command {
	var (
		src         sourceFlags
		touchedOnly bool
		output      string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate values against a registry",
		Long: `Build a form seeded with the registry defaults and --values, then
print the validation errors. Exits with status 1 when any error remains.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			def, err := a.definition(cmd.Context(), src)
			if err != nil {
				return err
			}
			f, err := a.newForm(def, src)
			if err != nil {
				return err
			}

			errs := f.Errors(touchedOnly)
			format := output
			if format == "" {
				format = a.cfg.Output
			}

			out := cmd.OutOrStdout()
			if format == "text" {
				for _, name := range def.Registry.Names() {
					if message, ok := errs[name]; ok {
						fmt.Fprintf(out, "%s: %s\n", name, message)
					}
				}
			} else {
				payload := map[string]string(errs)
				if payload == nil {
					payload = map[string]string{}
				}
				if err := writeStructured(out, format, payload); err != nil {
					return err
				}
			}

			a.logger.Debug().Int("errors", len(errs)).Bool("touched_only", touchedOnly).Msg("validated")
			if errs != nil {
				return errValidationFailed
			}
			return nil
		},
	}

	src.bind(cmd)
	cmd.Flags().BoolVar(&touchedOnly, "touched-only", false, "only report errors of fields that carry a value")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: json, yaml or text (overrides FORMSTATE_OUTPUT)")
	return cmd
}
