package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MrSnakeDoc/homey/internal/domain"
	"github.com/MrSnakeDoc/homey/internal/sources/configfile"
	"github.com/MrSnakeDoc/homey/internal/sources/homepage"
)

func newValidateCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check that a dashboard file parses",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fileArg(v, args)

			doc, err := configfile.NewLoader(path).Load()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%q, %d links)\n", path, doc.Title, len(doc.Links))
			return nil
		},
	}
}

func newFmtCommand(v *viper.Viper) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Rewrite a dashboard file in canonical form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fileArg(v, args)

			current, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			doc, err := domain.Parse(current)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			canonical, err := domain.Canonical(doc)
			if err != nil {
				return err
			}

			if string(canonical) == string(current) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: already canonical\n", path)
				return nil
			}
			if check {
				return fmt.Errorf("%s: not in canonical form", path)
			}

			if err := configfile.NewWriter(path).Write(canonical); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: rewritten\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "fail instead of rewriting when the file is not canonical")
	return cmd
}

func newImportHomepageCommand() *cobra.Command {
	var (
		out   string
		force bool
		title string
	)

	cmd := &cobra.Command{
		Use:   "import-homepage <services.yaml>",
		Short: "Convert a Homepage services.yaml into a dashboard file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			services, err := homepage.NewLoader(args[0]).Load()
			if err != nil {
				return err
			}

			doc, skipped, err := homepage.NewMapper().MapDocument(services, title)
			for _, s := range skipped {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s/%s: %s\n", s.Group, s.Service, s.Reason)
			}
			if err != nil {
				return err
			}

			canonical, err := domain.Canonical(doc)
			if err != nil {
				return err
			}

			if out == "" {
				_, err := cmd.OutOrStdout().Write(canonical)
				return err
			}

			if !force {
				if _, err := os.Stat(out); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", out)
				} else if !errors.Is(err, fs.ErrNotExist) {
					return err
				}
			}

			if err := configfile.NewWriter(out).Write(canonical); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d links to %s\n", len(doc.Links), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write to this file instead of stdout")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite --out if it exists")
	cmd.Flags().StringVar(&title, "title", domain.DefaultTitle, "dashboard title")
	return cmd
}
