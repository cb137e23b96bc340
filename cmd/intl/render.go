package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/intl/pkg/i18n"
	"github.com/dmitrymomot/intl/pkg/icu"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		locale    string
		namespace string
		mode      string
		pairs     []string
		tags      []string
	)

	cmd := &cobra.Command{
		Use:   "render KEY",
		Short: "Render one message",
		Example: `  intl render Cart.items --locale de --set count=3
  intl render Legal.notice --mode markup --tag link --set name=Jane
  intl render Legal.notice --mode rich --tag link`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validMode(mode); err != nil {
				return err
			}
			values, err := parseValues(pairs)
			if err != nil {
				return err
			}
			bindTags(values, mode, tags)

			ctx := cmd.Context()
			catalog, d, err := a.openCatalog(ctx)
			if err != nil {
				return err
			}
			defer d.Close()

			cfg, err := a.cfg.translatorConfig(catalog, a.log)
			if err != nil {
				return err
			}
			if locale == "" {
				locale = a.cfg.DefaultLocale
			}
			cfg.Locale = locale
			cfg.Namespace = namespace

			var failures []error
			cfg.OnError = func(e *i18n.Error) {
				a.log.WarnContext(ctx, "message failed",
					"code", e.Code,
					"key", e.Key,
					"locale", e.Locale,
					"error", e.Err,
				)
				if e.Code != i18n.CodeEnvironmentFallback {
					failures = append(failures, e)
				}
			}

			tr, err := i18n.NewTranslator(cfg)
			if err != nil {
				return err
			}
			if err := renderMessage(cmd.OutOrStdout(), tr, cfg, args[0], mode, values); err != nil {
				return err
			}
			if len(failures) > 0 {
				return errors.Join(append([]error{errRenderFailed}, failures...)...)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&locale, "locale", "l", "", "locale to render (default: INTL_DEFAULT_LOCALE)")
	flags.StringVarP(&namespace, "namespace", "n", "", "namespace prepended to KEY")
	flags.StringVarP(&mode, "mode", "m", modeText, "output mode: text, markup, rich or markdown")
	flags.StringArrayVar(&pairs, "set", nil, "interpolation value name=value (repeatable)")
	flags.StringSliceVar(&tags, "tag", nil, "tag names kept in the output")
	return cmd
}

func renderMessage(w io.Writer, tr *i18n.Translator, cfg i18n.Config, key, mode string, values icu.Values) error {
	switch mode {
	case modeMarkdown:
		html, err := markdownHTML(tr.T(key, values), cfg.MarkupPolicy)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(w, html)
		return err
	case modeRich:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(partsJSON(tr.Rich(key, values)))
	case modeMarkup:
		_, err := fmt.Fprintln(w, tr.Markup(key, values))
		return err
	default:
		_, err := fmt.Fprintln(w, tr.T(key, values))
		return err
	}
}
