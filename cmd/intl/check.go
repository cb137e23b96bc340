package main

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/intl/pkg/icu"
	"github.com/dmitrymomot/intl/pkg/messages"
)

type severity string

const (
	severityError   severity = "error"
	severityWarning severity = "warning"
)

// problem is one finding of checkCatalog.
type problem struct {
	Severity severity `json:"severity"`
	Locale   string   `json:"locale"`
	Key      string   `json:"key,omitempty"`
	Message  string   `json:"message"`
}

func (p problem) String() string {
	if p.Key == "" {
		return fmt.Sprintf("%-7s %s: %s", p.Severity, p.Locale, p.Message)
	}
	return fmt.Sprintf("%-7s %s %s: %s", p.Severity, p.Locale, p.Key, p.Message)
}

func newCheckCmd(a *app) *cobra.Command {
	var (
		reference string
		strict    bool
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate every message of the catalog",
		Long: `check parses every message, reports syntax errors and compares each
locale with the reference locale: missing and extra keys and placeholders
that differ from the reference translation are reported as warnings.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			catalog, d, err := a.openCatalog(ctx)
			if err != nil {
				return err
			}
			defer d.Close()

			if reference == "" {
				reference = a.cfg.DefaultLocale
			}
			problems := checkCatalog(catalog, reference, messages.DefaultDelimiter)
			if err := writeProblems(cmd.OutOrStdout(), problems, asJSON); err != nil {
				return err
			}

			errs, warnings := countProblems(problems)
			a.log.InfoContext(ctx, "catalog checked",
				"locales", len(catalog.Locales()),
				"errors", errs,
				"warnings", warnings,
			)
			if errs > 0 || strict && warnings > 0 {
				return fmt.Errorf("%w: %d errors, %d warnings", errCatalogProblems, errs, warnings)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&reference, "reference", "", "locale the others are compared with (default: INTL_DEFAULT_LOCALE)")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on warnings too")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print problems as JSON")
	return cmd
}

// checkCatalog reports invalid messages and keys of every locale, and the
// differences of each locale to reference.
func checkCatalog(catalog *messages.Catalog, reference, delim string) []problem {
	var problems []problem

	args := map[string]map[string][]string{}
	for _, locale := range catalog.Locales() {
		tree, _ := catalog.Tree(locale)
		if err := messages.Validate(tree, delim); err != nil {
			problems = append(problems, problem{Severity: severityError, Locale: locale, Message: err.Error()})
		}

		keys := map[string][]string{}
		_ = tree.Walk(delim, func(key, msg string) error {
			parsed, err := icu.Parse(msg)
			if err != nil {
				problems = append(problems, problem{
					Severity: severityError,
					Locale:   locale,
					Key:      key,
					Message:  err.Error(),
				})
				keys[key] = nil
				return nil
			}
			keys[key] = parsed.Arguments()
			return nil
		})
		args[locale] = keys
	}

	ref, ok := args[reference]
	if !ok {
		problems = append(problems, problem{
			Severity: severityError,
			Locale:   reference,
			Message:  "reference locale not found in catalog",
		})
		return sortProblems(problems)
	}

	for locale, keys := range args {
		if locale == reference {
			continue
		}
		for key, want := range ref {
			got, ok := keys[key]
			switch {
			case !ok:
				problems = append(problems, problem{
					Severity: severityWarning,
					Locale:   locale,
					Key:      key,
					Message:  "missing translation",
				})
			case want != nil && got != nil && !slices.Equal(want, got):
				problems = append(problems, problem{
					Severity: severityWarning,
					Locale:   locale,
					Key:      key,
					Message: fmt.Sprintf("arguments [%s] differ from %s [%s]",
						strings.Join(got, ", "), reference, strings.Join(want, ", ")),
				})
			}
		}
		for key := range keys {
			if _, ok := ref[key]; !ok {
				problems = append(problems, problem{
					Severity: severityWarning,
					Locale:   locale,
					Key:      key,
					Message:  "not present in " + reference,
				})
			}
		}
	}
	return sortProblems(problems)
}

func sortProblems(problems []problem) []problem {
	slices.SortFunc(problems, func(a, b problem) int {
		return cmp.Or(
			cmp.Compare(a.Locale, b.Locale),
			cmp.Compare(a.Key, b.Key),
			cmp.Compare(a.Severity, b.Severity),
			cmp.Compare(a.Message, b.Message),
		)
	})
	return problems
}

func countProblems(problems []problem) (errs, warnings int) {
	for _, p := range problems {
		if p.Severity == severityError {
			errs++
		} else {
			warnings++
		}
	}
	return errs, warnings
}

func writeProblems(w io.Writer, problems []problem, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if problems == nil {
			problems = []problem{}
		}
		return enc.Encode(problems)
	}
	for _, p := range problems {
		if _, err := fmt.Fprintln(w, p); err != nil {
			return err
		}
	}
	return nil
}
