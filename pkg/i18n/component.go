package i18n

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/intl/pkg/icu"
)

// Component renders rich parts as a templ component. Text runs are
// HTML-escaped, nodes that are templ components render themselves and any
// other node is escaped in its string form.
func Component(parts icu.Parts) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, p := range parts {
			if !p.IsNode() {
				if _, err := io.WriteString(w, templ.EscapeString(p.Text)); err != nil {
					return err
				}
				continue
			}
			if c, ok := p.Node.(templ.Component); ok {
				if err := c.Render(ctx, w); err != nil {
					return err
				}
				continue
			}
			if _, err := io.WriteString(w, templ.EscapeString(fmt.Sprint(p.Node))); err != nil {
				return err
			}
		}
		return nil
	})
}

// Component renders key with Rich and wraps the result for templ.
func (t *Translator) Component(key string, values ...M) templ.Component {
	return Component(t.Rich(key, values...))
}
