// Package sanitizer provides the HTML policies applied to markup rendered
// from translated messages.
//
// Policies are selected by name, typically from configuration:
//
//	policy, err := sanitizer.Policy(sanitizer.PolicyInline)
//	if err != nil {
//		return err
//	}
//	html := sanitizer.Sanitize(`<b>Hi</b><script>x()</script>`, policy)
//	// html == "<b>Hi</b>"
//
// [PolicyNone] returns a nil policy and [Sanitize] leaves the input as is.
package sanitizer
