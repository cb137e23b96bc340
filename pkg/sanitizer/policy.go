package sanitizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Policy names accepted by Policy.
const (
	// PolicyNone disables sanitization.
	PolicyNone = "none"
	// PolicyStrict strips every tag and keeps the text.
	PolicyStrict = "strict"
	// PolicyInline keeps inline formatting (b, i, em, strong, code, links...).
	PolicyInline = "inline"
	// PolicyUGC is bluemonday's policy for user generated content.
	PolicyUGC = "ugc"
)

// ErrUnknownPolicy is returned by Policy for unrecognised names.
var ErrUnknownPolicy = errors.New("sanitizer: unknown policy")

// Policy returns a new policy by name. PolicyNone and the empty name
// return nil, which Sanitize treats as "leave untouched".
func Policy(name string) (*bluemonday.Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PolicyNone:
		return nil, nil
	case PolicyStrict:
		return bluemonday.StrictPolicy(), nil
	case PolicyInline:
		return inlinePolicy(), nil
	case PolicyUGC:
		return bluemonday.UGCPolicy(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

func inlinePolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowStandardURLs()
	p.AllowElements(
		"b", "strong", "i", "em", "u", "s", "small", "mark",
		"code", "kbd", "sub", "sup", "br", "span",
	)
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("class").OnElements("span")
	p.RequireNoFollowOnLinks(true)
	return p
}

// Sanitize applies policy to s. A nil policy returns s unchanged.
func Sanitize(s string, policy *bluemonday.Policy) string {
	if policy == nil {
		return s
	}
	return policy.Sanitize(s)
}
