package engine

import (
	"time"

	"github.com/dlclark/regexp2"
)

type regexp2Matcher struct {
	re *regexp2.Regexp
}

func compileRegexp2(source string, flags Flags, timeout time.Duration) (Matcher, error) {
	opts := regexp2.RegexOptions(regexp2.ECMAScript)
	if flags.IgnoreCase {
		opts |= regexp2.IgnoreCase
	}
	if flags.Multiline {
		opts |= regexp2.Multiline
	}
	if flags.DotAll {
		// ECMAScript mode does not combine with Singleline.
		opts = opts&^regexp2.ECMAScript | regexp2.Singleline
	}

	re, err := regexp2.Compile(source, opts)
	if err != nil {
		return nil, &Error{
			Kind:    CompileFailed,
			Message: "regexp2: cannot compile `" + source + "`",
			Cause:   err,
		}
	}
	if timeout > 0 {
		re.MatchTimeout = timeout
	}
	return &regexp2Matcher{re: re}, nil
}

// MatchString treats a timed-out search as no match.
func (m *regexp2Matcher) MatchString(s string) bool {
	ok, err := m.re.MatchString(s)
	return err == nil && ok
}

func (m *regexp2Matcher) String() string {
	return m.re.String()
}
