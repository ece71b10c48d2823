package runner

import (
	"context"
	"strings"
)

// Call records one invocation observed by a Fake.
type Call struct {
	Dir   string
	Stdin string
	Name  string
	Args  []string
}

// Response is a canned reply keyed by command name (and optionally the first
// matching argument substring).
type Response struct {
	Result Result
	Err    error
}

// Fake is a scripted Runner for tests. Responses are matched by command name
// plus an optional argument substring; the first match wins.
type Fake struct {
	Responses []FakeEntry
	Calls     []Call

	// DefaultErr is returned when no entry matches.
	DefaultErr error
}

type FakeEntry struct {
	Name     string
	ArgMatch string
	Response Response
}

func (f *Fake) Run(ctx context.Context, dir string, stdin string, name string, args ...string) (Result, error) {
	f.Calls = append(f.Calls, Call{Dir: dir, Stdin: stdin, Name: name, Args: args})

	joined := strings.Join(args, " ")
	for _, e := range f.Responses {
		if e.Name != name {
			continue
		}
		if e.ArgMatch != "" && !strings.Contains(joined, e.ArgMatch) {
			continue
		}
		return e.Response.Result, e.Response.Err
	}

	return Result{}, f.DefaultErr
}

// CalledWith reports whether any recorded call matches the command name and
// argument substring.
func (f *Fake) CalledWith(name, argMatch string) bool {
	for _, c := range f.Calls {
		if c.Name == name && strings.Contains(strings.Join(c.Args, " "), argMatch) {
			return true
		}
	}
	return false
}
