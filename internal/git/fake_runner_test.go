package git

import (
	"context"
	"strings"
	"sync"
)

// fakeRunner answers git invocations from a table keyed by the joined argv
// and counts how often each was issued.
type fakeRunner struct {
	mu        sync.Mutex
	responses map[string]Result
	calls     map[string]int
	err       error
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		responses: make(map[string]Result),
		calls:     make(map[string]int),
	}
}

// on registers the result for an invocation.
func (f *fakeRunner) on(result Result, args ...string) *fakeRunner {
	f.responses[strings.Join(args, " ")] = result
	return f
}

func (f *fakeRunner) Run(_ context.Context, _ string, args ...string) (Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := strings.Join(args, " ")
	f.calls[key]++
	if f.err != nil {
		return Result{}, f.err
	}
	res, ok := f.responses[key]
	if !ok {
		return Result{ExitCode: 128, Stderr: []byte("fatal: unexpected invocation: " + key)}, nil
	}
	return res, nil
}

func (f *fakeRunner) count(args ...string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[strings.Join(args, " ")]
}

func stdout(s string) Result {
	return Result{Stdout: []byte(s)}
}

func failed(code int, stderr string) Result {
	return Result{ExitCode: code, Stderr: []byte(stderr)}
}

const (
	hashA    = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	hashB    = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	hashC    = "cccccccccccccccccccccccccccccccccccccccc"
	hashTree = "dddddddddddddddddddddddddddddddddddddddd"
	hashBlob = "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee"
)

// rawCommit builds `git cat-file commit` output.
func rawCommit(tree string, parents []string, message string) string {
	var b strings.Builder
	b.WriteString("tree " + tree + "\n")
	for _, p := range parents {
		b.WriteString("parent " + p + "\n")
	}
	b.WriteString("author Ada Lovelace <ada@example.com> 1700000000 +0100\n")
	b.WriteString("committer Grace Hopper <grace@example.com> 1700003600 -0500\n")
	b.WriteString("\n")
	b.WriteString(message)
	return b.String()
}
