package git

import "strings"

const (
	sourceShowRef = "show-ref"
	sourceLog     = "log"

	branchPrefix = "refs/heads/"
	tagPrefix    = "refs/tags/"
)

// RawReference is one `<hash> <fullname>` record of a reference listing,
// before classification.
type RawReference struct {
	Hash     Hash
	FullName string
}

// ParseReferences parses `git show-ref` output. Every non-empty line must be
// a hash, whitespace, and a fully qualified name; a single malformed line
// fails the whole listing.
func ParseReferences(raw []byte) ([]RawReference, error) {
	var refs []RawReference
	for line := range strings.SplitSeq(string(raw), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 || !isHash(fields[0]) {
			return nil, &ParseError{Source: sourceShowRef, Line: line, Reason: "expected <hash> <refname>"}
		}
		refs = append(refs, RawReference{
			Hash:     Hash(strings.ToLower(fields[0])),
			FullName: fields[1],
		})
	}
	return refs, nil
}

// classify turns a raw record into a Reference. Names outside refs/heads/
// and refs/tags/ are rejected rather than dropped.
func classify(repo *Repository, raw RawReference) (*Reference, error) {
	switch {
	case strings.HasPrefix(raw.FullName, branchPrefix) && len(raw.FullName) > len(branchPrefix):
		return &Reference{repo: repo, fullName: raw.FullName, kind: KindBranch, target: raw.Hash}, nil
	case strings.HasPrefix(raw.FullName, tagPrefix) && len(raw.FullName) > len(tagPrefix):
		return &Reference{repo: repo, fullName: raw.FullName, kind: KindTag, target: raw.Hash}, nil
	default:
		return nil, &ParseError{Source: sourceShowRef, Line: raw.FullName, Reason: "unable to classify reference"}
	}
}

// ParseHashLine parses output expected to hold at most one object hash, such
// as `git log --format=format:%H -n 1`. Empty output yields ok == false.
func ParseHashLine(raw []byte) (hash Hash, ok bool, err error) {
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return "", false, nil
	}
	if strings.ContainsAny(text, "\r\n") || !isHash(text) {
		return "", false, &ParseError{Source: sourceLog, Line: text, Reason: "expected a single object hash"}
	}
	return Hash(strings.ToLower(text)), true, nil
}
