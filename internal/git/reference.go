package git

import "strings"

// RefKind classifies a reference by its namespace. It is decided once, when
// the listing is parsed.
type RefKind uint8

// Reference kinds.
const (
	KindBranch RefKind = iota + 1 // refs/heads/
	KindTag                       // refs/tags/
)

// String returns "branch" or "tag".
func (k RefKind) String() string {
	switch k {
	case KindBranch:
		return "branch"
	case KindTag:
		return "tag"
	default:
		return "unknown"
	}
}

// Reference is a named pointer to an object, as listed by git show-ref.
// It is a snapshot: it does not follow later updates of the ref.
type Reference struct {
	repo     *Repository
	fullName string
	kind     RefKind
	target   Hash
}

// FullName returns the fully qualified name, e.g. "refs/heads/main".
func (r *Reference) FullName() string {
	return r.fullName
}

// Name returns the name without its namespace, e.g. "main" or "v1.0".
func (r *Reference) Name() string {
	switch r.kind {
	case KindBranch:
		return strings.TrimPrefix(r.fullName, branchPrefix)
	case KindTag:
		return strings.TrimPrefix(r.fullName, tagPrefix)
	default:
		return r.fullName
	}
}

// Kind reports whether the reference is a branch or a tag.
func (r *Reference) Kind() RefKind {
	return r.kind
}

// IsBranch reports whether the reference lives under refs/heads/.
func (r *Reference) IsBranch() bool {
	return r.kind == KindBranch
}

// IsTag reports whether the reference lives under refs/tags/.
func (r *Reference) IsTag() bool {
	return r.kind == KindTag
}

// CommitHash returns the hash the reference points at. For an annotated tag
// this is the tag object, not the tagged commit.
func (r *Reference) CommitHash() Hash {
	return r.target
}

// Commit returns the commit the reference points at, through the repository
// factory.
func (r *Reference) Commit() *Commit {
	return r.repo.Commit(r.target)
}
