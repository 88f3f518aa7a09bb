// Package git is a read-only object model of a git repository, built from
// the output of git plumbing commands rather than from the object store.
//
// # Repository
//
// A Repository is the composition root. It runs every git command in its
// directory and is the factory for commits, trees and blobs:
//
//	repo, err := git.Open(ctx, ".")
//	head, err := repo.Revision(ctx, "HEAD")
//	commit := repo.Commit(hash) // same pointer for the same hash
//
// # Lazy Entities
//
// Commit, Tree and Blob hold only their hash until an accessor needs data.
// The first accessor runs one git command, parses its output and keeps the
// result; later accessors never call git again:
//
//	git cat-file commit --end-of-options <hash>          Commit
//	git ls-tree -z --full-tree --end-of-options <hash>   Tree
//	git cat-file blob --end-of-options <hash>            Blob
//
// Hashes are passed after --end-of-options, so a value that looks like an
// option is rejected by git as a bad object. Hash never triggers a read. Loading is guarded by a mutex, so concurrent
// first accesses share one git call.
//
// # References
//
// Repository.References returns the ReferenceBag, listed once with
// `git show-ref --tags --heads`. Each line is classified as a branch
// (refs/heads/) or a tag (refs/tags/); anything else fails the listing.
//
//	main, err := repo.References().Branch(ctx, "main")
//	tags, err := repo.References().ResolveTags(ctx, head.Hash())
//
// # Error Handling
//
// Three error families, each matched with errors.Is:
//   - ErrCommandFailed (*CommandError) when git exits non-zero, is missing,
//     or the context expires
//   - ErrParse (*ParseError) when output does not match its grammar
//   - ErrNotFound (*NotFoundError) when a lookup matches nothing
//
// A failed load is remembered and returned by every later accessor, except
// when it failed because the context was cancelled or timed out.
package git
