package git

import (
	"bytes"
	"context"
	"log/slog"
	"slices"
)

// ReferenceBag is the set of branches and tags of a repository, listed once
// with `git show-ref --tags --heads`. Membership is a point-in-time snapshot;
// call Reload to list again.
type ReferenceBag struct {
	repo  *Repository
	index lazy[*refIndex]
}

// refIndex holds the three views of one listing. It is built completely
// before it is published and never modified afterwards.
type refIndex struct {
	byName   map[string]*Reference
	all      []*Reference
	branches []*Reference
	tags     []*Reference
}

func newReferenceBag(repo *Repository) *ReferenceBag {
	return &ReferenceBag{repo: repo}
}

func (b *ReferenceBag) load(ctx context.Context) (*refIndex, error) {
	return b.index.get(ctx, func(ctx context.Context) (*refIndex, error) {
		args := []string{"show-ref", "--tags", "--heads"}
		res, err := b.repo.run(ctx, args...)
		if err != nil {
			return nil, err
		}
		// show-ref exits 1 with no output at all when there is nothing to list.
		emptyRepo := res.ExitCode == 1 && len(bytes.TrimSpace(res.Stdout)) == 0 && len(bytes.TrimSpace(res.Stderr)) == 0
		if res.ExitCode != 0 && !emptyRepo {
			return nil, commandError(args, res)
		}

		raws, err := ParseReferences(res.Stdout)
		if err != nil {
			return nil, err
		}
		index, err := b.buildIndex(raws)
		if err != nil {
			return nil, err
		}
		b.repo.logger.DebugContext(ctx, "references loaded",
			slog.Int("branches", len(index.branches)),
			slog.Int("tags", len(index.tags)),
		)
		return index, nil
	})
}

func (b *ReferenceBag) buildIndex(raws []RawReference) (*refIndex, error) {
	index := &refIndex{
		byName:   make(map[string]*Reference, len(raws)),
		all:      make([]*Reference, 0, len(raws)),
		branches: []*Reference{},
		tags:     []*Reference{},
	}
	for _, raw := range raws {
		ref, err := classify(b.repo, raw)
		if err != nil {
			return nil, err
		}
		if _, dup := index.byName[ref.fullName]; dup {
			return nil, &ParseError{Source: sourceShowRef, Line: ref.fullName, Reason: "duplicate reference"}
		}
		index.byName[ref.fullName] = ref
		index.all = append(index.all, ref)
		switch ref.kind {
		case KindBranch:
			index.branches = append(index.branches, ref)
		case KindTag:
			index.tags = append(index.tags, ref)
		}
	}
	return index, nil
}

// Reload discards the current listing. The next query lists references again.
func (b *ReferenceBag) Reload() {
	b.index.reset()
}

// Get returns the reference with the given fully qualified name.
func (b *ReferenceBag) Get(ctx context.Context, fullName string) (*Reference, error) {
	index, err := b.load(ctx)
	if err != nil {
		return nil, err
	}
	ref, ok := index.byName[fullName]
	if !ok {
		return nil, &NotFoundError{Kind: "reference", Name: fullName}
	}
	return ref, nil
}

// Has reports whether a reference with the given fully qualified name exists.
func (b *ReferenceBag) Has(ctx context.Context, fullName string) (bool, error) {
	index, err := b.load(ctx)
	if err != nil {
		return false, err
	}
	_, ok := index.byName[fullName]
	return ok, nil
}

// Branch returns the branch with the given short name.
func (b *ReferenceBag) Branch(ctx context.Context, name string) (*Reference, error) {
	return b.Get(ctx, branchPrefix+name)
}

// Tag returns the tag with the given short name.
func (b *ReferenceBag) Tag(ctx context.Context, name string) (*Reference, error) {
	return b.Get(ctx, tagPrefix+name)
}

// All returns every reference in listing order.
func (b *ReferenceBag) All(ctx context.Context) ([]*Reference, error) {
	index, err := b.load(ctx)
	if err != nil {
		return nil, err
	}
	return slices.Clone(index.all), nil
}

// Branches returns every branch in listing order.
func (b *ReferenceBag) Branches(ctx context.Context) ([]*Reference, error) {
	index, err := b.load(ctx)
	if err != nil {
		return nil, err
	}
	return slices.Clone(index.branches), nil
}

// Tags returns every tag in listing order.
func (b *ReferenceBag) Tags(ctx context.Context) ([]*Reference, error) {
	index, err := b.load(ctx)
	if err != nil {
		return nil, err
	}
	return slices.Clone(index.tags), nil
}

// HasBranches reports whether the repository has at least one branch.
func (b *ReferenceBag) HasBranches(ctx context.Context) (bool, error) {
	index, err := b.load(ctx)
	if err != nil {
		return false, err
	}
	return len(index.branches) > 0, nil
}

// FirstBranch returns the first branch in listing order.
func (b *ReferenceBag) FirstBranch(ctx context.Context) (*Reference, error) {
	index, err := b.load(ctx)
	if err != nil {
		return nil, err
	}
	if len(index.branches) == 0 {
		return nil, &NotFoundError{Kind: "reference", Name: branchPrefix + "*"}
	}
	return index.branches[0], nil
}

// Count returns the number of references.
func (b *ReferenceBag) Count(ctx context.Context) (int, error) {
	index, err := b.load(ctx)
	if err != nil {
		return 0, err
	}
	return len(index.all), nil
}

// ResolveBranches returns the short names of every branch pointing at hash.
// The result is empty, not an error, when none do.
func (b *ReferenceBag) ResolveBranches(ctx context.Context, hash Hash) ([]string, error) {
	index, err := b.load(ctx)
	if err != nil {
		return nil, err
	}
	return namesAt(index.branches, hash), nil
}

// ResolveTags returns the short names of every tag pointing at hash.
// The result is empty, not an error, when none do.
func (b *ReferenceBag) ResolveTags(ctx context.Context, hash Hash) ([]string, error) {
	index, err := b.load(ctx)
	if err != nil {
		return nil, err
	}
	return namesAt(index.tags, hash), nil
}

func namesAt(refs []*Reference, hash Hash) []string {
	names := []string{}
	for _, ref := range refs {
		if ref.target == hash {
			names = append(names, ref.Name())
		}
	}
	return names
}
