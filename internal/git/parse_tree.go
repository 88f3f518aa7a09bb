package git

import (
	"strings"
)

const sourceLsTree = "ls-tree"

// ObjectType is the kind of object a tree entry points at.
type ObjectType string

// Object types that appear in tree listings. A commit entry is a submodule.
const (
	TypeBlob   ObjectType = "blob"
	TypeTree   ObjectType = "tree"
	TypeCommit ObjectType = "commit"
)

// TreeEntry is one record of a tree object.
type TreeEntry struct {
	Mode string     `json:"mode" yaml:"mode"`
	Type ObjectType `json:"type" yaml:"type"`
	Hash Hash       `json:"hash" yaml:"hash"`
	Name string     `json:"name" yaml:"name"`
}

// ParseTree parses `git ls-tree -z` output: NUL-terminated records of the
// form "<mode> SP <type> SP <hash> TAB <name>". Any other shape fails the
// whole listing.
func ParseTree(raw []byte) ([]TreeEntry, error) {
	entries := []TreeEntry{}
	for record := range strings.SplitSeq(string(raw), "\x00") {
		if record == "" {
			continue
		}
		meta, name, ok := strings.Cut(record, "\t")
		if !ok || name == "" {
			return nil, &ParseError{Source: sourceLsTree, Line: record, Reason: "missing entry name"}
		}
		fields := strings.Split(meta, " ")
		if len(fields) != 3 || fields[0] == "" || !isHash(fields[2]) {
			return nil, &ParseError{Source: sourceLsTree, Line: record, Reason: "expected <mode> <type> <hash>"}
		}

		typ := ObjectType(fields[1])
		switch typ {
		case TypeBlob, TypeTree, TypeCommit:
		default:
			return nil, &ParseError{Source: sourceLsTree, Line: record, Reason: "unknown object type"}
		}

		entries = append(entries, TreeEntry{
			Mode: fields[0],
			Type: typ,
			Hash: Hash(strings.ToLower(fields[2])),
			Name: name,
		})
	}
	return entries, nil
}
