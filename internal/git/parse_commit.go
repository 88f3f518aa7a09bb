package git

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

const sourceCommit = "cat-file commit"

// Signature identifies who authored or committed a change, and when.
type Signature struct {
	Name  string    `json:"name"  yaml:"name"`
	Email string    `json:"email" yaml:"email"`
	When  time.Time `json:"when"  yaml:"when"`
}

// CommitData is the parsed content of one raw commit object.
type CommitData struct {
	Tree      Hash
	Parents   []Hash
	Author    Signature
	Committer Signature
	Message   string
}

// ParseCommit parses the output of `git cat-file commit`: header lines up to
// the first empty line, then the message verbatim.
//
// tree, author and committer must each appear exactly once; parent may repeat
// and keeps its order. Other headers (gpgsig, encoding, mergetag, ...) and
// their space-prefixed continuation lines are skipped.
func ParseCommit(raw []byte) (CommitData, error) {
	text := string(raw)
	header, message, _ := strings.Cut(text, "\n\n")

	var data CommitData
	var seenTree, seenAuthor, seenCommitter bool

	for line := range strings.SplitSeq(header, "\n") {
		if line == "" || line[0] == ' ' {
			continue
		}
		key, value, _ := strings.Cut(line, " ")

		switch key {
		case "tree":
			if seenTree {
				return CommitData{}, &ParseError{Source: sourceCommit, Line: line, Reason: "duplicate tree header"}
			}
			hash, err := parseHeaderHash(line, value)
			if err != nil {
				return CommitData{}, err
			}
			data.Tree = hash
			seenTree = true
		case "parent":
			hash, err := parseHeaderHash(line, value)
			if err != nil {
				return CommitData{}, err
			}
			data.Parents = append(data.Parents, hash)
		case "author":
			if seenAuthor {
				return CommitData{}, &ParseError{Source: sourceCommit, Line: line, Reason: "duplicate author header"}
			}
			sig, err := parseSignature(value)
			if err != nil {
				return CommitData{}, &ParseError{Source: sourceCommit, Line: line, Reason: err.Error()}
			}
			data.Author = sig
			seenAuthor = true
		case "committer":
			if seenCommitter {
				return CommitData{}, &ParseError{Source: sourceCommit, Line: line, Reason: "duplicate committer header"}
			}
			sig, err := parseSignature(value)
			if err != nil {
				return CommitData{}, &ParseError{Source: sourceCommit, Line: line, Reason: err.Error()}
			}
			data.Committer = sig
			seenCommitter = true
		}
	}

	switch {
	case !seenTree:
		return CommitData{}, &ParseError{Source: sourceCommit, Reason: "missing tree header"}
	case !seenAuthor:
		return CommitData{}, &ParseError{Source: sourceCommit, Reason: "missing author header"}
	case !seenCommitter:
		return CommitData{}, &ParseError{Source: sourceCommit, Reason: "missing committer header"}
	}

	if data.Parents == nil {
		data.Parents = []Hash{}
	}
	data.Message = message
	return data, nil
}

func parseHeaderHash(line, value string) (Hash, error) {
	if !isHash(value) {
		return "", &ParseError{Source: sourceCommit, Line: line, Reason: "malformed object hash"}
	}
	return Hash(strings.ToLower(value)), nil
}

// parseSignature splits "Name <email> 1700000000 +0100". The email is taken
// between the first '<' and the last '>' so it may contain anything,
// including spaces and angle brackets.
func parseSignature(value string) (Signature, error) {
	lt := strings.IndexByte(value, '<')
	gt := strings.LastIndexByte(value, '>')
	if lt < 0 || gt < lt {
		return Signature{}, errors.New("malformed signature: missing <email>")
	}

	fields := strings.Fields(value[gt+1:])
	if len(fields) != 2 {
		return Signature{}, errors.New("malformed signature: expected timestamp and timezone")
	}
	seconds, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return Signature{}, errors.New("malformed signature timestamp")
	}

	return Signature{
		Name:  strings.TrimSpace(value[:lt]),
		Email: value[lt+1 : gt],
		When:  time.Unix(seconds, 0).In(parseZone(fields[1])),
	}, nil
}

// parseZone converts a "+HHMM"/"-HHMM" offset to a fixed zone. Offsets git
// itself would not write fall back to UTC rather than failing the commit.
func parseZone(tz string) *time.Location {
	if len(tz) != 5 || (tz[0] != '+' && tz[0] != '-') {
		return time.UTC
	}
	hours, err := strconv.Atoi(tz[1:3])
	if err != nil {
		return time.UTC
	}
	minutes, err := strconv.Atoi(tz[3:5])
	if err != nil {
		return time.UTC
	}
	offset := hours*3600 + minutes*60
	if tz[0] == '-' {
		offset = -offset
	}
	return time.FixedZone(tz, offset)
}

const (
	shortMessageLimit  = 80
	shortMessageMarker = "..."
)

// shortMessage derives the one-line summary of a commit message: the text
// before the first line break when that break falls within the first 80
// characters, otherwise the first 80 characters followed by "...". A message
// without a line break is kept whole when shorter than 80 characters.
// Offsets are counted in runes, with each invalid byte counting as one, and
// the result is sliced from the original bytes so messages in a legacy
// encoding come back unchanged.
func shortMessage(message string) string {
	count := 0
	for i, r := range message {
		if count == shortMessageLimit {
			return message[:i] + shortMessageMarker
		}
		if r == '\n' {
			return message[:i]
		}
		count++
	}
	if count < shortMessageLimit {
		return message
	}
	return message + shortMessageMarker
}
