// Package tree builds the branching decision structure of a set of
// opening lines: the shared prefix, then who-plays-what at each
// divergence point.
package tree

import (
	"sort"

	"github.com/abhisek/chessbook/internal/opening"
)

// EndToken marks a line that has no move at the branch position.
const EndToken = "<END>"

// MaxExampleNames caps how many line names a branch carries for display.
const MaxExampleNames = 5

// Branch is one continuation at a divergence point: the token played,
// how many lines play it, and a few example line names.
type Branch struct {
	Token        string
	Count        int
	ExampleNames []string
}

// Node is a branch plus its own continuations, one level deeper.
type Node struct {
	Branch
	Children []Node
}

// Tree is the full structure: the prefix every line shares, then the
// branch nodes starting at the first divergent ply.
type Tree struct {
	CommonPrefix []string
	Roots        []Node
}

// LongestCommonPrefix returns the longest token prefix shared by all
// sequences, up to the shortest sequence's length. Empty input or
// divergence at position 0 yields an empty prefix.
func LongestCommonPrefix(seqs [][]string) []string {
	if len(seqs) == 0 {
		return nil
	}
	shortest := len(seqs[0])
	for _, s := range seqs[1:] {
		if len(s) < shortest {
			shortest = len(s)
		}
	}
	var prefix []string
	for i := 0; i < shortest; i++ {
		tok := seqs[0][i]
		for _, s := range seqs[1:] {
			if s[i] != tok {
				return prefix
			}
		}
		prefix = append(prefix, tok)
	}
	return prefix
}

// BranchAt partitions lines by the token at index idx (EndToken for
// lines that end before idx). Branches are ordered by descending count,
// ties broken by ascending token, so the most common continuation comes
// first deterministically.
func BranchAt(lines []opening.Line, idx int) []Branch {
	buckets := make(map[string][]opening.Line)
	for _, ln := range lines {
		buckets[tokenAt(ln, idx)] = append(buckets[tokenAt(ln, idx)], ln)
	}

	branches := make([]Branch, 0, len(buckets))
	for tok, bucket := range buckets {
		names := make([]string, len(bucket))
		for i, b := range bucket {
			names[i] = b.Name
		}
		sort.Strings(names)
		if len(names) > MaxExampleNames {
			names = names[:MaxExampleNames]
		}
		branches = append(branches, Branch{Token: tok, Count: len(bucket), ExampleNames: names})
	}

	sort.Slice(branches, func(i, j int) bool {
		if branches[i].Count != branches[j].Count {
			return branches[i].Count > branches[j].Count
		}
		return branches[i].Token < branches[j].Token
	})
	return branches
}

// Build groups lines beyond their global common prefix into a branch
// tree, at most maxDepth levels deep. A branch only recurses while its
// token is a real move and more than one line shares it; depth is
// bounded by maxDepth alone, never by input size.
func Build(lines []opening.Line, maxDepth int) Tree {
	seqs := make([][]string, len(lines))
	for i, ln := range lines {
		seqs[i] = ln.Tokens()
	}
	lcp := LongestCommonPrefix(seqs)
	return Tree{
		CommonPrefix: lcp,
		Roots:        buildLevel(lines, len(lcp), maxDepth),
	}
}

func buildLevel(lines []opening.Line, idx, depth int) []Node {
	if depth <= 0 || len(lines) == 0 {
		return nil
	}
	branches := BranchAt(lines, idx)
	nodes := make([]Node, 0, len(branches))
	for _, br := range branches {
		node := Node{Branch: br}
		if br.Token != EndToken && br.Count > 1 {
			var sub []opening.Line
			for _, ln := range lines {
				if tokenAt(ln, idx) == br.Token {
					sub = append(sub, ln)
				}
			}
			node.Children = buildLevel(sub, idx+1, depth-1)
		}
		nodes = append(nodes, node)
	}
	return nodes
}

func tokenAt(ln opening.Line, idx int) string {
	tokens := ln.Tokens()
	if idx < len(tokens) {
		return tokens[idx]
	}
	return EndToken
}
