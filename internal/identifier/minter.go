// Package identifier mints the human-readable asset identifiers that end up
// printed on labels and encoded in QR payloads.
//
// Minted identifiers have the form "{slug}-{seq:04d}". The sequence starts one
// past the current record count and is bumped until the candidate is free, so
// the result depends only on the name and the registry state at call time.
package identifier

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

const (
	// FallbackSlug replaces names that slugify to nothing.
	FallbackSlug = "asset"
	// MaxSlugLength bounds the slug portion of a minted identifier.
	MaxSlugLength = 30
	// MaxAttempts caps the collision loops in MintOrAccept and Dedupe.
	MaxAttempts = 100000
	// CollisionSuffix is appended by Dedupe until an identifier is free.
	CollisionSuffix = "-x"
)

// ErrExhausted is returned when MaxAttempts candidates were all taken.
var ErrExhausted = errors.New("identifier space exhausted")

// Registry is the read side of the asset store the minter consults.
type Registry interface {
	// Count returns the total number of stored records.
	Count(ctx context.Context) (int, error)
	// IdentifierExists reports whether a record already uses identifier.
	IdentifierExists(ctx context.Context, identifier string) (bool, error)
}

// Slugify lowercases name, drops everything except letters, numbers,
// whitespace, underscores and hyphens, turns whitespace/underscore runs into a
// single hyphen, truncates to MaxSlugLength runes and trims hyphens.
// An empty result becomes FallbackSlug.
func Slugify(name string) string {
	s := strings.TrimSpace(strings.ToLower(name))

	var b strings.Builder
	inSep := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r) || r == '_':
			if !inSep {
				b.WriteByte('-')
				inSep = true
			}
		case unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-':
			b.WriteRune(r)
			inSep = false
		}
	}

	out := []rune(b.String())
	if len(out) > MaxSlugLength {
		out = out[:MaxSlugLength]
	}
	slug := strings.Trim(string(out), "-")
	if slug == "" {
		return FallbackSlug
	}
	return slug
}

// Format renders the candidate identifier for a slug and sequence number.
func Format(slug string, seq int) string {
	return fmt.Sprintf("%s-%04d", slug, seq)
}

// MintOrAccept returns proposed when it is non-blank. Uniqueness of an
// accepted identifier is left to the store. Otherwise it derives a fresh
// identifier from name against reg.
func MintOrAccept(ctx context.Context, proposed, name string, reg Registry) (string, error) {
	if p := strings.TrimSpace(proposed); p != "" {
		return p, nil
	}
	return Mint(ctx, name, reg)
}

// Mint derives "{slug}-{seq}" starting at Count()+1 and bumping seq past
// every identifier already present.
func Mint(ctx context.Context, name string, reg Registry) (string, error) {
	slug := Slugify(name)
	n, err := reg.Count(ctx)
	if err != nil {
		return "", fmt.Errorf("count assets: %w", err)
	}

	seq := n + 1
	for i := 0; i < MaxAttempts; i++ {
		cand := Format(slug, seq)
		taken, err := reg.IdentifierExists(ctx, cand)
		if err != nil {
			return "", fmt.Errorf("check identifier %q: %w", cand, err)
		}
		if !taken {
			return cand, nil
		}
		seq++
	}
	return "", fmt.Errorf("%w: slug %q after %d attempts", ErrExhausted, slug, MaxAttempts)
}

// Dedupe appends CollisionSuffix to id until it no longer exists.
// The bulk importer uses it as a last resort after minting.
func Dedupe(ctx context.Context, id string, reg Registry) (string, error) {
	cand := id
	for i := 0; i < MaxAttempts; i++ {
		taken, err := reg.IdentifierExists(ctx, cand)
		if err != nil {
			return "", fmt.Errorf("check identifier %q: %w", cand, err)
		}
		if !taken {
			return cand, nil
		}
		cand += CollisionSuffix
	}
	return "", fmt.Errorf("%w: %q after %d suffixes", ErrExhausted, id, MaxAttempts)
}
