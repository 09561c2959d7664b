package book2pdf

import (
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// releaseDateLayout is the date format used in the front matter, matching
// git's "short" date format.
const releaseDateLayout = "2006-01-02"

// ReleaseInfo identifies the checkout state a combined document was built
// from. Ref is a tag name when one points at HEAD, otherwise the current
// branch; Date is the tagger date of that tag or the commit date.
type ReleaseInfo struct {
	Ref  string
	Date string
}

// ResolveReleaseInfo derives the release reference and timestamp from the
// book's git checkout. A tag pointing at HEAD wins; an annotated tag
// contributes its tagger date, a lightweight one the tagged commit's
// date. Without a tag, the current branch and HEAD commit date are used.
func ResolveReleaseInfo(dir string) (ReleaseInfo, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ReleaseInfo{}, fmt.Errorf("%w: opening %s: %v", ErrNoReleaseDate, dir, err)
	}

	head, err := repo.Head()
	if err != nil {
		return ReleaseInfo{}, fmt.Errorf("%w: resolving HEAD: %v", ErrNoReleaseDate, err)
	}

	if info, ok := taggedReleaseInfo(repo, head); ok {
		return info, nil
	}

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return ReleaseInfo{}, fmt.Errorf("%w: reading HEAD commit: %v", ErrNoReleaseDate, err)
	}
	return ReleaseInfo{
		Ref:  head.Name().Short(),
		Date: formatReleaseDate(commit.Committer.When),
	}, nil
}

// taggedReleaseInfo looks for a tag pointing at head.
func taggedReleaseInfo(repo *git.Repository, head *plumbing.Reference) (ReleaseInfo, bool) {
	tags, err := repo.Tags()
	if err != nil {
		return ReleaseInfo{}, false
	}

	var info ReleaseInfo
	found := false

	_ = tags.ForEach(func(ref *plumbing.Reference) error {
		if tag, terr := repo.TagObject(ref.Hash()); terr == nil {
			// Annotated tag: its target must be HEAD.
			if tag.Target != head.Hash() {
				return nil
			}
			info = ReleaseInfo{Ref: ref.Name().Short(), Date: formatReleaseDate(tag.Tagger.When)}
			found = true
			return storer.ErrStop
		}

		// Lightweight tag: the ref itself must be HEAD; there is no
		// tagger date, so the commit date stands in.
		if ref.Hash() != head.Hash() {
			return nil
		}
		commit, cerr := repo.CommitObject(ref.Hash())
		if cerr != nil {
			return nil
		}
		info = ReleaseInfo{Ref: ref.Name().Short(), Date: formatReleaseDate(commit.Committer.When)}
		found = true
		return storer.ErrStop
	})

	return info, found
}

func formatReleaseDate(t time.Time) string {
	return t.Format(releaseDateLayout)
}
