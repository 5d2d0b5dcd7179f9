package state

import "github.com/five82/issueboard/internal/issue"

// MergeFunc reconciles the local collection with a freshly fetched snapshot
// and returns the new local collection. It runs under the store lock and
// must not call back into the store.
type MergeFunc func(local, fetched []issue.Issue) []issue.Issue

// ReplaceWithFetched is the default MergeFunc: the fetched snapshot wins
// wholesale, so an optimistic edit still awaiting confirmation is discarded
// until its confirmation lands.
func ReplaceWithFetched(_, fetched []issue.Issue) []issue.Issue {
	return fetched
}

// confirm folds a repository-confirmed record into the local one. Fields the
// repository returns win; identity and creation time never change.
func confirm(local, confirmed issue.Issue) issue.Issue {
	out := confirmed.Clone()
	out.ID = local.ID
	out.CreatedAt = local.CreatedAt
	out.Tags = issue.NormalizeTags(out.Tags)
	return out
}
