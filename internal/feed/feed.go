// Package feed produces ordered, paged views of posts: the global feed,
// per-group and per-author listings, and the follow feed.
package feed

import (
	"yatube/internal/models"
	"yatube/internal/storage"
)

// Page is one window of a listing. Numbers are 1-indexed.
type Page struct {
	Items       []models.Post `json:"items"`
	Number      int           `json:"page"`
	HasNext     bool          `json:"has_next"`
	HasPrevious bool          `json:"has_previous"`
}

// GetPage fetches one page of the listing selected by the filter. A page
// number past the end is clamped to the last page and anything below 1
// becomes 1, so a listing request never fails on the page number alone.
// An empty collection yields an empty first page.
func GetPage(store storage.Store, f storage.PostFilter, page, perPage int) (*Page, error) {
	total, err := store.CountPosts(f)
	if err != nil {
		return nil, err
	}

	lastPage := (total + perPage - 1) / perPage
	if lastPage < 1 {
		lastPage = 1
	}
	if page < 1 {
		page = 1
	}
	if page > lastPage {
		page = lastPage
	}

	items, err := store.ListPosts(f, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Post{}
	}

	return &Page{
		Items:       items,
		Number:      page,
		HasNext:     page < lastPage,
		HasPrevious: page > 1,
	}, nil
}
