package client

import (
	"context"
	"sync"

	"gudang/internal/domain/entity"
	"gudang/internal/domain/listing"
)

// UnknownCollection is the display label for a product whose collection
// reference no longer resolves.
const UnknownCollection = "Unknown"

// Row is one rendered listing line: the product joined with its
// collection's display name.
type Row struct {
	Product        entity.Product
	CollectionName string
}

// ListingViewModel holds the admin listing state: page, search text,
// category filter and sort. Every state change re-issues a listing
// request; a response belonging to a superseded parameter set is
// discarded so displayed rows always match the last-issued query.
type ListingViewModel struct {
	client *InventoryClient

	mu          sync.Mutex
	query       listing.Query
	latest      uint64
	rows        []Row
	totalPages  int
	collections map[string]string
	loaded      bool
}

func NewListingViewModel(client *InventoryClient, pageSize int) *ListingViewModel {
	if pageSize < 1 {
		pageSize = listing.DefaultLimit
	}
	return &ListingViewModel{
		client: client,
		query: listing.Query{
			Page:  1,
			Limit: pageSize,
		},
	}
}

// SetSearch updates the search text and resets to the first page.
func (vm *ListingViewModel) SetSearch(ctx context.Context, search string) error {
	vm.mu.Lock()
	vm.query.Search = search
	vm.query.Page = 1
	vm.mu.Unlock()
	return vm.Refresh(ctx)
}

// SetCategory updates the category filter and resets to the first page.
func (vm *ListingViewModel) SetCategory(ctx context.Context, collectionID string) error {
	vm.mu.Lock()
	vm.query.CollectionID = collectionID
	vm.query.Page = 1
	vm.mu.Unlock()
	return vm.Refresh(ctx)
}

// SetPage moves to another page without touching the filters.
func (vm *ListingViewModel) SetPage(ctx context.Context, page int) error {
	vm.mu.Lock()
	vm.query.Page = page
	vm.mu.Unlock()
	return vm.Refresh(ctx)
}

// ToggleSort sorts by the given field: the same field flips direction,
// a new field starts ascending. Either way the listing goes back to
// page one.
func (vm *ListingViewModel) ToggleSort(ctx context.Context, field string) error {
	vm.mu.Lock()
	if vm.query.SortField == field {
		if vm.query.SortOrder == listing.OrderDesc {
			vm.query.SortOrder = listing.OrderAsc
		} else {
			vm.query.SortOrder = listing.OrderDesc
		}
	} else {
		vm.query.SortField = field
		vm.query.SortOrder = listing.OrderAsc
	}
	vm.query.Page = 1
	vm.mu.Unlock()
	return vm.Refresh(ctx)
}

// Refresh re-issues the listing request for the current parameter set.
// If a newer request was issued while this one was in flight, its
// response is dropped.
func (vm *ListingViewModel) Refresh(ctx context.Context) error {
	if err := vm.ensureCollections(ctx); err != nil {
		return err
	}

	vm.mu.Lock()
	vm.latest++
	seq := vm.latest
	query := vm.query
	vm.mu.Unlock()

	result, err := vm.client.ListProducts(ctx, query)
	if err != nil {
		return err
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()

	// Stale response for a superseded parameter set.
	if seq != vm.latest {
		return nil
	}

	rows := make([]Row, 0, len(result.Items))
	for _, product := range result.Items {
		name, ok := vm.collections[product.CollectionID]
		if !ok {
			name = UnknownCollection
		}
		rows = append(rows, Row{
			Product:        product,
			CollectionName: name,
		})
	}

	vm.rows = rows
	vm.totalPages = result.TotalPages
	return nil
}

// ensureCollections loads the collection set once and keeps the
// id-to-name join for display and for the category chooser.
func (vm *ListingViewModel) ensureCollections(ctx context.Context) error {
	vm.mu.Lock()
	loaded := vm.loaded
	vm.mu.Unlock()
	if loaded {
		return nil
	}

	collections, err := vm.client.ListCollections(ctx)
	if err != nil {
		return err
	}

	byID := make(map[string]string, len(collections))
	for _, collection := range collections {
		byID[collection.ID] = collection.Name
	}

	vm.mu.Lock()
	vm.collections = byID
	vm.loaded = true
	vm.mu.Unlock()
	return nil
}

// Collections returns the loaded collection names keyed by ID, for the
// category filter and the edit form's chooser.
func (vm *ListingViewModel) Collections() map[string]string {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	out := make(map[string]string, len(vm.collections))
	for id, name := range vm.collections {
		out[id] = name
	}
	return out
}

func (vm *ListingViewModel) Rows() []Row {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	rows := make([]Row, len(vm.rows))
	copy(rows, vm.rows)
	return rows
}

func (vm *ListingViewModel) TotalPages() int {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.totalPages
}

func (vm *ListingViewModel) Query() listing.Query {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.query
}
