// Package pagination provides the infinite-scroll controller.
//
// A Controller watches scroll geometry through a scroll.Monitor and, when the
// unseen content drops below the configured threshold, asks a PageFetcher for
// the next page starting at the number of rows already rendered. Results are
// handed to the caller through the AppendData callback.
//
// Example usage:
//
//	ds, _ := client.New(client.DefaultConfig("http://localhost:3000/fetchrows"))
//	ctrl, err := pagination.New(pagination.Config{
//		Fetcher:    ds,
//		Filters:    func() rows.FilterSet { return rows.FilterSet{{Key: "searchText", Value: search}} },
//		AppendData: func(page rows.Page) { render(page) },
//		ClearData:  func() { clearList() },
//		Scroll:     scroll.DefaultConfig(),
//		Viewport:   window,
//	})
//
//	// on every scroll notification
//	ctrl.OnScroll()
//
//	// when the filters change
//	ctrl.ResetAndRefetch()
//
// The controller:
//   - Keeps at most one fetch in flight; scroll triggers while fetching are ignored
//   - Reads the filters fresh each time a request is sent
//   - Clears the list on every reset; during a fetch it also discards the stale page
//     and refetches from row 0
//   - Reports transport failures through the logger, metrics and OnError, then goes idle
//
// There is no timeout or cancellation by default: a hung fetch blocks further
// scroll-triggered fetches until it resolves. Config.FetchTimeout opts in to a deadline.
package pagination
