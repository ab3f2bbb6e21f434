//go:generate gomarkdoc -e -f github -o README.md . --repository.url https://github.com/agentstation/venuemap --repository.default-branch master --repository.path /

// Package venuemap tracks the public review footprint of a fixed set of
// casino venues. A sync asks a grounded model about the configured venues,
// reconciles its table and citations into venue records, and appends the
// result to a snapshot store.
//
// Example usage:
//
//	vm, err := venuemap.New(
//	    venuemap.WithStore(st),
//	    venuemap.WithSource(src),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer vm.Close()
//
//	vm.OnSnapshot(func(snap *venues.Snapshot) {
//	    log.Printf("snapshot %s: %d venues", snap.ID(), snap.Len())
//	})
//
//	snap, err := vm.Sync(ctx)
//	if errors.IsNoData(err) {
//	    // the model answered but produced no usable rows
//	}
package venuemap
