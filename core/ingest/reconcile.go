package ingest

// Partition splits staged items by whether the remote store already knows them.
type Partition struct {
	// Create holds items whose document ID is absent remotely.
	Create []DataItem
	// Update holds items whose document ID is present remotely.
	Update []DataItem
}

// Reconcile partitions staged items against a snapshot. Only presence is consulted:
// every item lands in exactly one set and relative order is preserved.
func Reconcile(staged []DataItem, known map[string]Status) Partition {
	var p Partition
	for _, item := range staged {
		if _, ok := known[item.DocumentID]; ok {
			p.Update = append(p.Update, item)
		} else {
			p.Create = append(p.Create, item)
		}
	}
	return p
}

// SplitProcessing separates update targets the service is still processing from
// those that can be updated right away.
func SplitProcessing(items []DataItem, status map[string]Status) (ready, processing []DataItem) {
	for _, item := range items {
		if status[item.DocumentID] == StatusProcessing {
			processing = append(processing, item)
		} else {
			ready = append(ready, item)
		}
	}
	return ready, processing
}
