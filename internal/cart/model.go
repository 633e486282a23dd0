package cart

// AttrNone is the sentinel for a size or color the catalog does not
// define for a given variant.
const AttrNone = "N/A"

// Line is one distinct purchasable unit in the cart. Lines are keyed by
// variant id: the same product in two sizes is two lines. Quantity is
// always >= 1; a line whose quantity would drop to zero is removed
// instead of being kept around empty.
type Line struct {
	ItemKey   string `json:"-"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color,omitempty"`
}

// Snapshot is the persisted cart layout: only data fields, keyed by
// item key.
type Snapshot struct {
	Items map[string]Line `json:"items"`
}
