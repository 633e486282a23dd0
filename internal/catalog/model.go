package catalog

// Attribute is one display option on a product (e.g. Size=M, Color=Black).
type Attribute struct {
	Name  string  `json:"name"`
	Value string  `json:"value"`
	Hex   *string `json:"hex,omitempty"`
}

type Product struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description *string     `json:"description,omitempty"`
	Price       float64     `json:"price"`
	Currency    string      `json:"currency"`
	ImageURL    *string     `json:"image_url,omitempty"`
	Status      string      `json:"status"`
	Attributes  []Attribute `json:"attributes"`
}
