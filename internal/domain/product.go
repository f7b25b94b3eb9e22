package domain

// Product is the persisted catalog record. ID is minted client-side before
// the first write and never changes; ImageURL always holds the resolved
// remote URL once the record is stored.
type Product struct {
	ID          string  `bson:"_id" json:"id"`
	Name        string  `bson:"name" json:"name"`
	Description string  `bson:"description" json:"description"`
	Price       float64 `bson:"price" json:"price"`
	ImageURL    string  `bson:"image_url" json:"image_url"`
}
