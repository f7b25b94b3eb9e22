package dto

import "io"

type ProductRequest struct {
	ID          string `param:"id" form:"id" json:"id"`
	Name        string `form:"name" json:"name"`
	Description string `form:"description" json:"description"`
	Price       string `form:"price" json:"price"`
	ImageURL    string `form:"image_url" json:"image_url"`
}

// ImageUpload carries a not-yet-uploaded image payload. A nil *ImageUpload
// means the caller kept the already resolved image URL. The service owns
// Content and closes it once the request is handled.
type ImageUpload struct {
	Content     io.ReadCloser
	ContentType string
}
