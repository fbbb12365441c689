package dto

import "time"

type GalleryImageResponse struct {
	ID           int64     `json:"id"`
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	ImageKey     string    `json:"image_key"`
	DisplayOrder int       `json:"display_order"`
	IsFeatured   bool      `json:"is_featured"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type UploadImageResponse struct {
	Success bool   `json:"success"`
	ImageID int64  `json:"image_id"`
	Key     string `json:"image_key"`
}
