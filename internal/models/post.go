package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a social media post stored in MongoDB. The attached file lives in
// GridFS under the same ObjectID.
type Post struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID      uint               `json:"user_id" bson:"user_id"`
	Title       string             `json:"title" bson:"title"`
	Text        string             `json:"text" bson:"text"`
	FileName    string             `json:"file_name,omitempty" bson:"file_name,omitempty"`
	ContentType string             `json:"content_type,omitempty" bson:"content_type,omitempty"`
	CreatedAt   time.Time          `json:"date" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// PostRequest defines the request body for creating or editing a post
type PostRequest struct {
	Title string `json:"title" validate:"required"`
	Text  string `json:"text" validate:"required,min=10,max=2000"`
}

// PostResponse is the outward shape of a post: the file is referenced, never inlined.
type PostResponse struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Text    string    `json:"text"`
	FileURL string    `json:"file_url,omitempty"`
	UserID  uint      `json:"user_id"`
	Date    time.Time `json:"date"`
}

// ToResponse maps a post to its response shape with the given file URL
func (p Post) ToResponse(fileURL string) PostResponse {
	return PostResponse{
		ID:      p.ID.Hex(),
		Title:   p.Title,
		Text:    p.Text,
		FileURL: fileURL,
		UserID:  p.UserID,
		Date:    p.CreatedAt,
	}
}
