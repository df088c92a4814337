package entity

import (
	"io"
	"time"
)

type ImageEntry struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	FileSize     int64     `json:"file_size"`
	MimeType     string    `json:"mime_type"`
	Description  string    `json:"description,omitempty"`
	Theme        string    `json:"theme,omitempty"`
	CategoryID   *string   `json:"category_id,omitempty"`
	UploadDate   time.Time `json:"upload_date"`
	RowOrder     int       `json:"row_order"`

	// Joined from the category table at list time, not persisted.
	CategoryName  string `json:"category_name,omitempty"`
	CategoryColor string `json:"category_color,omitempty"`
}

// ImageUpdate is a partial update: nil fields are left unchanged.
// An empty CategoryID clears the category reference.
type ImageUpdate struct {
	Description *string `json:"description,omitempty"`
	Theme       *string `json:"theme,omitempty"`
	CategoryID  *string `json:"category_id,omitempty"`
}

func (u ImageUpdate) Empty() bool {
	return u.Description == nil && u.Theme == nil && u.CategoryID == nil
}

// IncomingFile is one file of an upload batch as received by the service.
type IncomingFile struct {
	Name        string
	MimeType    string
	Size        int64
	Reader      io.Reader
	Description string
	Theme       string
	CategoryID  string
}

// ImageFile carries the raw bytes of a stored image, used for downloads
// and bulk archive construction.
type ImageFile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	Data []byte `json:"data"`
}

type ImageList struct {
	Items      []*ImageEntry `json:"items"`
	Pagination Pagination    `json:"pagination"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// CategoryAll is the sentinel filter value meaning "no category filter".
const CategoryAll = "all"

type ListQuery struct {
	Page     int
	Limit    int
	Category string
	Search   string
}
