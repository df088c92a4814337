package entity

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description,omitempty"`
	ImageCount  int    `json:"image_count"`
}

const DefaultCategoryColor = "#3b82f6"

type CategoryInput struct {
	Name        string `json:"name" binding:"required"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

type CategoryUpdate struct {
	Name        *string `json:"name,omitempty"`
	Color       *string `json:"color,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (u CategoryUpdate) Empty() bool {
	return u.Name == nil && u.Color == nil && u.Description == nil
}
