package entity

type BulkFetchRequest struct {
	IDs []string `json:"ids" binding:"required"`
}
