package api

// CreatePasteResponse is the store's answer to a paste upload.
type CreatePasteResponse struct {
	Status      int    `json:"status"`
	ID          string `json:"id"`
	URL         string `json:"url"`
	DeleteToken string `json:"deletetoken"`
}

// DeletePasteRequest is the body of a delete call.
type DeletePasteRequest struct {
	PasteID     string `json:"pasteid"`
	DeleteToken string `json:"deletetoken"`
}
