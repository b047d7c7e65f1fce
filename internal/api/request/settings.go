package request

// NewsAPIKeyRequest is the body for PUT /api/news/key.
type NewsAPIKeyRequest struct {
	APIKey string `json:"apiKey"`
}
