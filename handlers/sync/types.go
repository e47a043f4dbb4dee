package sync

// Constants for error messages
const (
	ErrUsernameTaken = "That username is already claimed by another account"
	ErrFetchFailed   = "Failed to log in to the training site"
	ErrSyncFailed    = "Sync failed"
)

// SyncRequest carries the training-site credentials for one sync
type SyncRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SyncResponse reports the outcome of a sync
type SyncResponse struct {
	Status string `json:"status"`
}
