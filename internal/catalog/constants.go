package catalog

// Log messages
const (
	LogMsgBoxCached = "Box catalog cached"
)

// Error context strings for wrapping
const (
	ErrContextFailedToGetBox     = "failed to get box"
	ErrContextFailedToGetEntries = "failed to get catalog entries"
	ErrContextFailedToListBoxes  = "failed to list boxes"
	ErrContextFailedToSaveBox    = "failed to save box"
)
