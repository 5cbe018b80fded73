package common

// Storage keys of the on-device key-value layout.
const (
	UsersKey       = "users_v1"
	SessionKey     = "loggedInUser_v1"
	NotesKeyPrefix = "notes_"
)
