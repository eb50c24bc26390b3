package entities

// SyncReport summarizes one batch sync pass. Attempted counts the records the
// pass tried to refresh, so operators can tell "nothing to sync" apart from
// "every fetch failed".
type SyncReport struct {
	Attempted int `json:"attempted"`
	Synced    int `json:"synced"`
	Failed    int `json:"failed"`
}
