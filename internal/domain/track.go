package domain

type Track struct {
	ID    int64
	Title string
	// Free - производное представление занятости, поставляется view track_free.
	// Только для чтения.
	Free *TrackFree
}

type TrackFree struct {
	TeamsCount int64
	Remaining  int64
	Max        int64
}

func (t Track) Same(other Track) bool {
	return t.ID != 0 && other.ID != 0 && t.ID == other.ID
}

// HasCapacity сообщает, остались ли у кейса свободные места
func (t Track) HasCapacity() bool {
	return t.Free != nil && t.Free.Remaining > 0
}
