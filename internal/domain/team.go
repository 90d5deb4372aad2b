package domain

type TeamStatus string

const (
	TeamStatusAdded              TeamStatus = "ADDED"
	TeamStatusCaseSelection      TeamStatus = "CASE_SELECTION"
	TeamStatusCaseSelected       TeamStatus = "CASE_SELECTED"
	TeamStatusRegistration       TeamStatus = "REGISTRATION"
	TeamStatusRegistered         TeamStatus = "REGISTERED"
	TeamStatusParticipantsNeeded TeamStatus = "PARTICIPANTS_NEEDED"
	TeamStatusCanceled           TeamStatus = "CANCELED"
)

type Team struct {
	ID            int64
	Title         string
	Status        TeamStatus
	Comment       string
	RegistratorID *int64
	TrackID       *int64
	Participants  []Participant
}

// Same сравнивает команды только по идентификатору
func (t Team) Same(other Team) bool {
	return t.ID != 0 && other.ID != 0 && t.ID == other.ID
}

// VkIDs возвращает платформенные id всех участников, у которых они есть
func (t Team) VkIDs() []int64 {
	ids := make([]int64, 0, len(t.Participants))
	for _, p := range t.Participants {
		if p.VkID != nil {
			ids = append(ids, *p.VkID)
		}
	}
	return ids
}
