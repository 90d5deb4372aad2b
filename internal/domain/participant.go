package domain

type Participant struct {
	ID          int64
	VkID        *int64
	FullName    string
	Age         *int
	Employer    string
	PhoneNumber string
	TeamID      *int64
}

func (p Participant) Same(other Participant) bool {
	return p.ID != 0 && other.ID != 0 && p.ID == other.ID
}
