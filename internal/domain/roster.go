package domain

// Roster is the fixed, ordered list of people eligible to register.
// Order matters: the first entry is the form's default selection, and the
// admin wizard renders entries in roster order.
type Roster []string

// DefaultRoster returns the club's member list, used when the ROSTER
// environment variable is not set.
func DefaultRoster() Roster {
	return Roster{
		"András Papp", "Anna Sengler", "Annamária Földváry", "Flóra & Boti",
		"Csanád Laczkó", "Csenge Domokos", "Detti Szabó", "Dóri Békási",
		"Gergely Márki", "Kilyénfalvi Júlia", "Kristóf Szelényi", "Laura Piski",
		"Léna Piski", "Linda Antal", "Máté Lajer", "Nóri Sásdi", "Laci Márki",
		"Domokos Kadosa", "Áron Szabó", "Máté Plank", "Lea Plank",
	}
}

// Contains reports whether name is a roster member.
func (r Roster) Contains(name string) bool {
	for _, n := range r {
		if n == name {
			return true
		}
	}
	return false
}
