package model

// MemberType разделяет участников на непересекающиеся роли
type MemberType string

const (
	MemberTypeClient MemberType = "CLIENT"
	MemberTypeActive MemberType = "ACTIF" // продавец / активный участник
)

// Unknown — значение-заглушка для записей, которые не удалось получить
const Unknown = "Inconnu"

// Member — участник (membre): клиент или продавец
type Member struct {
	ID        string     `json:"id" validate:"required"`
	LastName  string     `json:"nom"`
	FirstName string     `json:"prenom"`
	Email     string     `json:"email,omitempty"`
	Type      MemberType `json:"type"`
}

// Validate проверяет корректность структуры Member на основе тегов validate
func (m *Member) Validate() error {
	return validate.Struct(m)
}

// FullName возвращает имя в порядке "prenom nom", как его показывает дашборд
func (m Member) FullName() string {
	return m.FirstName + " " + m.LastName
}

// UnknownMember создаёт заглушку, которая кэшируется вместо участника,
// запрос которого завершился ошибкой
func UnknownMember(id string) Member {
	return Member{
		ID:        id,
		LastName:  Unknown,
		FirstName: Unknown,
		Type:      MemberType(Unknown),
	}
}

// Group нужна дашборду только для подсчёта количества
type Group struct {
	ID   string `json:"id"`
	Name string `json:"nom"`
}
