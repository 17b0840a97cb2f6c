package model

// SearchQuery — критерии поиска с дашборда
// если Term не пуст, работает полнотекстовый поиск, иначе фильтр по категории
type SearchQuery struct {
	Start    string `json:"start" validate:"omitempty,datetime=2006-01-02"`
	End      string `json:"end" validate:"omitempty,datetime=2006-01-02"`
	Category string `json:"category" validate:"omitempty,oneof=none all client actif vendor vendeur materiel material"`
	Value    string `json:"value"`
	Term     string `json:"q" validate:"max=200"`
}

// Validate проверяет корректность запроса на основе тегов validate
func (q *SearchQuery) Validate() error {
	return validate.Struct(q)
}
