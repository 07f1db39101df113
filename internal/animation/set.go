package animation

// Set - анимации одной сущности по имени. Первая добавленная - анимация по умолчанию.
type Set struct {
	defs  map[string]Def
	order []string
}

// NewSet собирает набор. Повторное имя заменяет определение.
func NewSet(defs ...Def) *Set {
	s := &Set{defs: make(map[string]Def, len(defs))}
	for _, d := range defs {
		s.Add(d)
	}
	return s
}

func (s *Set) Add(d Def) {
	if _, exists := s.defs[d.Name]; !exists {
		s.order = append(s.order, d.Name)
	}
	s.defs[d.Name] = d
}

func (s *Set) Has(name string) bool {
	_, ok := s.defs[name]
	return ok
}

func (s *Set) Len() int { return len(s.order) }

func (s *Set) Names() []string {
	return append([]string(nil), s.order...)
}

// Lookup возвращает новый экземпляр анимации. Неизвестное имя даёт анимацию
// по умолчанию, поэтому вызывающий может сравнить Name() с запрошенным.
// ok == false только для пустого набора.
func (s *Set) Lookup(name string) (*Animation, bool) {
	if s == nil || len(s.order) == 0 {
		return nil, false
	}
	if d, ok := s.defs[name]; ok {
		return New(d), true
	}
	return New(s.defs[s.order[0]]), true
}
