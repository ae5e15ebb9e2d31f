package store

func (s *Store) Notes() []Note {
	return loadList[Note](s, KeyNotes)
}

func (s *Store) SaveNotes(notes []Note) error {
	return saveList(s, KeyNotes, notes)
}
