package store

func (s *Store) Achievements() []Achievement {
	return loadList[Achievement](s, KeyAchievements)
}

func (s *Store) SaveAchievements(achievements []Achievement) error {
	return saveList(s, KeyAchievements, achievements)
}
